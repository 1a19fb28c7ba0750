package transaction

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
)

// Recorder is the append-only audit trail and the read model for history and reporting.
type Recorder interface {
	Append(ctx context.Context, t *Transaction, lines []Line) (*Transaction, error)
	ListAll(ctx context.Context) ([]*Transaction, error)
	ListByProject(ctx context.Context, projectID string) ([]*Transaction, error)
	Search(ctx context.Context, filter HistoryFilter) ([]*Transaction, error)
	Import(ctx context.Context, batch []*Transaction) (*ImportResult, error)
}

// ImportResult reports how an external batch was merged.
type ImportResult struct {
	Appended int `json:"appended"`
	Skipped  int `json:"skipped"`
}

type recorder struct {
	repo Repository
	now  func() time.Time
}

// NewRecorder creates a new transaction recorder.
func NewRecorder(repo Repository) Recorder {
	return &recorder{repo: repo, now: time.Now}
}

// Append stores t and, when lines is non-empty, its lines. With lines present the header
// quantity is always their sum.
func (s *recorder) Append(ctx context.Context, t *Transaction, lines []Line) (*Transaction, error) {
	if !t.Type.Valid() {
		return nil, apperr.Invalid(fmt.Sprintf("invalid transaction type: %q (allowed: entry, output)", t.Type))
	}
	if t.Date == "" {
		t.Date = s.now().Format(DateLayout)
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return nil, apperr.Invalid(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", t.Date))
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	if len(lines) == 0 {
		if t.Quantity < 0 {
			return nil, apperr.Invalid("quantity cannot be negative")
		}
		if err := s.repo.Create(ctx, t); err != nil {
			return nil, err
		}
		return t, nil
	}

	for _, l := range lines {
		if l.Quantity < 0 {
			return nil, apperr.Invalid(fmt.Sprintf("line quantity for %s cannot be negative", l.ItemName))
		}
	}
	t.Quantity = LineTotal(lines)
	t.Items = append([]Line(nil), lines...)
	if err := s.repo.CreateWithLines(ctx, t, t.Items); err != nil {
		return nil, err
	}
	return t, nil
}

// ListAll returns every transaction, newest date first. Same-day records are ordered by
// creation sequence, newest first.
func (s *recorder) ListAll(ctx context.Context) ([]*Transaction, error) {
	txs, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(txs)
	return txs, nil
}

// SortNewestFirst orders by date descending, then sequence descending.
func SortNewestFirst(txs []*Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Date != txs[j].Date {
			return txs[i].Date > txs[j].Date
		}
		return txs[i].Seq > txs[j].Seq
	})
}

func (s *recorder) ListByProject(ctx context.Context, projectID string) ([]*Transaction, error) {
	return s.Search(ctx, HistoryFilter{ProjectID: projectID})
}

func (s *recorder) Search(ctx context.Context, filter HistoryFilter) ([]*Transaction, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := []*Transaction{}
	for _, t := range all {
		if filter.match(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Import appends every transaction whose id is not yet stored. Duplicate suppression is by id only.
// A batch holding an empty entry is rejected before anything is written.
func (s *recorder) Import(ctx context.Context, batch []*Transaction) (*ImportResult, error) {
	for i, t := range batch {
		if t == nil {
			return nil, apperr.Invalid(fmt.Sprintf("transaction %d is empty", i+1))
		}
	}
	current, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(current))
	for _, t := range current {
		ids[t.ID] = true
	}

	res := &ImportResult{}
	for _, t := range batch {
		if t.ID != "" && ids[t.ID] {
			res.Skipped++
			continue
		}
		if _, err := s.Append(ctx, t, t.Items); err != nil {
			return res, fmt.Errorf("import transaction %s: %w", t.ID, err)
		}
		ids[t.ID] = true
		res.Appended++
	}
	return res, nil
}
