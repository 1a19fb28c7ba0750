package project

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/transaction"
)

// Service defines project business logic.
type Service interface {
	CreateProject(ctx context.Context, name string) (*Project, error)
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context, filter ListFilter) ([]*Project, error)
	ToggleStatus(ctx context.Context, id string) (*Project, error)
	Report(ctx context.Context, id string) (*Report, error)
	ImportProjects(ctx context.Context, projects []*Project) (*ImportResult, error)
}

// ImportResult reports how a batch of projects was merged.
type ImportResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// ListFilter narrows ListProjects. Empty Status means all.
type ListFilter struct {
	Search string
	Status Status
}

type service struct {
	repo     Repository
	recorder transaction.Recorder
	now      func() time.Time
}

func NewService(repo Repository, recorder transaction.Recorder) Service {
	return &service{repo: repo, recorder: recorder, now: time.Now}
}

func (s *service) CreateProject(ctx context.Context, name string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Invalid("project name is required")
	}
	p := &Project{
		ID:        uuid.NewString(),
		Name:      name,
		Status:    StatusActive,
		CreatedAt: s.now().Format(transaction.DateLayout),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProject(ctx context.Context, id string) (*Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListProjects(ctx context.Context, filter ListFilter) ([]*Project, error) {
	if filter.Status != "" && filter.Status != StatusActive && filter.Status != StatusFinished {
		return nil, apperr.Invalid(fmt.Sprintf("invalid status: %s (allowed: active, finished)", filter.Status))
	}
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(filter.Search)
	out := []*Project{}
	for _, p := range all {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

// ToggleStatus flips active <-> finished. Finishing stamps FinishedAt; reopening clears it.
func (s *service) ToggleStatus(ctx context.Context, id string) (*Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, finishedAt := StatusFinished, s.now().Format(transaction.DateLayout)
	if p.Status == StatusFinished {
		next, finishedAt = StatusActive, ""
	}
	if err := s.repo.UpdateStatus(ctx, id, next, finishedAt); err != nil {
		return nil, err
	}
	p.Status = next
	p.FinishedAt = finishedAt
	return p, nil
}

func (s *service) Report(ctx context.Context, id string) (*Report, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	txs, err := s.recorder.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	r := &Report{Project: p, Transactions: txs, TransactionCount: len(txs)}
	for _, t := range txs {
		r.TotalUnits += t.Quantity
	}
	return r, nil
}

// ImportProjects stores each project under its own id. Ids already stored, or repeated in the
// batch, are skipped. Missing status defaults to active and missing creation date to today.
func (s *service) ImportProjects(ctx context.Context, projects []*Project) (*ImportResult, error) {
	existing, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p.ID] = true
	}

	res := &ImportResult{}
	for _, in := range projects {
		if in == nil || strings.TrimSpace(in.Name) == "" {
			res.Skipped++
			continue
		}
		p := *in
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if seen[p.ID] {
			res.Skipped++
			continue
		}
		if p.Status != StatusFinished {
			p.Status, p.FinishedAt = StatusActive, ""
		}
		if p.CreatedAt == "" {
			p.CreatedAt = s.now().Format(transaction.DateLayout)
		}
		if err := s.repo.Create(ctx, &p); err != nil {
			return res, fmt.Errorf("import project %s: %w", p.ID, err)
		}
		seen[p.ID] = true
		res.Created++
	}
	return res, nil
}
