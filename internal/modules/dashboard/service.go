package dashboard

import (
	"context"
	"time"

	"github.com/georgemunganga/jfsolar-inventory/internal/modules/inventory"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/project"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/snapshot"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/transaction"
)

const previewSize = 5

// Summary is the landing page read model.
type Summary struct {
	CatalogSize        int                        `json:"catalog_size"`
	LowStockCount      int                        `json:"low_stock_count"`
	LowStock           []*inventory.Item          `json:"low_stock"`
	TodayEntries       int                        `json:"today_entries"`
	TodayOutputs       int                        `json:"today_outputs"`
	ActiveProjects     int                        `json:"active_projects"`
	RecentTransactions []*transaction.Transaction `json:"recent_transactions"`
	AsOf               time.Time                  `json:"as_of"`
	Restored           bool                       `json:"restored"`
}

// SnapshotReader returns the current read-side snapshot.
type SnapshotReader interface {
	Current(ctx context.Context) (snapshot.Snapshot, error)
}

type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type service struct {
	view SnapshotReader
	now  func() time.Time
}

func NewService(view SnapshotReader) Service {
	return &service{view: view, now: time.Now}
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	snap, err := s.view.Current(ctx)
	if err != nil {
		return nil, err
	}
	low := inventory.FilterLowStock(snap.Items)
	sum := &Summary{
		CatalogSize:        len(snap.Items),
		LowStockCount:      len(low),
		LowStock:           head(low),
		RecentTransactions: head(snap.Transactions),
		AsOf:               snap.TakenAt,
		Restored:           snap.Restored,
	}
	today := s.now().Format(transaction.DateLayout)
	for _, t := range snap.Transactions {
		if t.Date != today {
			continue
		}
		switch t.Type {
		case transaction.TypeEntry:
			sum.TodayEntries++
		case transaction.TypeOutput:
			sum.TodayOutputs++
		}
	}
	for _, p := range snap.Projects {
		if p.Status == project.StatusActive {
			sum.ActiveProjects++
		}
	}
	return sum, nil
}

func head[T any](xs []T) []T {
	if len(xs) > previewSize {
		xs = xs[:previewSize]
	}
	return append([]T{}, xs...)
}
