package dataexchange

import (
	"context"
	"io"

	"github.com/georgemunganga/jfsolar-inventory/internal/modules/inventory"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/project"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/snapshot"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/transaction"
)

// Service moves catalog and history data through spreadsheets.
type Service interface {
	ExportInventory(ctx context.Context, w io.Writer) error
	ImportInventory(ctx context.Context, r io.Reader) (*inventory.ImportResult, error)
	ExportHistory(ctx context.Context, w io.Writer) error
	ImportHistory(ctx context.Context, r io.Reader) (*transaction.ImportResult, error)
	ExportProjectReport(ctx context.Context, projectID string, w io.Writer) (*project.Project, error)
	Migrate(ctx context.Context) (*MigrationResult, error)
}

type service struct {
	items      inventory.Service
	recorder   transaction.Recorder
	projects   project.Service
	categories CategoryCreator
	persister  snapshot.Persister
}

// NewService creates the data exchange service. persister may be nil, which leaves Migrate
// with nothing to copy.
func NewService(items inventory.Service, recorder transaction.Recorder, projects project.Service,
	categories CategoryCreator, persister snapshot.Persister) Service {
	return &service{items: items, recorder: recorder, projects: projects, categories: categories, persister: persister}
}

func (s *service) ExportInventory(ctx context.Context, w io.Writer) error {
	items, err := s.items.ListItems(ctx, inventory.ListFilter{})
	if err != nil {
		return err
	}
	return WriteInventory(w, items)
}

// ImportInventory adds the sheet's products. Ids already in the catalog are skipped.
func (s *service) ImportInventory(ctx context.Context, r io.Reader) (*inventory.ImportResult, error) {
	items, err := ParseInventory(r)
	if err != nil {
		return nil, err
	}
	return s.items.ImportItems(ctx, items)
}

func (s *service) ExportHistory(ctx context.Context, w io.Writer) error {
	txs, err := s.recorder.ListAll(ctx)
	if err != nil {
		return err
	}
	return WriteHistory(w, txs)
}

// ImportHistory merges the sheet's movements. Ids already recorded are skipped.
func (s *service) ImportHistory(ctx context.Context, r io.Reader) (*transaction.ImportResult, error) {
	txs, err := ParseHistory(r)
	if err != nil {
		return nil, err
	}
	return s.recorder.Import(ctx, txs)
}

func (s *service) ExportProjectReport(ctx context.Context, projectID string, w io.Writer) (*project.Project, error) {
	rep, err := s.projects.Report(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return rep.Project, WriteProjectReport(w, rep)
}
