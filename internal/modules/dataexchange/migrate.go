package dataexchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/inventory"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/project"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/snapshot"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/transaction"
)

// ErrNothingToMigrate is returned when no fallback snapshot was persisted.
var ErrNothingToMigrate = errors.New("no fallback snapshot to migrate")

// CategoryCreator is the category store write used by Migrate.
type CategoryCreator interface {
	Create(ctx context.Context, name string) (bool, error)
}

// MigrationResult counts what each store received from the fallback snapshot.
type MigrationResult struct {
	CategoriesCreated int                      `json:"categories_created"`
	Items             inventory.ImportResult   `json:"items"`
	Projects          project.ImportResult     `json:"projects"`
	Transactions      transaction.ImportResult `json:"transactions"`
}

// Migrate copies the persisted fallback snapshot into the stores. Records already stored are
// skipped, so running it again is harmless. Transactions are replayed oldest first so same-day
// ordering survives.
func (s *service) Migrate(ctx context.Context) (*MigrationResult, error) {
	if s.persister == nil {
		return nil, ErrNothingToMigrate
	}
	snap, err := s.persister.Load(ctx)
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		return nil, ErrNothingToMigrate
	}
	if err != nil {
		return nil, fmt.Errorf("load fallback snapshot: %w", err)
	}

	res := &MigrationResult{}
	for _, name := range snap.Categories {
		created, err := s.categories.Create(ctx, name)
		if errors.Is(err, apperr.ErrInvalidInput) {
			continue
		}
		if err != nil {
			return res, fmt.Errorf("migrate category %q: %w", name, err)
		}
		if created {
			res.CategoriesCreated++
		}
	}

	items, err := s.items.ImportItems(ctx, snap.Items)
	if items != nil {
		res.Items = *items
	}
	if err != nil {
		return res, fmt.Errorf("migrate items: %w", err)
	}

	projects, err := s.projects.ImportProjects(ctx, snap.Projects)
	if projects != nil {
		res.Projects = *projects
	}
	if err != nil {
		return res, fmt.Errorf("migrate projects: %w", err)
	}

	txs := make([]*transaction.Transaction, 0, len(snap.Transactions))
	for i := len(snap.Transactions) - 1; i >= 0; i-- {
		if t := snap.Transactions[i]; t != nil {
			txs = append(txs, t)
		}
	}
	imported, err := s.recorder.Import(ctx, txs)
	if imported != nil {
		res.Transactions = *imported
	}
	if err != nil {
		return res, fmt.Errorf("migrate transactions: %w", err)
	}
	return res, nil
}
