// Package snapshot holds the read-side copy of the stores used by dashboards and exports.
// It is refreshed wholesale after every mutation instead of being patched.
package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/georgemunganga/jfsolar-inventory/internal/modules/inventory"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/project"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/transaction"
)

// ErrNoSnapshot is returned by Restore when nothing was persisted yet.
var ErrNoSnapshot = errors.New("no persisted snapshot")

// Snapshot is one consistent read of the four stores.
type Snapshot struct {
	Items        []*inventory.Item          `json:"items"`
	Transactions []*transaction.Transaction `json:"transactions"`
	Projects     []*project.Project         `json:"projects"`
	Categories   []string                   `json:"categories"`
	TakenAt      time.Time                  `json:"taken_at"`
	// Restored is set when the data came from the persister rather than the stores.
	Restored bool `json:"restored"`
}

// Source is the set of store reads a refresh performs.
type Source interface {
	Items(ctx context.Context) ([]*inventory.Item, error)
	Transactions(ctx context.Context) ([]*transaction.Transaction, error)
	Projects(ctx context.Context) ([]*project.Project, error)
	Categories(ctx context.Context) ([]string, error)
}

// Persister saves the last good snapshot so reads survive an unreachable database.
type Persister interface {
	Save(ctx context.Context, s *Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
}

// CategoryLister is the category store read used by StoreSource.
type CategoryLister interface {
	GetAll(ctx context.Context) ([]string, error)
}

// StoreSource reads a snapshot from the module repositories.
type StoreSource struct {
	ItemRepo     inventory.Repository
	Recorder     transaction.Recorder
	ProjectRepo  project.Repository
	CategoryRepo CategoryLister
}

func (s StoreSource) Items(ctx context.Context) ([]*inventory.Item, error) {
	return s.ItemRepo.GetAll(ctx)
}

func (s StoreSource) Transactions(ctx context.Context) ([]*transaction.Transaction, error) {
	return s.Recorder.ListAll(ctx)
}

func (s StoreSource) Projects(ctx context.Context) ([]*project.Project, error) {
	return s.ProjectRepo.GetAll(ctx)
}

func (s StoreSource) Categories(ctx context.Context) ([]string, error) {
	return s.CategoryRepo.GetAll(ctx)
}
