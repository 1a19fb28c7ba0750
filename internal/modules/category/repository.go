package category

import "context"

// Repository stores the flat set of category names.
type Repository interface {
	// GetAll returns every name in ascending order.
	GetAll(ctx context.Context) ([]string, error)
	// Create adds name, reporting false when it already existed.
	Create(ctx context.Context, name string) (bool, error)
	// Rename replaces oldName with newName and repoints the items tagged with oldName.
	// It returns the number of items repointed.
	Rename(ctx context.Context, oldName, newName string) (int, error)
}
