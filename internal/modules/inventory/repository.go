package inventory

import "context"

// Repository defines inventory item storage. Lookups and writes on an unknown id return an
// apperr.ErrNotFound error.
type Repository interface {
	GetAll(ctx context.Context) ([]*Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, it *Item) error
	Update(ctx context.Context, id string, patch ItemPatch) error
	UpdateStock(ctx context.Context, id string, newStock int) error
	AssignCategory(ctx context.Context, ids []string, category string) error
}

// StockBatcher is implemented by stores that can apply several stock deltas in one
// transaction. A delta that would take stock below zero aborts the whole batch.
type StockBatcher interface {
	ApplyStockDeltas(ctx context.Context, deltas []StockDelta) error
}
