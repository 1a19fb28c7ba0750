package transaction

import "context"

// Repository defines transaction storage. It has no update or delete.
type Repository interface {
	// GetAll returns every transaction with its lines attached.
	GetAll(ctx context.Context) ([]*Transaction, error)
	// Create stores a header without lines, filling Seq and CreatedAt.
	Create(ctx context.Context, t *Transaction) error
	// CreateWithLines stores the header and its lines, filling Seq and CreatedAt.
	CreateWithLines(ctx context.Context, t *Transaction, lines []Line) error
}
