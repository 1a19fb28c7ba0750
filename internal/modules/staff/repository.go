package staff

import "context"

// Repository defines staff account storage. Unknown emails and ids return apperr.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, s *Staff) error
	GetByEmail(ctx context.Context, email string) (*Staff, error)
	GetByID(ctx context.Context, id string) (*Staff, error)
}
