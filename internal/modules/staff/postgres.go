package staff

import (
	"context"
	"database/sql"
	"errors"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL staff repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, s *Staff) error {
	query := `
		INSERT INTO staff (id, email, password_hash, name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query, s.ID, s.Email, s.PasswordHash, s.Name).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*Staff, error) {
	return r.get(ctx, "email", email)
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*Staff, error) {
	return r.get(ctx, "id", id)
}

func (r *postgresRepository) get(ctx context.Context, column, value string) (*Staff, error) {
	s := &Staff{}
	query := `
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM staff
		WHERE ` + column + ` = $1
	`
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&s.ID,
		&s.Email,
		&s.PasswordHash,
		&s.Name,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("staff", value)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
