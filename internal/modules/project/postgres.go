package project

import (
	"context"
	"database/sql"
	"errors"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
)

const projectColumns = `id, name, status, to_char(created_at, 'YYYY-MM-DD'), to_char(finished_at, 'YYYY-MM-DD')`

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

type rowScanner interface{ Scan(dest ...interface{}) error }

func scan(row rowScanner) (*Project, error) {
	p := &Project{}
	var finished sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Status, &p.CreatedAt, &finished); err != nil {
		return nil, err
	}
	p.FinishedAt = finished.String
	return p, nil
}

func (r *postgresRepo) GetAll(ctx context.Context) ([]*Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC, updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var projects []*Project
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Project, error) {
	p, err := scan(r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("project", id)
	}
	return p, err
}

func (r *postgresRepo) Create(ctx context.Context, p *Project) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, status, created_at, finished_at) VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.Name, p.Status, p.CreatedAt, sql.NullString{String: p.FinishedAt, Valid: p.FinishedAt != ""})
	return err
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status, finishedAt string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE projects SET status=$1, finished_at=$2, updated_at=NOW() WHERE id=$3`,
		status, sql.NullString{String: finishedAt, Valid: finishedAt != ""}, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("project", id)
	}
	return nil
}
