package category

import (
	"context"
	"database/sql"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
	"github.com/georgemunganga/jfsolar-inventory/internal/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetAll(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *postgresRepo) Rename(ctx context.Context, oldName, newName string) (int, error) {
	var moved int64
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE name=$1`, oldName)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.NotFound("category", oldName)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, newName); err != nil {
			return err
		}
		res, err = tx.ExecContext(ctx,
			`UPDATE inventory_items SET category=$1, updated_at=NOW() WHERE category=$2`, newName, oldName)
		if err != nil {
			return err
		}
		moved, _ = res.RowsAffected()
		return nil
	})
	return int(moved), err
}
