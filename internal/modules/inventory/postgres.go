package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
)

const itemColumns = `id,item,brand,reference,category,current_stock,low_stock_threshold,image_url,created_at,updated_at`

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanItem(row rowScanner) (*Item, error) {
	it := &Item{}
	err := row.Scan(&it.ID, &it.Name, &it.Brand, &it.Reference, &it.Category,
		&it.CurrentStock, &it.LowStockThreshold, &it.ImageURL, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *postgresRepo) GetAll(ctx context.Context) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM inventory_items ORDER BY item ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM inventory_items WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("item", id)
	}
	return it, err
}

func (r *postgresRepo) Create(ctx context.Context, it *Item) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO inventory_items
		  (id, item, brand, reference, category, current_stock, low_stock_threshold, image_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		it.ID, it.Name, it.Brand, it.Reference, it.Category,
		it.CurrentStock, it.LowStockThreshold, it.ImageURL).
		Scan(&it.CreatedAt, &it.UpdatedAt)
}

func (r *postgresRepo) Update(ctx context.Context, id string, patch ItemPatch) error {
	sets := []string{}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if patch.Name != nil {
		add("item", *patch.Name)
	}
	if patch.Brand != nil {
		add("brand", *patch.Brand)
	}
	if patch.Reference != nil {
		add("reference", *patch.Reference)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.LowStockThreshold != nil {
		add("low_stock_threshold", *patch.LowStockThreshold)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE inventory_items SET %s WHERE id=$%d`, strings.Join(sets, ", "), len(args))
	return r.execOne(ctx, id, query, args...)
}

func (r *postgresRepo) UpdateStock(ctx context.Context, id string, newStock int) error {
	return r.execOne(ctx, id,
		`UPDATE inventory_items SET current_stock=$1, updated_at=NOW() WHERE id=$2`, newStock, id)
}

func (r *postgresRepo) AssignCategory(ctx context.Context, ids []string, category string) error {
	ids = uniqueIDs(ids)
	res, err := r.db.ExecContext(ctx,
		`UPDATE inventory_items SET category=$1, updated_at=NOW() WHERE id = ANY($2)`,
		category, pq.Array(ids))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if int(n) != len(ids) {
		return fmt.Errorf("assign category: %d of %d items updated: %w", n, len(ids), apperr.ErrNotFound)
	}
	return nil
}

// ApplyStockDeltas commits all deltas or none. The guarded UPDATE keeps stock non-negative
// even if another writer moved it after the caller validated.
func (r *postgresRepo) ApplyStockDeltas(ctx context.Context, deltas []StockDelta) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, d := range deltas {
		res, err := tx.ExecContext(ctx, `
			UPDATE inventory_items
			SET current_stock = current_stock + $1, updated_at = NOW()
			WHERE id = $2 AND current_stock + $1 >= 0`,
			d.Delta, d.ItemID)
		if err != nil {
			return fmt.Errorf("update stock %s: %w", d.ItemID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("update stock %s: item missing or stock would go negative: %w", d.ItemID, apperr.ErrConflict)
		}
	}
	return tx.Commit()
}

func (r *postgresRepo) execOne(ctx context.Context, id, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.NotFound("item", id)
	}
	return nil
}
