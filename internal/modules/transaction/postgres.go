package transaction

import (
	"context"
	"database/sql"

	"github.com/georgemunganga/jfsolar-inventory/internal/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetAll(ctx context.Context) ([]*Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, seq, type, to_char(date, 'YYYY-MM-DD'), item_id, item_name, quantity,
		       detail, project_id, responsible, created_at
		FROM transactions
		ORDER BY date DESC, seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*Transaction
	byID := map[string]*Transaction{}
	for rows.Next() {
		t := &Transaction{}
		var itemID, projectID, responsible sql.NullString
		if err := rows.Scan(&t.ID, &t.Seq, &t.Type, &t.Date, &itemID, &t.ItemName, &t.Quantity,
			&t.Detail, &projectID, &responsible, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.ItemID = itemID.String
		t.ProjectID = projectID.String
		t.Responsible = responsible.String
		txs = append(txs, t)
		byID[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lineRows, err := r.db.QueryContext(ctx, `
		SELECT transaction_id, item_id, item_name, brand, quantity
		FROM transaction_items ORDER BY transaction_id, id`)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()
	for lineRows.Next() {
		var txID string
		var l Line
		if err := lineRows.Scan(&txID, &l.ItemID, &l.ItemName, &l.Brand, &l.Quantity); err != nil {
			return nil, err
		}
		if t, ok := byID[txID]; ok {
			t.Items = append(t.Items, l)
		}
	}
	return txs, lineRows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, t *Transaction) error {
	return insertHeader(ctx, r.db, t)
}

// CreateWithLines writes the header and its lines in one transaction, so a failed line
// insert never leaves an orphaned header.
func (r *postgresRepo) CreateWithLines(ctx context.Context, t *Transaction, lines []Line) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if err := insertHeader(ctx, tx, t); err != nil {
			return err
		}
		for _, l := range lines {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO transaction_items (transaction_id, item_id, item_name, brand, quantity)
				VALUES ($1,$2,$3,$4,$5)`,
				t.ID, l.ItemID, l.ItemName, l.Brand, l.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertHeader(ctx context.Context, q database.Tx, t *Transaction) error {
	return q.QueryRowContext(ctx, `
		INSERT INTO transactions
		  (id, type, date, item_id, item_name, quantity, detail, project_id, responsible)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING seq, created_at`,
		t.ID, t.Type, t.Date, nullable(t.ItemID), t.ItemName, t.Quantity,
		t.Detail, nullable(t.ProjectID), nullable(t.Responsible)).
		Scan(&t.Seq, &t.CreatedAt)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
