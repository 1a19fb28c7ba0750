package dataexchange

import (
	"io"
	"strings"

	"github.com/georgemunganga/jfsolar-inventory/internal/modules/transaction"
)

const historySheet = "Historial Movimientos"

var historyHeaders = []string{"ID", "Fecha", "Tipo", "Item", "ItemId", "Cantidad", "Detalle", "Responsable"}

func typeLabel(t transaction.Type) string {
	if t == transaction.TypeEntry {
		return "Entrada"
	}
	return "Salida"
}

// WriteHistory writes one row per transaction header.
func WriteHistory(w io.Writer, txs []*transaction.Transaction) error {
	rows := make([][]interface{}, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, []interface{}{
			t.ID, t.Date, typeLabel(t.Type), t.ItemName, t.ItemID, t.Quantity, t.Detail, t.Responsible,
		})
	}
	return writeWorkbook(w, historySheet, historyHeaders, rows)
}

// ParseHistory reads movement rows. A Tipo containing "salida" is an output; anything
// else is an entry. Rows missing Tipo or Item are skipped.
func ParseHistory(r io.Reader) ([]*transaction.Transaction, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	var txs []*transaction.Transaction
	for _, rec := range records {
		kind, name := rec.pick("Tipo", "tipo"), rec.pick("Item", "item")
		if kind == "" || name == "" {
			continue
		}
		t := &transaction.Transaction{
			ID:          rec.pick("ID", "id"),
			Type:        transaction.TypeEntry,
			Date:        normalizeDate(rec.pick("Fecha", "fecha")),
			ItemName:    name,
			ItemID:      rec.pick("ItemId", "itemId"),
			Quantity:    atoi(rec.pick("Cantidad", "cantidad"), 0),
			Detail:      rec.pick("Detalle", "detalle"),
			Responsible: rec.pick("Responsable", "responsable"),
		}
		if strings.Contains(strings.ToLower(kind), "salida") {
			t.Type = transaction.TypeOutput
		}
		txs = append(txs, t)
	}
	if len(txs) == 0 {
		return nil, ErrNoValidRows
	}
	return txs, nil
}
