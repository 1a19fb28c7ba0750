package dataexchange

import (
	"io"

	"github.com/georgemunganga/jfsolar-inventory/internal/modules/inventory"
)

const inventorySheet = "Inventario JF Solar"

var inventoryHeaders = []string{"ID", "Item", "Marca", "Referencia", "Stock Actual", "Categoría", "Umbral Alerta"}

// WriteInventory writes the catalog as a workbook.
func WriteInventory(w io.Writer, items []*inventory.Item) error {
	rows := make([][]interface{}, 0, len(items))
	for _, it := range items {
		rows = append(rows, []interface{}{
			it.ID, it.Name, it.Brand, it.Reference, it.CurrentStock, it.Category, it.Threshold(),
		})
	}
	return writeWorkbook(w, inventorySheet, inventoryHeaders, rows)
}

// ParseInventory reads catalog rows. Rows without a product name are skipped.
func ParseInventory(r io.Reader) ([]*inventory.Item, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	var items []*inventory.Item
	for _, rec := range records {
		name := rec.pick("Item", "item", "Nombre", "Producto")
		if name == "" {
			continue
		}
		items = append(items, &inventory.Item{
			ID:                rec.pick("ID", "id"),
			Name:              name,
			Brand:             rec.pick("Marca", "marca"),
			Reference:         rec.pick("Referencia", "referencia"),
			CurrentStock:      atoi(rec.pick("Stock Actual", "Stock"), 0),
			Category:          rec.pick("Categoría", "categoria"),
			LowStockThreshold: atoi(rec.pick("Umbral Alerta", "umbral", "Alerta"), inventory.DefaultLowStockThreshold),
		})
	}
	if len(items) == 0 {
		return nil, ErrNoValidRows
	}
	return items, nil
}
