package inventory

import (
	"strings"
	"time"
)

// Uncategorized is the category given to items created without one.
const Uncategorized = "Sin Categoría"

// DefaultLowStockThreshold applies when an item carries no usable threshold.
const DefaultLowStockThreshold = 10

// StockStatus classifies an item's stock against its threshold.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "out_of_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusAvailable  StockStatus = "available"
)

// Item is one product in the warehouse catalog.
type Item struct {
	ID                string    `json:"id"`
	Name              string    `json:"item"`
	Brand             string    `json:"brand"`
	Reference         string    `json:"reference"`
	Category          string    `json:"category"`
	CurrentStock      int       `json:"current_stock"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	ImageURL          string    `json:"image_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Threshold returns the low-stock threshold, falling back to the default for unset values.
func (i *Item) Threshold() int {
	if i.LowStockThreshold <= 0 {
		return DefaultLowStockThreshold
	}
	return i.LowStockThreshold
}

// IsLowStock reports whether stock is at or below the threshold.
func (i *Item) IsLowStock() bool { return i.CurrentStock <= i.Threshold() }

// Status returns the display status of the item.
func (i *Item) Status() StockStatus {
	switch {
	case i.CurrentStock <= 0:
		return StatusOutOfStock
	case i.IsLowStock():
		return StatusLowStock
	default:
		return StatusAvailable
	}
}

// Matches reports whether search (case-insensitive) appears in name, brand or reference.
func (i *Item) Matches(search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(i.Name), q) ||
		strings.Contains(strings.ToLower(i.Brand), q) ||
		strings.Contains(strings.ToLower(i.Reference), q)
}

// ItemPatch carries the descriptive fields of a partial update. Nil fields are left unchanged.
// Stock is excluded; it only moves through the ledger.
type ItemPatch struct {
	Name              *string `json:"item,omitempty"`
	Brand             *string `json:"brand,omitempty"`
	Reference         *string `json:"reference,omitempty"`
	Category          *string `json:"category,omitempty"`
	LowStockThreshold *int    `json:"low_stock_threshold,omitempty" validate:"omitempty,gt=0"`
	ImageURL          *string `json:"image_url,omitempty"`
}

// Apply copies the set fields of p onto it.
func (p ItemPatch) Apply(it *Item) {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Brand != nil {
		it.Brand = *p.Brand
	}
	if p.Reference != nil {
		it.Reference = *p.Reference
	}
	if p.Category != nil {
		it.Category = *p.Category
	}
	if p.LowStockThreshold != nil {
		it.LowStockThreshold = *p.LowStockThreshold
	}
	if p.ImageURL != nil {
		it.ImageURL = *p.ImageURL
	}
}

// StockDelta is a signed stock change for one item.
type StockDelta struct {
	ItemID string
	Delta  int
}
