package ledger

import (
	"errors"
	"fmt"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/transaction"
)

const (
	UnknownItemLabel    = "Unknown item"
	UnknownBrandLabel   = "S/M"
	UnknownProjectLabel = "Unknown project"
)

// ErrInsufficientStock matches every InsufficientStockError.
var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError names the first output line whose request exceeds the available stock.
type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d", e.ItemName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

func (e *InsufficientStockError) Unwrap() error { return apperr.ErrConflict }

// EntryRequest receives goods from a supplier into one item.
type EntryRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
	Supplier string `json:"supplier"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// OutputLine is one (item, quantity) pair of a dispatch.
type OutputLine struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// BulkOutputRequest dispatches several items to a project in one transaction.
type BulkOutputRequest struct {
	Lines       []OutputLine `json:"lines" validate:"required,min=1,dive"`
	ProjectID   string       `json:"project_id"`
	Responsible string       `json:"responsible" validate:"required"`
	Date        string       `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// ThresholdRequest sets an item's low-stock threshold.
type ThresholdRequest struct {
	Threshold int `json:"threshold" validate:"gt=0"`
}

// Receipt is the outcome of a committed ledger mutation.
type Receipt struct {
	Transaction *transaction.Transaction `json:"transaction"`
	Message     string                   `json:"message"`
}

// DispatchLabel names an output after its only item, or after its line count.
func DispatchLabel(lines []transaction.Line) string {
	if len(lines) == 1 {
		return lines[0].ItemName
	}
	return fmt.Sprintf("multi-item dispatch of %d products", len(lines))
}
