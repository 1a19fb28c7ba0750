package transaction

import (
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for transaction and project dates.
const DateLayout = "2006-01-02"

// Type distinguishes stock-increasing from stock-decreasing records.
type Type string

const (
	TypeEntry  Type = "entry"
	TypeOutput Type = "output"
)

func (t Type) Valid() bool { return t == TypeEntry || t == TypeOutput }

// Line is one item within a multi-item dispatch.
type Line struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Brand    string `json:"brand"`
	Quantity int    `json:"quantity"`
}

// Transaction is an immutable audit record of a stock mutation.
type Transaction struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	Date        string    `json:"date"`
	ItemID      string    `json:"item_id,omitempty"`
	ItemName    string    `json:"item_name"`
	Quantity    int       `json:"quantity"`
	Items       []Line    `json:"items,omitempty"`
	Detail      string    `json:"detail"`
	ProjectID   string    `json:"project_id,omitempty"`
	Responsible string    `json:"responsible,omitempty"`
	Seq         int64     `json:"seq"`
	CreatedAt   time.Time `json:"created_at"`
}

// LineTotal sums the line quantities.
func LineTotal(lines []Line) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

// HistoryFilter narrows a history listing. From and To are inclusive calendar days.
type HistoryFilter struct {
	Search    string
	From      string
	To        string
	ProjectID string
}

func (f HistoryFilter) match(t *Transaction) bool {
	if f.ProjectID != "" && t.ProjectID != f.ProjectID {
		return false
	}
	if f.From != "" && t.Date < f.From {
		return false
	}
	if f.To != "" && t.Date > f.To {
		return false
	}
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(t.ItemName), q) ||
		strings.Contains(strings.ToLower(t.Detail), q) ||
		strings.Contains(strings.ToLower(t.Responsible), q)
}
