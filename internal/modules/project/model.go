package project

import "github.com/georgemunganga/jfsolar-inventory/internal/modules/transaction"

// Status is the lifecycle state of a project.
type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Project is a work order that consumes dispatched materials.
type Project struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     Status `json:"status"`
	CreatedAt  string `json:"created_at"`
	FinishedAt string `json:"finished_at,omitempty"`
}

// Report aggregates a project's dispatch history.
type Report struct {
	Project          *Project                   `json:"project"`
	Transactions     []*transaction.Transaction `json:"transactions"`
	TotalUnits       int                        `json:"total_units"`
	TransactionCount int                        `json:"transaction_count"`
}

// ReportRow is one flattened material line of a project report.
type ReportRow struct {
	Date        string `json:"date"`
	Material    string `json:"material"`
	Brand       string `json:"brand"`
	Quantity    int    `json:"quantity"`
	Responsible string `json:"responsible"`
}

// Rows flattens multi-item dispatches into one row per line.
func (r *Report) Rows() []ReportRow {
	var rows []ReportRow
	for _, t := range r.Transactions {
		responsible := t.Responsible
		if responsible == "" {
			responsible = "No asignado"
		}
		if len(t.Items) == 0 {
			rows = append(rows, ReportRow{Date: t.Date, Material: t.ItemName, Brand: "S/M", Quantity: t.Quantity, Responsible: responsible})
			continue
		}
		for _, l := range t.Items {
			rows = append(rows, ReportRow{Date: t.Date, Material: l.ItemName, Brand: l.Brand, Quantity: l.Quantity, Responsible: responsible})
		}
	}
	return rows
}
