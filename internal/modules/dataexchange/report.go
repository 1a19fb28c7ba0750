package dataexchange

import (
	"io"

	"github.com/georgemunganga/jfsolar-inventory/internal/modules/project"
)

const reportSheet = "Reporte de Proyecto"

var reportHeaders = []string{"Fecha", "Material / Insumo", "Marca", "Cantidad", "Responsable"}

// WriteProjectReport writes one row per dispatched line of the project.
func WriteProjectReport(w io.Writer, rep *project.Report) error {
	lines := rep.Rows()
	rows := make([][]interface{}, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []interface{}{l.Date, l.Material, l.Brand, l.Quantity, l.Responsible})
	}
	return writeWorkbook(w, reportSheet, reportHeaders, rows)
}
