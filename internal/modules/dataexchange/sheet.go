// Package dataexchange converts the catalog, the movement history and project reports to
// and from xlsx workbooks.
package dataexchange

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/georgemunganga/jfsolar-inventory/internal/modules/transaction"
)

var (
	ErrEmptyFile   = errors.New("the file has no data rows")
	ErrNoValidRows = errors.New("no valid rows found")
	ErrUnreadable  = errors.New("the file is not a readable xlsx workbook")
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// newWorkbook creates a workbook with one sheet holding headers and rows.
func newWorkbook(sheet string, headers []string, rows [][]interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}
	head := make([]interface{}, len(headers))
	for i, h := range headers {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		f.Close()
		return nil, err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func writeWorkbook(w io.Writer, sheet string, headers []string, rows [][]interface{}) error {
	f, err := newWorkbook(sheet, headers, rows)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// record is one data row keyed by its header text.
type record map[string]string

// pick returns the first non-empty value among the header aliases.
func (r record) pick(aliases ...string) string {
	for _, a := range aliases {
		if v := strings.TrimSpace(r[a]); v != "" {
			return v
		}
	}
	return ""
}

// readRecords reads the first sheet of an xlsx workbook. The first row is the header.
func readRecords(rd io.Reader) ([]record, error) {
	f, err := excelize.OpenReader(rd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptyFile
	}

	header := rows[0]
	var out []record
	for _, row := range rows[1:] {
		rec := make(record, len(header))
		empty := true
		for i, h := range header {
			if i < len(row) {
				rec[strings.TrimSpace(h)] = row[i]
				if strings.TrimSpace(row[i]) != "" {
					empty = false
				}
			}
		}
		if !empty {
			out = append(out, rec)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyFile
	}
	return out, nil
}

// atoi parses an integer cell, truncating decimals. Unparsable cells yield def.
func atoi(s string, def int) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return def
}

var dateLayouts = []string{transaction.DateLayout, "01-02-06", "02/01/2006", "2006/01/02"}

// normalizeDate converts common spreadsheet date renderings to YYYY-MM-DD. Unrecognized
// values are returned unchanged.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(transaction.DateLayout)
		}
	}
	return s
}
