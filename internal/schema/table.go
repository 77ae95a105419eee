// Package schema validates raw spreadsheet rows and turns them into
// typed records. Every column is addressed by its Russian header alias
// and every field is checked by a plain validation function, so a bad
// cell produces a per-field message instead of failing the whole import.
package schema

import (
	"strings"

	"github.com/yourusername/carpet-retail-bot/internal/domain/constants"
)

// FieldError is one failed cell of a row, addressed by column alias.
type FieldError struct {
	Alias   string
	Message string
}

// RowError collects the failures of a single data row together with the
// sheet row number (header is row 1) and the raw cells for the report.
type RowError struct {
	Row     int
	Fields  []FieldError
	RawData []string
}

// Row gives validators access to the cells of one data row by column
// alias. Cells are trimmed; a column missing from the header reads as
// an empty cell.
type Row struct {
	cells map[string]string
}

// Cell returns the trimmed value of the aliased column, or "" when the
// column is absent or blank.
func (r Row) Cell(alias string) string {
	return r.cells[alias]
}

// ParseTable maps data rows through parse, splitting them into typed
// records and per-row errors. Row numbers count from the first data row
// of the sheet. A duplicated header label resolves to its last column.
func ParseTable[T any](header []string, rows [][]string, parse func(Row) (T, []FieldError)) ([]T, []RowError) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var (
		valid   []T
		invalid []RowError
	)
	for n, raw := range rows {
		row := Row{cells: make(map[string]string, len(index))}
		for alias, i := range index {
			if i < len(raw) {
				row.cells[alias] = strings.TrimSpace(raw[i])
			}
		}

		record, errs := parse(row)
		if len(errs) > 0 {
			invalid = append(invalid, RowError{
				Row:     n + constants.FirstDataRowNumber,
				Fields:  errs,
				RawData: raw,
			})
			continue
		}
		valid = append(valid, record)
	}
	return valid, invalid
}
