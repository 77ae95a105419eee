// Package excel parses uploaded catalog workbooks and builds the sales
// export workbook.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/carpet-retail-bot/internal/domain/apperr"
)

// ParseWorkbook reads the first worksheet of an .xlsx document into raw
// rows, header row first. Cells come back as formatted strings, the same
// shape a Google Sheets fetch produces.
func ParseWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.MarkSourceUnavailable(fmt.Errorf("opening workbook: %w", err))
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperr.MarkSourceUnavailable(fmt.Errorf("reading worksheet %q: %w", sheet, err))
	}
	return rows, nil
}
