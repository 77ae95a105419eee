package repository

import "context"

// SheetSource fetches raw cell data from an external spreadsheet. The
// first returned row is the header; failures are wrapped as
// apperr.ErrSourceUnavailable by implementations.
type SheetSource interface {
	FetchAll(ctx context.Context, spreadsheetID, sheetName string) ([][]string, error)
}
