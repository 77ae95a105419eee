// Package sheets reads carpet and sales rows from Google Sheets.
package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/yourusername/carpet-retail-bot/internal/domain/apperr"
	"github.com/yourusername/carpet-retail-bot/internal/domain/constants"
	"github.com/yourusername/carpet-retail-bot/internal/domain/repository"
)

type sheetClient struct {
	svc *sheetsapi.Service
	log zerolog.Logger
}

// NewClient builds a read-only Sheets client from a service-account
// credentials file.
func NewClient(ctx context.Context, credentialsFile string, logg zerolog.Logger) (repository.SheetSource, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return &sheetClient{svc: svc, log: logg}, nil
}

// FetchAll returns every cell of the named sheet as strings, header row
// included. Transient failures are retried before the fetch is reported
// as apperr.ErrSourceUnavailable.
func (c *sheetClient) FetchAll(ctx context.Context, spreadsheetID, sheetName string) ([][]string, error) {
	var lastErr error
	for attempt := 1; attempt <= constants.FetchMaxRetries; attempt++ {
		resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, sheetName).Context(ctx).Do()
		if err == nil {
			c.log.Debug().Str("sheet", sheetName).Int("rows", len(resp.Values)).Msg("fetched sheet values")
			return toStringRows(resp.Values), nil
		}

		lastErr = err
		c.log.Warn().Err(err).
			Str("sheet", sheetName).
			Int("attempt", attempt).
			Msg("sheet fetch failed")

		if attempt < constants.FetchMaxRetries {
			select {
			case <-ctx.Done():
				return nil, apperr.MarkSourceUnavailable(ctx.Err())
			case <-time.After(constants.FetchRetryDelaySeconds * time.Second):
			}
		}
	}
	return nil, apperr.MarkSourceUnavailable(fmt.Errorf("fetching sheet %q: %w", sheetName, lastErr))
}

func toStringRows(values [][]any) [][]string {
	rows := make([][]string, 0, len(values))
	for _, raw := range values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			if s, ok := cell.(string); ok {
				row = append(row, s)
				continue
			}
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows
}
