package usecase

import (
	"fmt"
	"strings"

	"github.com/yourusername/carpet-retail-bot/internal/schema"
)

// Short-circuit messages for sheets that cannot be reconciled at all.
const (
	reportNoData   = "В таблице нету данных."
	reportNoHeader = "В таблице отсутствует строка заголовков."
)

// Sheet entity names in genitive, the way the report phrases them.
const (
	entityCarpets = "ковров"
	entitySales   = "продаж"
)

// splitTable separates the header row from the data rows. The third
// return value is the short-circuit report when the sheet has nothing to
// reconcile.
func splitTable(table [][]string) ([]string, [][]string, string) {
	if len(table) == 0 {
		return nil, nil, reportNoHeader
	}
	if len(table) == 1 {
		return nil, nil, reportNoData
	}
	return table[0], table[1:], ""
}

// buildInvalidReport renders the per-row validation failures of one run
// for the admin chat. No failures produce an empty report.
func buildInvalidReport(entityName string, rowErrs []schema.RowError) string {
	if len(rowErrs) == 0 {
		return ""
	}

	entries := make([]string, 0, len(rowErrs))
	for _, rowErr := range rowErrs {
		fields := make([]string, 0, len(rowErr.Fields))
		for _, fieldErr := range rowErr.Fields {
			fields = append(fields, fieldErr.Alias+": "+fieldErr.Message)
		}
		entries = append(entries, fmt.Sprintf("• Строка %d: %s\n  ↳ Данные: %s",
			rowErr.Row, strings.Join(fields, "; "), describeRawData(rowErr.RawData)))
	}
	return fmt.Sprintf("⚠️ Обнаружены ошибки при синхронизации %s:\n\n%s",
		entityName, strings.Join(entries, "\n"))
}

// describeRawData joins the non-empty cells of a failed row so the
// operator can find it in the sheet.
func describeRawData(cells []string) string {
	kept := make([]string, 0, len(cells))
	for _, cell := range cells {
		if trimmed := strings.TrimSpace(cell); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	if len(kept) == 0 {
		return "пустая строка"
	}
	return strings.Join(kept, ", ")
}
