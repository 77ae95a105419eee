package excel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
	"github.com/yourusername/carpet-retail-bot/internal/schema"
)

func TestBuildSalesReportRoundtrip(t *testing.T) {
	t.Parallel()

	delivered := "Доставлен"
	sales := []entity.Sale{
		{
			CarpetID:      1,
			Design:        "Медальон",
			Size:          "2x3",
			Collection:    "Классика",
			Style:         "Классический",
			SaleDate:      time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Quantity:      2,
			PaymentMethod: entity.PaymentCash,
			BasicPrice:    15000,
			SalePrice:     13500,
			Discount:      10,
			ExtraInfo:     &delivered,
			SoldTo:        "ООО Ромашка",
		},
		{
			CarpetID:      7,
			Design:        "Полосы",
			Size:          "2x2",
			Collection:    "Модерн",
			Style:         "Современный",
			SaleDate:      time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			Quantity:      1,
			PaymentMethod: entity.PaymentCashless,
			BasicPrice:    22000,
			SalePrice:     22000,
			Discount:      0,
			SoldTo:        "Unknown",
		},
	}

	data, err := BuildSalesReport(sales)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	rows, err := ParseWorkbook(data)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, salesReportHeaders(), rows[0])
	require.Equal(t, []string{
		"1", "Медальон", "2x3", "Классика", "Классический", "2024-03-15",
		"2", "Наличный", "15000", "13500", "10", "Доставлен", "ООО Ромашка",
	}, rows[1])
	require.Equal(t, []string{
		"7", "Полосы", "2x2", "Модерн", "Современный", "2024-04-01",
		"1", "Безналичный", "22000", "22000", "0", "", "Unknown",
	}, rows[2])
}

func TestBuildSalesReportEmpty(t *testing.T) {
	t.Parallel()

	data, err := BuildSalesReport(nil)
	require.NoError(t, err)

	rows, err := ParseWorkbook(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, schema.SalesAliasID, rows[0][0])
}

func TestParseWorkbookGarbage(t *testing.T) {
	t.Parallel()

	_, err := ParseWorkbook([]byte("not an xlsx"))
	require.Error(t, err)
}
