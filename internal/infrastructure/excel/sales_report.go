package excel

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
	"github.com/yourusername/carpet-retail-bot/internal/schema"
)

// BuildSalesReport renders sales into an .xlsx workbook, one row per
// record. Headers reuse the sales-sheet column labels so the export can
// be synced back in.
func BuildSalesReport(sales []entity.Sale) ([]byte, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := salesReportHeaders()
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, sale := range sales {
		values := salesReportRowValues(sale)
		rowIdx := i + 2
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func salesReportHeaders() []string {
	return []string{
		schema.SalesAliasID,
		schema.SalesAliasDesign,
		schema.SalesAliasSize,
		schema.SalesAliasCollection,
		schema.SalesAliasStyle,
		schema.SalesAliasDate,
		schema.SalesAliasQuantity,
		schema.SalesAliasPayment,
		schema.SalesAliasBasicPrice,
		schema.SalesAliasSalePrice,
		schema.SalesAliasDiscount,
		schema.SalesAliasNote,
		schema.SalesAliasSoldTo,
	}
}

func salesReportRowValues(sale entity.Sale) []interface{} {
	note := ""
	if sale.ExtraInfo != nil {
		note = *sale.ExtraInfo
	}
	return []interface{}{
		sale.CarpetID,
		sale.Design,
		sale.Size,
		sale.Collection,
		sale.Style,
		sale.SaleDate.Format("2006-01-02"),
		sale.Quantity,
		string(sale.PaymentMethod),
		sale.BasicPrice,
		sale.SalePrice,
		sale.Discount,
		note,
		sale.SoldTo,
	}
}
