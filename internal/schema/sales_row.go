package schema

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
)

// Column aliases of the sales sheet.
const (
	SalesAliasID         = "Id ковра"
	SalesAliasDesign     = "Дизайн"
	SalesAliasSize       = "Размер"
	SalesAliasCollection = "Коллекция"
	SalesAliasStyle      = "Стиль"
	SalesAliasDate       = "Дата продажи"
	SalesAliasQuantity   = "Кол-во проданных, шт."
	SalesAliasPayment    = "Тип оплаты"
	SalesAliasBasicPrice = "Цена базовая"
	SalesAliasSalePrice  = "Цена продажи"
	SalesAliasDiscount   = "Скидка, %"
	SalesAliasNote       = "Дополнительная информация"
	SalesAliasSoldTo     = "Покупатель"
)

// UnknownBuyer substitutes a blank "Покупатель" cell. It is part of the
// sales business key, so the substitution has to be stable.
const UnknownBuyer = "Unknown"

// SalesRow is one validated row of the sales sheet. Design, size,
// collection and style are the sheet's own copies of the carpet
// attributes at sale time; they are stored as-is, not looked up in the
// catalog.
type SalesRow struct {
	CarpetID      int64
	Design        string
	Size          string
	Collection    string
	Style         string
	SaleDate      time.Time
	Quantity      int
	PaymentMethod entity.PaymentMethod
	BasicPrice    float64
	SalePrice     float64
	Discount      float64
	Note          string
	SoldTo        string
}

// ParseSalesRow validates one data row of the sales sheet.
func ParseSalesRow(row Row) (SalesRow, []FieldError) {
	var (
		record SalesRow
		errs   []FieldError
	)
	fail := func(alias, message string) {
		errs = append(errs, FieldError{Alias: alias, Message: message})
	}

	id, msg := parseEntityID(row.Cell(SalesAliasID))
	if msg != "" {
		fail(SalesAliasID, msg)
	}
	record.CarpetID = id

	record.Design = row.Cell(SalesAliasDesign)
	record.Collection = row.Cell(SalesAliasCollection)
	record.Style = row.Cell(SalesAliasStyle)
	record.Note = row.Cell(SalesAliasNote)

	size, msg := normalizeSize(row.Cell(SalesAliasSize))
	if msg != "" {
		fail(SalesAliasSize, msg)
	}
	record.Size = size

	date, msg := parseSaleDate(row.Cell(SalesAliasDate))
	if msg != "" {
		fail(SalesAliasDate, msg)
	}
	record.SaleDate = date

	if raw := row.Cell(SalesAliasQuantity); raw == "" {
		fail(SalesAliasQuantity, "обязательное поле")
	} else {
		quantity, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			fail(SalesAliasQuantity, "должно быть целым числом")
		case quantity <= 0:
			fail(SalesAliasQuantity, "Кол-во проданных должно быть > 0")
		default:
			record.Quantity = quantity
		}
	}

	if raw := row.Cell(SalesAliasPayment); raw == "" {
		fail(SalesAliasPayment, "обязательное поле")
	} else if method := entity.PaymentMethod(raw); !method.Valid() {
		fail(SalesAliasPayment, "Недопустимый тип оплаты")
	} else {
		record.PaymentMethod = method
	}

	for _, price := range []struct {
		alias string
		dst   *float64
	}{
		{SalesAliasBasicPrice, &record.BasicPrice},
		{SalesAliasSalePrice, &record.SalePrice},
	} {
		value, msg := parsePrice(row.Cell(price.alias))
		switch {
		case msg != "":
			fail(price.alias, msg)
		case value <= 0:
			fail(price.alias, "Цена должна быть больше > 0")
		default:
			*price.dst = value
		}
	}

	discount, msg := parseDiscount(row.Cell(SalesAliasDiscount))
	if msg != "" {
		fail(SalesAliasDiscount, msg)
	}
	record.Discount = discount

	record.SoldTo = row.Cell(SalesAliasSoldTo)
	if record.SoldTo == "" {
		record.SoldTo = UnknownBuyer
	}

	if len(errs) > 0 {
		return SalesRow{}, errs
	}
	return record, nil
}

func parseDiscount(raw string) (float64, string) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if cleaned == "" {
		return 0, ""
	}
	number, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, "Не удалось преобразовать скидку в числовой формат"
	}
	value := number.InexactFloat64()
	if value < 0 || value > 100 {
		return 0, "Диапазон скидки от 0 до 100%"
	}
	return value, ""
}
