package schema

import (
	"strconv"
)

// Column aliases of the carpets sheet.
const (
	CarpetAliasID         = "Id Ковра"
	CarpetAliasCollection = "Коллекция"
	CarpetAliasGeometry   = "Геометрия"
	CarpetAliasSize       = "Размер"
	CarpetAliasDesign     = "Дизайн"
	CarpetAliasColor1     = "Цвет 1"
	CarpetAliasColor2     = "Цвет 2"
	CarpetAliasColor3     = "Цвет 3"
	CarpetAliasStyle      = "Стиль"
	CarpetAliasQuantity   = "Количество, шт"
	CarpetAliasPrice      = "Базовая стоимость"
)

// CarpetRow is one validated row of the carpets sheet.
type CarpetRow struct {
	CarpetID   int64
	Collection string
	Geometry   string
	Size       string
	Design     string
	Color1     string
	Color2     *string
	Color3     *string
	Style      string
	Quantity   int
	Price      float64
}

// ParseCarpetRow validates one data row of the carpets sheet. All field
// failures of the row are collected, not just the first one.
func ParseCarpetRow(row Row) (CarpetRow, []FieldError) {
	var (
		record CarpetRow
		errs   []FieldError
	)
	fail := func(alias, message string) {
		errs = append(errs, FieldError{Alias: alias, Message: message})
	}

	id, msg := parseEntityID(row.Cell(CarpetAliasID))
	if msg != "" {
		fail(CarpetAliasID, msg)
	}
	record.CarpetID = id

	record.Collection = row.Cell(CarpetAliasCollection)
	record.Geometry = row.Cell(CarpetAliasGeometry)
	record.Design = row.Cell(CarpetAliasDesign)
	record.Style = row.Cell(CarpetAliasStyle)

	size, msg := normalizeSize(row.Cell(CarpetAliasSize))
	if msg != "" {
		fail(CarpetAliasSize, msg)
	}
	record.Size = size

	record.Color1, record.Color2, record.Color3, errs = parseCarpetColors(row, errs)

	if raw := row.Cell(CarpetAliasQuantity); raw != "" {
		quantity, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			fail(CarpetAliasQuantity, "должно быть целым числом")
		case quantity < 0:
			fail(CarpetAliasQuantity, "Количество не может быть отрицательным")
		default:
			record.Quantity = quantity
		}
	}

	price, msg := parsePrice(row.Cell(CarpetAliasPrice))
	switch {
	case msg != "":
		fail(CarpetAliasPrice, msg)
	case price <= 0:
		fail(CarpetAliasPrice, "Базовая стоимость должна быть больше 0")
	default:
		record.Price = price
	}

	if len(errs) > 0 {
		return CarpetRow{}, errs
	}
	return record, nil
}

// parseCarpetColors validates the three color slots as a group: slot 1 is
// mandatory, at least one slot must be filled, duplicates are rejected.
func parseCarpetColors(row Row, errs []FieldError) (string, *string, *string, []FieldError) {
	raw1 := row.Cell(CarpetAliasColor1)
	raw2 := row.Cell(CarpetAliasColor2)
	raw3 := row.Cell(CarpetAliasColor3)

	if raw1 == "" && raw2 == "" && raw3 == "" {
		errs = append(errs, FieldError{Alias: CarpetAliasColor1, Message: "Должен быть указан хотя бы один цвет"})
		return "", nil, nil, errs
	}
	if raw1 == "" {
		errs = append(errs, FieldError{Alias: CarpetAliasColor1, Message: "Цвет 1 обязателен"})
	}

	seen := map[string]bool{}
	normalizeSlot := func(alias, raw string) string {
		if raw == "" {
			return ""
		}
		color, msg := normalizeColor(raw)
		if msg != "" {
			errs = append(errs, FieldError{Alias: alias, Message: msg})
			return ""
		}
		if seen[color] {
			errs = append(errs, FieldError{Alias: alias, Message: "Цвета у одного ковра не должны повторяться"})
			return ""
		}
		seen[color] = true
		return color
	}

	color1 := normalizeSlot(CarpetAliasColor1, raw1)
	var color2, color3 *string
	if c := normalizeSlot(CarpetAliasColor2, raw2); c != "" {
		color2 = &c
	}
	if c := normalizeSlot(CarpetAliasColor3, raw3); c != "" {
		color3 = &c
	}
	return color1, color2, color3, errs
}
