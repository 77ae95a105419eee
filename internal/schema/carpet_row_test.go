package schema

import (
	"testing"
)

var carpetHeader = []string{
	CarpetAliasID, CarpetAliasCollection, CarpetAliasGeometry, CarpetAliasSize,
	CarpetAliasDesign, CarpetAliasColor1, CarpetAliasColor2, CarpetAliasColor3,
	CarpetAliasStyle, CarpetAliasQuantity, CarpetAliasPrice,
}

func carpetCells(overrides map[string]string) []string {
	base := map[string]string{
		CarpetAliasID:         "101",
		CarpetAliasCollection: "Классика",
		CarpetAliasGeometry:   "Прямоугольный",
		CarpetAliasSize:       "2x3",
		CarpetAliasDesign:     "Медальон",
		CarpetAliasColor1:     "Красный",
		CarpetAliasStyle:      "Классический",
		CarpetAliasQuantity:   "4",
		CarpetAliasPrice:      "15000",
	}
	for alias, value := range overrides {
		base[alias] = value
	}
	cells := make([]string, len(carpetHeader))
	for i, alias := range carpetHeader {
		cells[i] = base[alias]
	}
	return cells
}

func parseOneCarpet(t *testing.T, overrides map[string]string) (CarpetRow, []FieldError) {
	t.Helper()
	valid, invalid := ParseTable(carpetHeader, [][]string{carpetCells(overrides)}, ParseCarpetRow)
	if len(invalid) > 0 {
		return CarpetRow{}, invalid[0].Fields
	}
	if len(valid) != 1 {
		t.Fatalf("expected one valid row, got %d", len(valid))
	}
	return valid[0], nil
}

func TestParseCarpetRow_Valid(t *testing.T) {
	row, errs := parseOneCarpet(t, map[string]string{
		CarpetAliasSize:   "2,00 х 3,50",
		CarpetAliasColor2: "синий",
		CarpetAliasPrice:  "15 000,50 ₽",
	})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if row.CarpetID != 101 {
		t.Errorf("CarpetID = %d", row.CarpetID)
	}
	if row.Size != "2x3.5" {
		t.Errorf("Size = %q", row.Size)
	}
	if row.Color1 != "Красный" {
		t.Errorf("Color1 = %q", row.Color1)
	}
	if row.Color2 == nil || *row.Color2 != "Синий" {
		t.Errorf("Color2 = %v", row.Color2)
	}
	if row.Color3 != nil {
		t.Errorf("Color3 = %v", row.Color3)
	}
	if row.Quantity != 4 {
		t.Errorf("Quantity = %d", row.Quantity)
	}
	if row.Price != 15000.5 {
		t.Errorf("Price = %v", row.Price)
	}
}

func TestParseCarpetRow_FieldFailures(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		alias     string
		message   string
	}{
		{
			name:      "missing id",
			overrides: map[string]string{CarpetAliasID: ""},
			alias:     CarpetAliasID,
			message:   "обязательное поле",
		},
		{
			name:      "non numeric id",
			overrides: map[string]string{CarpetAliasID: "abc"},
			alias:     CarpetAliasID,
			message:   "должен быть целым числом",
		},
		{
			name:      "zero id",
			overrides: map[string]string{CarpetAliasID: "0"},
			alias:     CarpetAliasID,
			message:   "должен быть больше 0",
		},
		{
			name:      "negative quantity",
			overrides: map[string]string{CarpetAliasQuantity: "-1"},
			alias:     CarpetAliasQuantity,
			message:   "Количество не может быть отрицательным",
		},
		{
			name:      "zero price",
			overrides: map[string]string{CarpetAliasPrice: "0"},
			alias:     CarpetAliasPrice,
			message:   "Базовая стоимость должна быть больше 0",
		},
		{
			name:      "bad size",
			overrides: map[string]string{CarpetAliasSize: "квадрат"},
			alias:     CarpetAliasSize,
			message:   "Размер должен содержать один разделитель 'x'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parseOneCarpet(t, tt.overrides)
			if len(errs) != 1 {
				t.Fatalf("expected one error, got %v", errs)
			}
			if errs[0].Alias != tt.alias || errs[0].Message != tt.message {
				t.Fatalf("error = %+v, want %s: %s", errs[0], tt.alias, tt.message)
			}
		})
	}
}

func TestParseCarpetRow_Colors(t *testing.T) {
	t.Run("no colors at all", func(t *testing.T) {
		_, errs := parseOneCarpet(t, map[string]string{CarpetAliasColor1: ""})
		if len(errs) != 1 || errs[0].Message != "Должен быть указан хотя бы один цвет" {
			t.Fatalf("errors = %v", errs)
		}
	})

	t.Run("first color required", func(t *testing.T) {
		_, errs := parseOneCarpet(t, map[string]string{
			CarpetAliasColor1: "",
			CarpetAliasColor2: "Синий",
		})
		if len(errs) != 1 || errs[0].Message != "Цвет 1 обязателен" {
			t.Fatalf("errors = %v", errs)
		}
	})

	t.Run("duplicates rejected", func(t *testing.T) {
		_, errs := parseOneCarpet(t, map[string]string{
			CarpetAliasColor2: "красный",
		})
		if len(errs) != 1 || errs[0].Message != "Цвета у одного ковра не должны повторяться" {
			t.Fatalf("errors = %v", errs)
		}
		if errs[0].Alias != CarpetAliasColor2 {
			t.Fatalf("alias = %q", errs[0].Alias)
		}
	})
}

func TestParseCarpetRow_QuantityUnsetDefaultsToZero(t *testing.T) {
	row, errs := parseOneCarpet(t, map[string]string{CarpetAliasQuantity: ""})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if row.Quantity != 0 {
		t.Fatalf("Quantity = %d, want 0", row.Quantity)
	}
}

func TestParseTable_RowNumbering(t *testing.T) {
	rows := [][]string{
		carpetCells(nil),
		carpetCells(map[string]string{CarpetAliasPrice: "бесплатно"}),
	}
	valid, invalid := ParseTable(carpetHeader, rows, ParseCarpetRow)
	if len(valid) != 1 || len(invalid) != 1 {
		t.Fatalf("valid=%d invalid=%d", len(valid), len(invalid))
	}
	// Header is sheet row 1, so the second data row is sheet row 3.
	if invalid[0].Row != 3 {
		t.Fatalf("invalid row number = %d, want 3", invalid[0].Row)
	}
}

func TestParseTable_FirstDataRowIsRowTwo(t *testing.T) {
	rows := [][]string{carpetCells(map[string]string{CarpetAliasID: "abc"})}
	_, invalid := ParseTable(carpetHeader, rows, ParseCarpetRow)
	if len(invalid) != 1 || invalid[0].Row != 2 {
		t.Fatalf("invalid = %+v, want row 2", invalid)
	}
}

func TestParseTable_MissingColumnStaysUnset(t *testing.T) {
	header := []string{CarpetAliasID, CarpetAliasSize, CarpetAliasColor1, CarpetAliasPrice}
	rows := [][]string{{"7", "2x3", "Серый", "9900"}}
	valid, invalid := ParseTable(header, rows, ParseCarpetRow)
	if len(invalid) != 0 {
		t.Fatalf("unexpected invalid rows: %+v", invalid)
	}
	if valid[0].Collection != "" || valid[0].Quantity != 0 {
		t.Fatalf("expected unset defaults, got %+v", valid[0])
	}
}

func TestParseTable_ShortRow(t *testing.T) {
	// The row ends before the price column: the cell reads as unset.
	rows := [][]string{carpetCells(nil)[:9]}
	_, invalid := ParseTable(carpetHeader, rows, ParseCarpetRow)
	if len(invalid) != 1 {
		t.Fatalf("expected one invalid row, got %+v", invalid)
	}
	found := false
	for _, fe := range invalid[0].Fields {
		if fe.Alias == CarpetAliasPrice && fe.Message == "Базовая стоимость отсутствует" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected missing price error, got %+v", invalid[0].Fields)
	}
}
