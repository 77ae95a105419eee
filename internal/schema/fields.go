package schema

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Validators return the cleaned value and a Russian message, empty when
// the value passed. Messages are shown to the operator verbatim in the
// sync report, prefixed with the column alias.

var (
	sizeReplacer  = strings.NewReplacer(" ", "", ",", ".", "×", "x", "х", "x")
	priceReplacer = strings.NewReplacer("₽", "", " ", "", " ", "", ",", ".")
)

func parseEntityID(raw string) (int64, string) {
	if raw == "" {
		return 0, "обязательное поле"
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, "должен быть целым числом"
	}
	if id <= 0 {
		return 0, "должен быть больше 0"
	}
	return id, ""
}

// normalizeSize brings "2,00 Х 3,50" style cells to the canonical "2x3.5"
// form: exactly one x separator, both parts decimal with trailing zeros
// stripped.
func normalizeSize(raw string) (string, string) {
	if raw == "" {
		return "", "Размер отсутствует"
	}
	cleaned := sizeReplacer.Replace(strings.ToLower(raw))
	if strings.Count(cleaned, "x") != 1 {
		return "", "Размер должен содержать один разделитель 'x'"
	}
	widthRaw, heightRaw, _ := strings.Cut(cleaned, "x")
	width, msg := normalizeSizePart(widthRaw)
	if msg != "" {
		return "", msg
	}
	height, msg := normalizeSizePart(heightRaw)
	if msg != "" {
		return "", msg
	}
	return width + "x" + height, ""
}

func normalizeSizePart(raw string) (string, string) {
	if raw == "" {
		return "", "Размер содержит пустое значение"
	}
	number, err := decimal.NewFromString(raw)
	if err != nil {
		return "", "Размер должен содержать числовые значения"
	}
	return number.String(), ""
}

// parsePrice strips the currency sign and locale separators before
// parsing. The wording of the messages is shared by every price column.
func parsePrice(raw string) (float64, string) {
	if raw == "" {
		return 0, "Базовая стоимость отсутствует"
	}
	cleaned := priceReplacer.Replace(raw)
	if cleaned == "" {
		return 0, "Базовая стоимость отсутствует"
	}
	number, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, "Не удалось преобразовать базовую стоимость в число"
	}
	return number.InexactFloat64(), ""
}

// normalizeColor title-cases every token of the cell ("темно синий" →
// "Темно Синий"). Tokens may be separated by commas or spaces.
func normalizeColor(raw string) (string, string) {
	tokens := strings.Fields(strings.ReplaceAll(raw, ",", " "))
	normalized := make([]string, 0, len(tokens))
	for _, token := range tokens {
		runes := []rune(token)
		var word string
		if len(runes) > 1 {
			word = strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
		} else {
			word = strings.ToUpper(token)
		}
		if !unicode.IsLetter([]rune(word)[0]) {
			return "", "Цвет должен начинаться с заглавной буквы"
		}
		normalized = append(normalized, word)
	}

	color := strings.Join(normalized, " ")
	if color == "" {
		return "", "Цвет содержит недопустимое значение"
	}
	return color, ""
}

var saleDateLayouts = []string{"2006-01-02", "02.01.2006"}

func parseSaleDate(raw string) (time.Time, string) {
	if raw == "" {
		return time.Time{}, "обязательное поле"
	}
	for _, layout := range saleDateLayouts {
		if date, err := time.Parse(layout, raw); err == nil {
			return date, ""
		}
	}
	return time.Time{}, "Не удалось разобрать дату"
}
