package schema

import (
	"testing"
)

func TestNormalizeSize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantMsg string
	}{
		{name: "plain", raw: "2x3", want: "2x3"},
		{name: "comma decimals and cyrillic separator", raw: "2,00 Х 3,50", want: "2x3.5"},
		{name: "multiplication sign", raw: "160×230", want: "160x230"},
		{name: "uppercase latin", raw: "80X150", want: "80x150"},
		{name: "fraction kept", raw: "2.5x4", want: "2.5x4"},
		{name: "trailing zeros stripped", raw: "1,20x2,40", want: "1.2x2.4"},
		{name: "empty", raw: "", wantMsg: "Размер отсутствует"},
		{name: "no separator", raw: "200", wantMsg: "Размер должен содержать один разделитель 'x'"},
		{name: "two separators", raw: "2x3x4", wantMsg: "Размер должен содержать один разделитель 'x'"},
		{name: "missing part", raw: "x3", wantMsg: "Размер содержит пустое значение"},
		{name: "letters", raw: "abcx3", wantMsg: "Размер должен содержать числовые значения"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := normalizeSize(tt.raw)
			if msg != tt.wantMsg {
				t.Fatalf("normalizeSize(%q) message = %q, want %q", tt.raw, msg, tt.wantMsg)
			}
			if got != tt.want {
				t.Fatalf("normalizeSize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantMsg string
	}{
		{name: "integer", raw: "15000", want: 15000},
		{name: "currency and spaces", raw: "15 000 ₽", want: 15000},
		{name: "nbsp thousands", raw: "12 500,50", want: 12500.5},
		{name: "comma decimal", raw: "99,90", want: 99.9},
		{name: "empty", raw: "", wantMsg: "Базовая стоимость отсутствует"},
		{name: "currency only", raw: "₽", wantMsg: "Базовая стоимость отсутствует"},
		{name: "garbage", raw: "дорого", wantMsg: "Не удалось преобразовать базовую стоимость в число"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := parsePrice(tt.raw)
			if msg != tt.wantMsg {
				t.Fatalf("parsePrice(%q) message = %q, want %q", tt.raw, msg, tt.wantMsg)
			}
			if got != tt.want {
				t.Fatalf("parsePrice(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantMsg string
	}{
		{name: "lowercase", raw: "красный", want: "Красный"},
		{name: "two words", raw: "темно синий", want: "Темно Синий"},
		{name: "comma separated", raw: "СЕРЫЙ,белый", want: "Серый Белый"},
		{name: "single letter", raw: "б", want: "Б"},
		{name: "digits", raw: "123", wantMsg: "Цвет должен начинаться с заглавной буквы"},
		{name: "punctuation only", raw: ",", wantMsg: "Цвет содержит недопустимое значение"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := normalizeColor(tt.raw)
			if msg != tt.wantMsg {
				t.Fatalf("normalizeColor(%q) message = %q, want %q", tt.raw, msg, tt.wantMsg)
			}
			if got != tt.want {
				t.Fatalf("normalizeColor(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseSaleDate(t *testing.T) {
	for _, raw := range []string{"2024-03-08", "08.03.2024"} {
		date, msg := parseSaleDate(raw)
		if msg != "" {
			t.Fatalf("parseSaleDate(%q) unexpected message %q", raw, msg)
		}
		if date.Year() != 2024 || date.Month() != 3 || date.Day() != 8 {
			t.Fatalf("parseSaleDate(%q) = %v", raw, date)
		}
	}

	if _, msg := parseSaleDate(""); msg != "обязательное поле" {
		t.Fatalf("empty date message = %q", msg)
	}
	if _, msg := parseSaleDate("вчера"); msg != "Не удалось разобрать дату" {
		t.Fatalf("bad date message = %q", msg)
	}
}
