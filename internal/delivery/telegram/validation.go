package telegram

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	namePattern  = regexp.MustCompile(`^[A-ZА-ЯЁ][a-zа-яё\-\s]*$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// Field validators return the cleaned value and an empty message, or a
// user-facing Russian message describing what is wrong.

func validateFirstName(raw string) (string, string) {
	return validateNameField(raw, "Имя должно")
}

func validateLastName(raw string) (string, string) {
	return validateNameField(raw, "Фамилия должна")
}

func validateNameField(raw, subject string) (string, string) {
	value := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(value); n < 2 || n > 32 {
		return "", subject + " начинаться с заглавной буквы и содержать только буквы"
	}
	if !namePattern.MatchString(value) {
		return "", subject + " начинаться с заглавной буквы и содержать только буквы"
	}
	return value, ""
}

func validateEmail(raw string) (string, string) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if n := utf8.RuneCountInString(value); n < 5 || n > 64 {
		return "", "Некорректный формат email"
	}
	if !emailPattern.MatchString(value) {
		return "", "Некорректный формат email"
	}
	return value, ""
}

// validatePhone normalizes Russian numbers to +7XXXXXXXXXX form.
func validatePhone(raw string) (string, string) {
	digits := nonDigits.ReplaceAllString(strings.TrimSpace(raw), "")
	switch {
	case strings.HasPrefix(digits, "8"):
		if len(digits) != 11 {
			return "", "Некорректное число цифр для номера начинающегося с 8"
		}
		return "+7" + digits[1:], ""
	case strings.HasPrefix(digits, "7"):
		if len(digits) != 11 {
			return "", "Некорректное число цифр для номера начинающегося с 7"
		}
		return "+" + digits, ""
	}
	return "", "Номер должен начинаться с 8 или 7"
}

func validateFromWhom(raw string) (string, string) {
	value := strings.TrimSpace(raw)
	if utf8.RuneCountInString(value) < 3 {
		return "", "Поле 'Откуда узнали' должно содержать минимум 3 символа"
	}
	if utf8.RuneCountInString(value) > 100 {
		return "", "Поле 'Откуда узнали' должно содержать не более 100 символов"
	}
	return value, ""
}

// validateUsername accepts the @-prefixed and bare forms alike.
func validateUsername(raw string) (string, string) {
	value := strings.TrimPrefix(strings.TrimSpace(raw), "@")
	if value == "" {
		return "", "Некорректный username"
	}
	if utf8.RuneCountInString(value) > 32 {
		return "", "Username должен содержать не более 32 символов"
	}
	return value, ""
}

func parseTelegramID(raw string) (int64, string) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, "Telegram ID должен быть целым положительным числом"
	}
	return id, ""
}
