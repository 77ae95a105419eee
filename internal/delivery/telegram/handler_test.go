package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestValidateFirstName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		input     string
		want      string
		complaint bool
	}{
		{"simple", "Иван", "Иван", false},
		{"trimmed", "  Анна  ", "Анна", false},
		{"hyphenated", "Анна-мария", "Анна-мария", false},
		{"latin", "John", "John", false},
		{"too short", "И", "", true},
		{"lowercase start", "иван", "", true},
		{"digits", "Иван3", "", true},
		{"empty", "   ", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, complaint := validateFirstName(tc.input)
			require.Equal(t, tc.want, got)
			if tc.complaint {
				require.Equal(t, "Имя должно начинаться с заглавной буквы и содержать только буквы", complaint)
			} else {
				require.Empty(t, complaint)
			}
		})
	}
}

func TestValidateLastNameComplaintNamesTheField(t *testing.T) {
	t.Parallel()

	_, complaint := validateLastName("п")
	require.Equal(t, "Фамилия должна начинаться с заглавной буквы и содержать только буквы", complaint)
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	got, complaint := validateEmail("  User@Example.COM ")
	require.Empty(t, complaint)
	require.Equal(t, "user@example.com", got)

	for _, bad := range []string{"", "a@b", "plainaddress", "user@.com", "a@b.c"} {
		_, complaint := validateEmail(bad)
		require.Equal(t, "Некорректный формат email", complaint, "input %q", bad)
	}
}

func TestValidatePhone(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input     string
		want      string
		complaint string
	}{
		{"89161234567", "+79161234567", ""},
		{"8 (916) 123-45-67", "+79161234567", ""},
		{"+7 916 123 45 67", "+79161234567", ""},
		{"79161234567", "+79161234567", ""},
		{"8916123456", "", "Некорректное число цифр для номера начинающегося с 8"},
		{"7916123456789", "", "Некорректное число цифр для номера начинающегося с 7"},
		{"9161234567", "", "Номер должен начинаться с 8 или 7"},
	}
	for _, tc := range cases {
		got, complaint := validatePhone(tc.input)
		require.Equal(t, tc.want, got, "input %q", tc.input)
		require.Equal(t, tc.complaint, complaint, "input %q", tc.input)
	}
}

func TestValidateFromWhomBounds(t *testing.T) {
	t.Parallel()

	_, complaint := validateFromWhom("от")
	require.Equal(t, "Поле 'Откуда узнали' должно содержать минимум 3 символа", complaint)

	_, complaint = validateFromWhom(strings.Repeat("а", 101))
	require.Equal(t, "Поле 'Откуда узнали' должно содержать не более 100 символов", complaint)

	got, complaint := validateFromWhom("  от коллеги  ")
	require.Empty(t, complaint)
	require.Equal(t, "от коллеги", got)
}

func TestValidateUsernameStripsAtPrefix(t *testing.T) {
	t.Parallel()

	got, complaint := validateUsername("@carpet_fan")
	require.Empty(t, complaint)
	require.Equal(t, "carpet_fan", got)

	_, complaint = validateUsername("@")
	require.Equal(t, "Некорректный username", complaint)

	_, complaint = validateUsername(strings.Repeat("x", 33))
	require.Equal(t, "Username должен содержать не более 32 символов", complaint)
}

func TestParseTelegramID(t *testing.T) {
	t.Parallel()

	id, complaint := parseTelegramID(" 123456789 ")
	require.Empty(t, complaint)
	require.EqualValues(t, 123456789, id)

	for _, bad := range []string{"abc", "-5", "0", "12.5", ""} {
		_, complaint := parseTelegramID(bad)
		require.Equal(t, "Telegram ID должен быть целым положительным числом", complaint, "input %q", bad)
	}
}

func TestSplitIntoChunksCountsRunes(t *testing.T) {
	t.Parallel()

	// Cyrillic is two bytes per rune; the split must not land mid-rune.
	text := strings.Repeat("ковёр", 3)
	chunks := splitIntoChunks(text, 7)
	require.Equal(t, []string{"ковёрко", "вёрковё", "р"}, chunks)

	require.Equal(t, []string{"short"}, splitIntoChunks("short", 100))
	require.Nil(t, splitIntoChunks("", 100))
	require.Equal(t, []string{"abc"}, splitIntoChunks("abc", 0))
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	require.Equal(t, "15000", formatPrice(15000))
	require.Equal(t, "15000.5", formatPrice(15000.50))
	require.Equal(t, "99.99", formatPrice(99.99))
	require.Equal(t, "0", formatPrice(0))
}

func TestRegConfirmationText(t *testing.T) {
	t.Parallel()

	s := &regSession{
		FirstName: "Иван",
		LastName:  "Петров",
		Email:     "ivan@example.com",
		Phone:     strPtr("+79161234567"),
		FromWhom:  "от коллеги",
	}
	text := regConfirmationText(s)
	require.Contains(t, text, "👤 <b>Имя:</b> Иван")
	require.Contains(t, text, "👤 <b>Фамилия:</b> Петров")
	require.Contains(t, text, "📧 <b>Email:</b> ivan@example.com")
	require.Contains(t, text, "📱 <b>Телефон:</b> +79161234567")
	require.Contains(t, text, "💡 <b>Откуда узнали:</b> от коллеги")

	s.Phone = nil
	require.Contains(t, regConfirmationText(s), "📱 <b>Телефон:</b> Не указан")
}

func TestPendingDetailsText(t *testing.T) {
	t.Parallel()

	app := &entity.PendingUser{
		TelegramID: 42,
		FirstName:  "Анна",
		Email:      "anna@example.com",
		FromWhom:   "реклама",
		CreatedAt:  time.Date(2025, 3, 7, 14, 30, 0, 0, time.UTC),
	}
	text := pendingDetailsText(app)
	require.Contains(t, text, "<code>42</code>")
	require.Contains(t, text, "👤 <b>Имя:</b> Анна не указана")
	require.Contains(t, text, "📝 <b>Username:</b> @не указан")
	require.Contains(t, text, "📅 <b>Дата заявки:</b> 07.03.2025 14:30")
}

func TestSyncResultText(t *testing.T) {
	t.Parallel()

	clean := &entity.SyncResult{Entity: "carpets", TotalRows: 10, Inserted: 4, Updated: 5, Skipped: 1}
	text := syncResultText(clean)
	require.Contains(t, text, "✅ <b>Синхронизация завершена</b>")
	require.Contains(t, text, "• Всего строк: 10")
	require.Contains(t, text, "• Добавлено: 4")
	require.Contains(t, text, "• Обновлено: 5")
	require.Contains(t, text, "• Пропущено: 1")
	require.NotContains(t, text, "Удалено")
	require.NotContains(t, text, "Ошибки валидации")

	dirty := &entity.SyncResult{TotalRows: 5, BadData: 2, Deleted: 3, InvalidReport: "строка 4: пустой ID"}
	text = syncResultText(dirty)
	require.Contains(t, text, "⚠️ <b>Синхронизация завершена с ошибками</b>")
	require.Contains(t, text, "• Удалено: 3")
	require.Contains(t, text, "❌ <b>Ошибки валидации:</b>\nстрока 4: пустой ID")
}

func TestSearchMenuText(t *testing.T) {
	t.Parallel()

	empty := searchMenuText(&entity.CarpetFilters{}, 120)
	require.Contains(t, empty, "Добро пожаловать в систему поиска ковров!")
	require.Contains(t, empty, "📊 Всего ковров в каталоге: <b>120</b>")

	filters := &entity.CarpetFilters{
		Geometry: []string{"Круглый"},
		Color:    []string{"Красный", "Синий", "Серый", "Белый"},
	}
	text := searchMenuText(filters, 7)
	require.Contains(t, text, "🎯 <b>Активные фильтры:</b>")
	require.Contains(t, text, "• Геометрия: Круглый")
	require.Contains(t, text, "• Цвет: Красный, Синий, Серый и еще 1")
	require.Contains(t, text, "📊 Найдено ковров: <b>7</b>")
	require.NotContains(t, text, "Добро пожаловать")
}

func TestFacetPromptText(t *testing.T) {
	t.Parallel()

	none := facetPromptText(entity.FacetColor, 0, 12)
	require.Contains(t, none, "🎨 <b>Выберите цвет</b>")
	require.Contains(t, none, "📊 Доступно опций: <b>12</b>")

	some := facetPromptText(entity.FacetColor, 3, 12)
	require.Contains(t, some, "✅ Выбрано: <b>3</b> из 12")
}

func TestCarpetCardText(t *testing.T) {
	t.Parallel()

	c := &entity.Carpet{
		CarpetID:   77,
		Collection: "Классика",
		Geometry:   "Прямоугольный",
		Size:       "2x3",
		Color1:     "Красный",
		Color2:     strPtr("Синий"),
		Style:      "Классический",
		Quantity:   4,
		Price:      15990.50,
	}
	text := carpetCardText(c)
	require.Contains(t, text, "🆔 <b>ID:</b> 77")
	require.Contains(t, text, "🎨 <b>Цвета:</b> Красный, Синий")
	require.Contains(t, text, "💰 <b>Цена:</b> 15990.5 руб.")
	require.Contains(t, text, "📦 <b>Количество:</b> 4 шт.")

	bare := &entity.Carpet{CarpetID: 1}
	require.Contains(t, carpetCardText(bare), "🎨 <b>Цвета:</b> не указан")
}

func TestSearchResultsText(t *testing.T) {
	t.Parallel()

	require.Contains(t, searchResultsText(nil, 0), msgSearchNoResults)

	carpets := []entity.Carpet{
		{CarpetID: 1, Color1: "Красный", Quantity: 1, Price: 100},
		{CarpetID: 2, Color1: "Синий", Quantity: 2, Price: 200},
	}
	text := searchResultsText(carpets, 25)
	require.Contains(t, text, "📋 <b>Результаты поиска</b>")
	require.Contains(t, text, "Найдено ковров: <b>25</b>")
	require.Contains(t, text, "━━━━━━━━━━━━━━━\n1. ")
	require.Contains(t, text, "━━━━━━━━━━━━━━━\n2. ")
}

func TestBroadcastResultText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "📢 Рассылка завершена: 12 отправлено, 3 ошибок", broadcastResultText(12, 3))
}

func TestRoleFromKey(t *testing.T) {
	t.Parallel()

	role, ok := roleFromKey("colleague")
	require.True(t, ok)
	require.Equal(t, entity.RoleColleague, role)

	role, ok = roleFromKey("designer")
	require.True(t, ok)
	require.Equal(t, entity.RoleDesigner, role)

	role, ok = roleFromKey("undefined")
	require.True(t, ok)
	require.Equal(t, entity.RoleUndefined, role)

	_, ok = roleFromKey("owner")
	require.False(t, ok)
}

func TestPageNavRow(t *testing.T) {
	t.Parallel()

	require.Nil(t, pageNavRow("admin_pending_page", 0, 1))
	require.Nil(t, pageNavRow("admin_pending_page", 0, 0))

	first := pageNavRow("admin_pending_page", 0, 3)
	require.Len(t, first, 1)
	require.Equal(t, "admin_pending_page|1", *first[0].CallbackData)

	middle := pageNavRow("admin_ban_page", 1, 3)
	require.Len(t, middle, 2)
	require.Equal(t, "admin_ban_page|0", *middle[0].CallbackData)
	require.Equal(t, "admin_ban_page|2", *middle[1].CallbackData)

	last := pageNavRow("admin_pending_page", 2, 3)
	require.Len(t, last, 1)
	require.Equal(t, "⬅️ Пред", last[0].Text)
}

func TestPendingListKeyboard(t *testing.T) {
	t.Parallel()

	users := []entity.PendingUser{
		{TelegramID: 10, FirstName: "Иван", LastName: strPtr("Петров")},
		{TelegramID: 20, FirstName: "Анна"},
	}
	kb := pendingListKeyboard(users, 0, 1)

	require.Len(t, kb.InlineKeyboard, 3)
	require.Equal(t, "👤 Иван Петров (ID: 10)", kb.InlineKeyboard[0][0].Text)
	require.Equal(t, "admin_pending_user|10", *kb.InlineKeyboard[0][0].CallbackData)
	require.Equal(t, "👤 Анна (ID: 20)", kb.InlineKeyboard[1][0].Text)
	require.Equal(t, "admin_back_to_menu", *kb.InlineKeyboard[2][0].CallbackData)

	// Several pages add a navigation row before the back button.
	kb = pendingListKeyboard(users, 0, 2)
	require.Len(t, kb.InlineKeyboard, 4)
	require.Equal(t, "admin_pending_page|1", *kb.InlineKeyboard[2][0].CallbackData)
}

func TestBanListKeyboardUsernameFallback(t *testing.T) {
	t.Parallel()

	users := []entity.RegisteredUser{
		{TelegramID: 1, FirstName: "Иван", Username: strPtr("ivan")},
		{TelegramID: 2, FirstName: "Анна"},
	}
	kb := banListKeyboard(users, 0, 1)

	require.Equal(t, "👤 Иван (@ivan)", kb.InlineKeyboard[0][0].Text)
	require.Equal(t, "admin_ban_pick|1", *kb.InlineKeyboard[0][0].CallbackData)
	require.Equal(t, "👤 Анна (@не указан)", kb.InlineKeyboard[1][0].Text)
}

func TestSearchMenuKeyboard(t *testing.T) {
	t.Parallel()

	// No filters, no results: only the five facet rows.
	kb := searchMenuKeyboard(&entity.CarpetFilters{}, false)
	require.Len(t, kb.InlineKeyboard, 5)
	require.Equal(t, "📐 Геометрия", kb.InlineKeyboard[0][0].Text)
	require.Equal(t, "search_facet|geometry", *kb.InlineKeyboard[0][0].CallbackData)
	require.Equal(t, "search_facet|collection", *kb.InlineKeyboard[4][0].CallbackData)

	// Results available on an empty filter: just the results button.
	kb = searchMenuKeyboard(&entity.CarpetFilters{}, true)
	require.Len(t, kb.InlineKeyboard, 6)
	require.Len(t, kb.InlineKeyboard[5], 1)
	require.Equal(t, "search_results", *kb.InlineKeyboard[5][0].CallbackData)

	// Active filters add the clear-all button next to it.
	kb = searchMenuKeyboard(&entity.CarpetFilters{Size: []string{"2x3"}}, true)
	require.Len(t, kb.InlineKeyboard[5], 2)
	require.Equal(t, "search_clear_all", *kb.InlineKeyboard[5][1].CallbackData)
}

func TestFacetOptionsKeyboard(t *testing.T) {
	t.Parallel()

	options := []entity.FacetOption{
		{Value: "Красный", Count: 5, Selected: true},
		{Value: "Синий", Count: 3},
		{Value: "Серый", Count: 1},
	}
	kb := facetOptionsKeyboard(entity.FacetColor, options)

	// Two options per row, the odd one on its own, then three action rows.
	require.Len(t, kb.InlineKeyboard, 5)
	require.Equal(t, "✅️ Красный (5)", kb.InlineKeyboard[0][0].Text)
	require.Equal(t, "search_toggle|color|0", *kb.InlineKeyboard[0][0].CallbackData)
	require.Equal(t, "☐ Синий (3)", kb.InlineKeyboard[0][1].Text)
	require.Equal(t, "search_toggle|color|1", *kb.InlineKeyboard[0][1].CallbackData)
	require.Equal(t, "☐ Серый (1)", kb.InlineKeyboard[1][0].Text)

	require.Equal(t, "search_apply", *kb.InlineKeyboard[2][0].CallbackData)
	require.Equal(t, "search_clear|color", *kb.InlineKeyboard[3][0].CallbackData)
	require.Equal(t, "search_menu", *kb.InlineKeyboard[4][0].CallbackData)
}

func TestAdminStartKeyboardIncludesMainMenu(t *testing.T) {
	t.Parallel()

	kb := adminStartKeyboard()
	require.Len(t, kb.InlineKeyboard, 4)
	require.Equal(t, "admin_panel", *kb.InlineKeyboard[0][0].CallbackData)
	require.Equal(t, "find_carpets", *kb.InlineKeyboard[1][0].CallbackData)
	require.Equal(t, "favorites", *kb.InlineKeyboard[2][0].CallbackData)
	require.Equal(t, "create_pdf", *kb.InlineKeyboard[3][0].CallbackData)
}

func TestFavoriteButtonsKeyboardGrid(t *testing.T) {
	t.Parallel()

	carpets := []entity.Carpet{{CarpetID: 1}, {CarpetID: 2}, {CarpetID: 3}, {CarpetID: 4}}
	kb := favoriteButtonsKeyboard(carpets)

	require.Len(t, kb.InlineKeyboard, 2)
	require.Len(t, kb.InlineKeyboard[0], 3)
	require.Len(t, kb.InlineKeyboard[1], 1)
	require.Equal(t, "⭐ 1", kb.InlineKeyboard[0][0].Text)
	require.Equal(t, "fav_add|4", *kb.InlineKeyboard[1][0].CallbackData)
}
