package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
)

// Start screens.
const (
	msgWelcomeNewUser = "🎉 Добро пожаловать! Пожалуйста, завершите регистрацию для продолжения." +
		"\n\n📝 Используйте кнопку ниже для начала процесса регистрации."
	msgWelcomeAdmin      = "👑 С возвращением, Администратор"
	msgWelcomeRegistered = "👋 С возвращением"
	msgPendingStatus     = "⏳ Ваша регистрация ожидает подтверждения. Пожалуйста, дождитесь подтверждения администратора." +
		"\n\n📄 Ваши данные регистрации отправлены и находятся на рассмотрении."
	msgBannedNotice = "🚫 Ваш аккаунт заблокирован." +
		"\n\n📧 Обратитесь в службу поддержки для разблокировки аккаунта."
	msgProcessingError = "⚠️ Что-то пошло не так. Попробуйте позже"
	msgPDFPlaceholder  = "📄 Функция создания PDF будет реализована позже"
)

// Registration dialog.
const (
	msgRegWelcome        = "👋 Добро пожаловать в регистрацию!\n\n👤 Введите ваше <b>имя</b>:"
	msgRegLastNamePrompt = "👤 Теперь введите вашу <b>фамилию</b>:"
	msgRegEmailPrompt    = "📧 Введите ваш <b>email</b>:"
	msgRegPhonePrompt    = "📱 Введите ваш <b>номер телефона</b>:\n\n" +
		"🔹 Формат: +7XXXXXXXXXX или 8XXXXXXXXXX\n" +
		"🔹 Или напишите 'пропустить' для пропуска"
	msgRegFromWhomPrompt = "💡 <b>Откуда вы узнали</b> о нашем сервисе?\n\n" +
		"(Например: от друзей, из рекламы, в интернете)"

	msgRegSuccess = "✅ Регистрация успешно отправлена!\n" +
		"⏳ Ваша заявка рассматривается администратором.\n" +
		"📱 Мы уведомим вас о результате в ближайшее время."
	msgRegSaveError = "❌ Произошла ошибка при сохранении регистрации. Попробуйте позже."
	msgNonTextError = "❌ Пожалуйста, отправьте текстовое сообщение"
)

// Admin panel.
const (
	msgAdminWelcome        = "👑 <b>Панель администратора</b>\n\nВыбери действие:"
	msgPendingListTitle    = "⏳ <b>Заявки на регистрацию</b>"
	msgNoPendingUsers      = "✅ Нет заявок на рассмотрение"
	msgRolePrompt          = "✅ <b>Выберите роль для пользователя:</b>\n"
	msgDeclineReasonPrompt = "❌ <b>Введите причину отклонения</b> (или пропустите):\n"

	msgAddUserTelegramID = "🆔 <b>Добавление пользователя</b>\n\nВведите Telegram ID пользователя:"
	msgAddUserUsername   = "📝 Введите username пользователя (или пропустите):"
	msgAddUserFirstName  = "👤 Введите имя пользователя:"
	msgAddUserLastName   = "👤 Введите фамилию пользователя (или пропустите):"
	msgAddUserEmail      = "📧 Введите email пользователя (или пропустите):"
	msgAddUserRole       = "🎭 Выберите роль пользователя:"

	msgBanEntry = "🚫 <b>Блокировка пользователя</b>\n\nВыберите способ поиска пользователя:"
	msgBanQuery = "🔍 <b>Поиск пользователя</b>\n\nВведите имя, фамилию, username или email:"
	msgBanEmpty = "Нету пользователь с такими данными, попробуй ещё раз"
	msgBanReasonPrompt = "📝 Введите причину блокировки (или пропустите):"

	msgBroadcastPrompt = "📢 <b>Рассылка сообщения</b>\n\nВведите сообщение для отправки всем пользователям:"

	msgOperationCancelled = "❌ Операция отменена"
	msgOperationError     = "❌ Произошла ошибка при выполнении операции"
	msgUserNotFound       = "❌ Пользователь не найден"
)

// Google Sheets sync.
const (
	msgSyncChooseTable = "🔄 <b>Синхронизация Google Таблиц</b>\n\n" +
		"📊 Выберите таблицу для синхронизации:\n\n" +
		"🔗 <b>Источник:</b> Google Spreadsheet"
	msgSyncCarpetsPrompt = "🔄 <b>Синхронизация Google Таблиц</b>\n\n" +
		"📊 <b>Таблица:</b> Ковры\n" +
		"🔗 <b>Источник:</b> Google Spreadsheet\n\n" +
		"⚠️ Синхронизация обновит данные о коврах в базе данных.\n" +
		"Продолжить?"
	msgSyncSalesPrompt = "🔄 <b>Синхронизация Google Таблиц</b>\n\n" +
		"📊 <b>Таблица:</b> Продажи\n" +
		"🔗 <b>Источник:</b> Google Spreadsheet\n\n" +
		"⚠️ Синхронизация обновит данные о продажах в базе данных.\n" +
		"Продолжить?"
	msgSyncStarting   = "🔄 Запуск синхронизации..."
	msgImportStarting = "📥 Импорт файла... Это может занять несколько минут."
	msgExportStarting = "📤 Подготовка выгрузки продаж..."
)

// Carpet search.
const (
	msgSearchTitle   = "🔍 <b>Поиск ковров</b>"
	msgSearchWelcome = "Добро пожаловать в систему поиска ковров!\n\n" +
		"Выберите любой фильтр для начала поиска. " +
		"После выбора параметров в одном фильтре, остальные фильтры " +
		"будут показывать c учётом применённых фильтров.\n\n" +
		"Вы можете выбирать фильтры в любом порядке."
	msgSearchResultsTitle = "📋 <b>Результаты поиска</b>"
	msgSearchNoResults    = "😔 По вашим критериям ковры не найдены. Попробуйте изменить фильтры."
)

// Favorites.
const (
	msgFavoritesTitle = "❤️ <b>Избранное</b>"
	msgFavoritesEmpty = "⭐ В избранном пока пусто. Добавляйте ковры из результатов поиска."
)

// facetEmoji decorates the facet menu buttons and prompts.
var facetEmoji = map[entity.Facet]string{
	entity.FacetGeometry:   "📐",
	entity.FacetSize:       "📏",
	entity.FacetColor:      "🎨",
	entity.FacetStyle:      "✨",
	entity.FacetCollection: "📚",
}

var facetPrompts = map[entity.Facet]string{
	entity.FacetGeometry:   "📐 <b>Выберите геометрию</b>\n\nВыберите одну или несколько форм:",
	entity.FacetSize:       "📏 <b>Выберите размер</b>\n\nВыберите один или несколько размеров:",
	entity.FacetColor:      "🎨 <b>Выберите цвет</b>\n\nВыберите один или несколько цветов:",
	entity.FacetStyle:      "✨ <b>Выберите стиль</b>\n\nВыберите один или несколько стилей:",
	entity.FacetCollection: "📚 <b>Выберите</b>\n\nВыберите одну или несколько коллекций:",
}

func orPlaceholder(value *string, placeholder string) string {
	if value == nil || *value == "" {
		return placeholder
	}
	return *value
}

func regConfirmationText(s *regSession) string {
	phone := "Не указан"
	if s.Phone != nil {
		phone = *s.Phone
	}
	return "📋 <b>Проверьте введённые данные:</b>\n\n" +
		fmt.Sprintf("👤 <b>Имя:</b> %s\n", s.FirstName) +
		fmt.Sprintf("👤 <b>Фамилия:</b> %s\n", s.LastName) +
		fmt.Sprintf("📧 <b>Email:</b> %s\n", s.Email) +
		fmt.Sprintf("📱 <b>Телефон:</b> %s\n", phone) +
		fmt.Sprintf("💡 <b>Откуда узнали:</b> %s\n\n", s.FromWhom) +
		"❓ Всё корректно?"
}

func newApplicationText(app *entity.PendingUser) string {
	lastName := ""
	if app.LastName != nil {
		lastName = *app.LastName
	}
	return "🆕 <b>Новая заявка на регистрацию!</b>\n\n" +
		fmt.Sprintf("👤 <b>Имя:</b> %s %s\n", app.FirstName, lastName) +
		fmt.Sprintf("🆔 <b>Telegram ID:</b> <code>%d</code>\n", app.TelegramID) +
		fmt.Sprintf("👤 <b>Username:</b> @%s\n", orPlaceholder(app.Username, "не указан")) +
		fmt.Sprintf("📧 <b>Email:</b> %s\n", app.Email) +
		fmt.Sprintf("📱 <b>Телефон:</b> %s\n", orPlaceholder(app.Phone, "не указан")) +
		fmt.Sprintf("💡 <b>Откуда узнал:</b> %s\n\n", app.FromWhom) +
		"Используйте команды администратора для одобрения или отклонения заявки."
}

func pendingListText(total int64) string {
	return msgPendingListTitle + fmt.Sprintf("\n\n📊 Всего заявок: %d", total)
}

func banUserListText(total int64) string {
	return fmt.Sprintf("👥 <b>Найденные пользователи (%d):</b>\n", total)
}

func pendingDetailsText(app *entity.PendingUser) string {
	return "👤 <b>Данные пользователя:</b>\n\n" +
		fmt.Sprintf("🆔 <b>ID:</b> <code>%d</code>\n", app.TelegramID) +
		fmt.Sprintf("👤 <b>Имя:</b> %s %s\n", app.FirstName, orPlaceholder(app.LastName, "не указана")) +
		fmt.Sprintf("📝 <b>Username:</b> @%s\n", orPlaceholder(app.Username, "не указан")) +
		fmt.Sprintf("📧 <b>Email:</b> %s\n", app.Email) +
		fmt.Sprintf("📱 <b>Телефон:</b> %s\n", orPlaceholder(app.Phone, "не указан")) +
		fmt.Sprintf("💡 <b>Откуда узнал:</b> %s\n", app.FromWhom) +
		fmt.Sprintf("📅 <b>Дата заявки:</b> %s\n\n", app.CreatedAt.Format("02.01.2006 15:04")) +
		"Выберите действие:"
}

func addUserConfirmationText(s *addUserSession) string {
	return "📋 <b>Подтвердите добавление пользователя:</b>\n\n" +
		fmt.Sprintf("🆔 <b>ID:</b> <code>%d</code>\n", s.TelegramID) +
		fmt.Sprintf("📝 <b>Username:</b> @%s\n", orPlaceholder(s.Username, "не указан")) +
		fmt.Sprintf("👤 <b>Имя:</b> %s %s\n", s.FirstName, orPlaceholder(s.LastName, "не указана")) +
		fmt.Sprintf("📧 <b>Email:</b> %s\n", orPlaceholder(s.Email, "не указан")) +
		fmt.Sprintf("🎭 <b>Роль:</b> %s\n\n", s.Role) +
		"Подтвердить добавление?"
}

func banConfirmationText(s *banSession) string {
	reason := "не указана"
	if s.Reason != nil && *s.Reason != "" {
		reason = *s.Reason
	}
	return "⚠️ <b>Подтвердите блокировку пользователя:</b>\n\n" +
		fmt.Sprintf("👤 <b>Пользователь:</b> %s\n", s.TargetLabel) +
		fmt.Sprintf("📝 <b>Причина:</b> %s\n\n", reason) +
		"❗️ Пользователь будет заблокирован и уведомлен об этом."
}

func broadcastConfirmationText(draft string) string {
	return "📢 <b>Подтвердите рассылку:</b>\n\n" +
		fmt.Sprintf("📝 <b>Сообщение:</b>\n%s\n\n", draft) +
		"👥 <b>Получатели:</b> Все зарегистрированные пользователи\n\n" +
		"Отправить сообщение?"
}

func broadcastResultText(sent, failed int) string {
	return fmt.Sprintf("📢 Рассылка завершена: %d отправлено, %d ошибок", sent, failed)
}

// Notifications delivered to the affected user.

const msgUserApproved = "✅ <b>Регистрация одобрена!</b>\n\n" +
	"Добро пожаловать! Теперь у вас есть доступ к боту.\n\n" +
	"Используйте /start для начала работы."

const msgUserAddedManually = "✅ Администратор добавил ваc!\n\n" +
	"Теперь у вас есть доступ к боту.\n\n" +
	"Используйте /start для начала работы."

func userRejectedText(reason string) string {
	text := "❌ <b>Регистрация отклонена</b>\n\n" +
		"К сожалению, ваша заявка на регистрацию была отклонена.\n\n"
	if reason != "" {
		text += fmt.Sprintf("Причина: %s\n\n", reason)
	}
	return text
}

func userBannedText(reason string) string {
	text := "🚫 <b>Ваш аккаунт заблокирован</b>\n\nВаш доступ к боту был ограничен.\n\n"
	if reason != "" {
		text += fmt.Sprintf("Причина: %s\n\n", reason)
	}
	return text
}

func adminApprovedText(role entity.UserRole) string {
	return "Пользователь одобрен с ролью: " + string(role)
}

func adminAddedText(role entity.UserRole) string {
	return "Пользователь добавлен с ролью: " + string(role)
}

func adminRejectedText(reason string) string {
	if reason != "" {
		return "Регистрация отклонена, причина: " + reason
	}
	return "Регистрация отклонена"
}

func adminBannedText(reason string) string {
	if reason != "" {
		return "Пользователь заблокирован, причина: " + reason
	}
	return "Пользователь заблокирован"
}

func syncResultText(res *entity.SyncResult) string {
	header := "✅ <b>Синхронизация завершена</b>"
	if res.InvalidReport != "" {
		header = "⚠️ <b>Синхронизация завершена с ошибками</b>"
	}
	text := header + "\n\n📊 <b>Статистика:</b>\n" +
		fmt.Sprintf("• Всего строк: %d\n", res.TotalRows) +
		fmt.Sprintf("• Добавлено: %d\n", res.Inserted) +
		fmt.Sprintf("• Обновлено: %d\n", res.Updated) +
		fmt.Sprintf("• Ошибка в данных: %d\n", res.BadData) +
		fmt.Sprintf("• Пропущено: %d\n", res.Skipped)
	if res.Deleted > 0 {
		text += fmt.Sprintf("• Удалено: %d\n", res.Deleted)
	}
	if res.InvalidReport != "" {
		text += "\n❌ <b>Ошибки валидации:</b>\n" + res.InvalidReport
	}
	return text
}

func searchMenuText(filters *entity.CarpetFilters, total int64) string {
	if filters.IsEmpty() {
		return msgSearchTitle + "\n\n" + msgSearchWelcome +
			fmt.Sprintf("\n\n📊 Всего ковров в каталоге: <b>%d</b>", total)
	}

	var b strings.Builder
	b.WriteString(msgSearchTitle + "\n\n🎯 <b>Активные фильтры:</b>\n")
	for _, facet := range entity.AllFacets {
		values, _ := filters.Values(facet)
		if len(values) == 0 {
			continue
		}
		shown := values
		if len(shown) > 3 {
			shown = shown[:3]
		}
		line := strings.Join(shown, ", ")
		if len(values) > 3 {
			line += fmt.Sprintf(" и еще %d", len(values)-3)
		}
		b.WriteString(fmt.Sprintf("• %s: %s\n", facet.Title(), line))
	}
	b.WriteString(fmt.Sprintf("\n📊 Найдено ковров: <b>%d</b>", total))
	return b.String()
}

func facetPromptText(facet entity.Facet, selected, total int) string {
	text := facetPrompts[facet]
	if selected > 0 {
		return text + fmt.Sprintf("\n\n✅ Выбрано: <b>%d</b> из %d", selected, total)
	}
	return text + fmt.Sprintf("\n\n📊 Доступно опций: <b>%d</b>", total)
}

func carpetCardText(c *entity.Carpet) string {
	colors := "не указан"
	if list := c.Colors(); len(list) > 0 {
		colors = strings.Join(list, ", ")
	}
	return fmt.Sprintf("🆔 <b>ID:</b> %d\n", c.CarpetID) +
		fmt.Sprintf("📚 <b>Коллекция:</b> %s\n", c.Collection) +
		fmt.Sprintf("📐 <b>Геометрия:</b> %s\n", c.Geometry) +
		fmt.Sprintf("📏 <b>Размер:</b> %s\n", c.Size) +
		fmt.Sprintf("🎨 <b>Цвета:</b> %s\n", colors) +
		fmt.Sprintf("✨ <b>Стиль:</b> %s\n", c.Style) +
		fmt.Sprintf("💰 <b>Цена:</b> %s руб.\n", formatPrice(c.Price)) +
		fmt.Sprintf("📦 <b>Количество:</b> %d шт.", c.Quantity)
}

// formatPrice drops the trailing zeros the float representation would
// otherwise show on whole-ruble prices.
func formatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func carpetListText(carpets []entity.Carpet) string {
	parts := make([]string, 0, len(carpets))
	for i := range carpets {
		parts = append(parts, fmt.Sprintf("━━━━━━━━━━━━━━━\n%d. %s", i+1, carpetCardText(&carpets[i])))
	}
	return strings.Join(parts, "\n\n")
}

func searchResultsText(carpets []entity.Carpet, total int64) string {
	if len(carpets) == 0 {
		return msgSearchResultsTitle + "\n\n" + msgSearchNoResults
	}
	return msgSearchResultsTitle + "\n\n" +
		fmt.Sprintf("Найдено ковров: <b>%d</b>\n\n", total) +
		carpetListText(carpets)
}
