package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
)

// Keyboard builders. Callback data with arguments uses the "prefix|arg"
// form; fixed menu entries keep their bare names.

func registrationStartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Начать регистрацию", "start_registration"),
		),
	)
}

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔍 Поиск ковров", "find_carpets"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❤️ Избранное", "favorites"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Создать PDF", "create_pdf"),
		),
	)
}

func adminStartKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👑 Панель администратора", "admin_panel"),
		),
	}
	rows = append(rows, mainMenuKeyboard().InlineKeyboard...)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func adminMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏳ Заявки на регистрацию", "admin_pending_users"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Добавить пользователя", "admin_add_user"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚫 Заблокировать пользователя", "admin_ban_user"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📢 Рассылка", "admin_broadcast"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Синхронизация Google Таблиц", "admin_sync_google_sheets"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📤 Выгрузка продаж", "admin_export_sales"),
		),
	)
}

func regPromptKeyboard(withSkip bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	if withSkip {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⏭️ Пропустить", "reg_skip_phone"))
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "reg_cancel"))
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(row...))
}

func regConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", "reg_confirm"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Изменить", "reg_edit"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "reg_cancel"),
		),
	)
}

func pendingListKeyboard(users []entity.PendingUser, page, totalPages int) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(users)+2)
	for i := range users {
		u := &users[i]
		label := fmt.Sprintf("👤 %s (ID: %d)", u.FullName(), u.TelegramID)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("admin_pending_user|%d", u.TelegramID)),
		))
	}
	if nav := pageNavRow("admin_pending_page", page, totalPages); nav != nil {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Вернуться в меню", "admin_back_to_menu"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// pageNavRow builds the Prev/Next row, nil when there is nothing to
// flip through.
func pageNavRow(prefix string, page, totalPages int) []tgbotapi.InlineKeyboardButton {
	row := []tgbotapi.InlineKeyboardButton{}
	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Пред", fmt.Sprintf("%s|%d", prefix, page-1)))
	}
	if page < totalPages-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("След ➡️", fmt.Sprintf("%s|%d", prefix, page+1)))
	}
	if len(row) == 0 {
		return nil
	}
	return row
}

func pendingActionsKeyboard(telegramID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Одобрить", fmt.Sprintf("admin_approve|%d", telegramID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отклонить", fmt.Sprintf("admin_decline|%d", telegramID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад к списку", "admin_pending_users"),
		),
	)
}

func roleKeyboard(telegramID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👨‍💼 Коллега", fmt.Sprintf("admin_role|%d|colleague", telegramID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎨 Дизайнер", fmt.Sprintf("admin_role|%d|designer", telegramID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❓ Неопределенная", fmt.Sprintf("admin_role|%d|undefined", telegramID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", fmt.Sprintf("admin_pending_user|%d", telegramID)),
		),
	)
}

func declineReasonKeyboard(telegramID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭️ Пропустить", fmt.Sprintf("admin_decline_skip|%d", telegramID)),
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", fmt.Sprintf("admin_pending_user|%d", telegramID)),
		),
	)
}

func backToMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Вернуться в меню", "admin_back_to_menu"),
		),
	)
}

func addUserCancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "admin_cancel"),
		),
	)
}

func addUserSkipKeyboard(field string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭️ Пропустить", "admin_add_skip|"+field),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "admin_cancel"),
		),
	)
}

func addUserRoleKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👨‍💼 Коллега", "admin_add_role|colleague"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎨 Дизайнер", "admin_add_role|designer"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❓ Неопределенная", "admin_add_role|undefined"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "admin_cancel"),
		),
	)
}

func addUserConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", "admin_add_confirm"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "admin_cancel"),
		),
	)
}

func banEntryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👥 Показать всех пользователей", "admin_ban_all"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔍 Найти по имени/email", "admin_ban_search"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Вернуться в меню", "admin_back_to_menu"),
		),
	)
}

func banListKeyboard(users []entity.RegisteredUser, page, totalPages int) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(users)+2)
	for i := range users {
		u := &users[i]
		label := fmt.Sprintf("👤 %s (@%s)", u.FullName(), orPlaceholder(u.Username, "не указан"))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("admin_ban_pick|%d", u.TelegramID)),
		))
	}
	if nav := pageNavRow("admin_ban_page", page, totalPages); nav != nil {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад к поиску", "admin_ban_user"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func banQueryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "admin_ban_user"),
		),
	)
}

func banReasonKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭️ Пропустить", "admin_ban_skip_reason"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "admin_cancel"),
		),
	)
}

func banConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚫 Заблокировать", "admin_ban_confirm"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "admin_cancel"),
		),
	)
}

func broadcastConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", "admin_broadcast_confirm"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "admin_cancel"),
		),
	)
}

func syncTableKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧿 Ковры", "admin_sync_table|carpets"),
			tgbotapi.NewInlineKeyboardButtonData("💰 Продажи", "admin_sync_table|sales"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Вернуться в меню", "admin_back_to_menu"),
		),
	)
}

func syncCarpetsConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Синхронизировать", "admin_sync_run|carpets|keep"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Синхронизировать с удалением", "admin_sync_run|carpets|delete"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "admin_back_to_menu"),
		),
	)
}

func syncSalesConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Синхронизировать", "admin_sync_run|sales"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "admin_back_to_menu"),
		),
	)
}

func searchMenuKeyboard(filters *entity.CarpetFilters, hasResults bool) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(entity.AllFacets)+1)
	for _, facet := range entity.AllFacets {
		label := facetEmoji[facet] + " " + facet.Title()
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "search_facet|"+string(facet)),
		))
	}
	action := []tgbotapi.InlineKeyboardButton{}
	if hasResults {
		action = append(action, tgbotapi.NewInlineKeyboardButtonData("📋 Показать результаты", "search_results"))
	}
	if !filters.IsEmpty() {
		action = append(action, tgbotapi.NewInlineKeyboardButtonData("🗑 Очистить все фильтры", "search_clear_all"))
	}
	if len(action) > 0 {
		rows = append(rows, action)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func facetOptionsKeyboard(facet entity.Facet, options []entity.FacetOption) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options)/2+4)
	row := []tgbotapi.InlineKeyboardButton{}
	for i, opt := range options {
		prefix := "☐ "
		if opt.Selected {
			prefix = "✅️ "
		}
		label := fmt.Sprintf("%s%s (%d)", prefix, opt.Value, opt.Count)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("search_toggle|%s|%d", facet, i)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = []tgbotapi.InlineKeyboardButton{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Применить и вернуться", "search_apply"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Очистить этот фильтр", "search_clear|"+string(facet)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ К фильтрам", "search_menu"),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func searchResultsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ К фильтрам", "search_menu"),
		),
	)
}

// favoriteButtonsKeyboard lays out one star button per shown carpet so
// a result can be saved without typing its id.
func favoriteButtonsKeyboard(carpets []entity.Carpet) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(carpets)/3+1)
	row := []tgbotapi.InlineKeyboardButton{}
	for i := range carpets {
		id := carpets[i].CarpetID
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("⭐ %d", id), fmt.Sprintf("fav_add|%d", id)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = []tgbotapi.InlineKeyboardButton{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func favoritesRemoveKeyboard(carpets []entity.Carpet) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(carpets)/3+1)
	row := []tgbotapi.InlineKeyboardButton{}
	for i := range carpets {
		id := carpets[i].CarpetID
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("💔 %d", id), fmt.Sprintf("fav_del|%d", id)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = []tgbotapi.InlineKeyboardButton{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
