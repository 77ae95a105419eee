package telegram

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleCallback routes every pressed inline button. Callback data is
// "<cmd>" or "<cmd>|<arg>" or "<cmd>|<arg>|<arg2>".
func (h *BotHandler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.From == nil || cq.Message == nil {
		return
	}
	userID := cq.From.ID
	chatID := cq.Message.Chat.ID

	parts := strings.SplitN(cq.Data, "|", 3)
	cmd := parts[0]
	arg, arg2 := "", ""
	if len(parts) > 1 {
		arg = parts[1]
	}
	if len(parts) > 2 {
		arg2 = parts[2]
	}

	// Admin buttons survive in old chats, the gate has to live here
	// rather than on the keyboards.
	if strings.HasPrefix(cmd, "admin_") && !h.isAdmin(userID) {
		h.answerCallback(cq.ID, "")
		return
	}

	switch cmd {
	case "start_registration":
		h.startRegistrationFlow(ctx, cq)
	case "reg_skip_phone", "reg_cancel", "reg_edit", "reg_confirm":
		h.handleRegistrationCallback(ctx, cq)

	case "find_carpets":
		h.answerCallback(cq.ID, "")
		if h.allowUser(ctx, chatID, userID) {
			h.openSearchMenu(ctx, chatID, userID)
		}
	case "favorites":
		h.answerCallback(cq.ID, "")
		if h.allowUser(ctx, chatID, userID) {
			h.showFavorites(ctx, chatID, userID)
		}
	case "create_pdf":
		h.answerCallback(cq.ID, msgPDFPlaceholder)

	case "admin_panel":
		h.answerCallback(cq.ID, "")
		h.renderScreen(chatID, cq.Message.MessageID, msgAdminWelcome, adminMenuKeyboard())
	case "admin_back_to_menu":
		h.backToAdminMenu(cq)
	case "admin_cancel":
		h.cancelAdminFlow(cq)

	case "admin_pending_users":
		h.answerCallback(cq.ID, "")
		h.showPendingList(ctx, chatID, cq.Message.MessageID, 0)
	case "admin_pending_page":
		if page, err := strconv.Atoi(arg); err == nil && page >= 0 {
			h.answerCallback(cq.ID, "")
			h.showPendingList(ctx, chatID, cq.Message.MessageID, page)
		}
	case "admin_pending_user":
		if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
			h.showPendingDetails(ctx, cq, id)
		}
	case "admin_approve":
		if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
			h.startApprove(cq, id)
		}
	case "admin_role":
		if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
			h.finishApprove(ctx, cq, id, arg2)
		}
	case "admin_decline":
		if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
			h.startDecline(cq, id)
		}
	case "admin_decline_skip":
		if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
			h.answerCallback(cq.ID, "")
			h.finishDecline(ctx, chatID, userID, id, "")
		}

	case "admin_add_user":
		h.startAddUserFlow(cq)
	case "admin_add_skip":
		h.skipAddUserField(cq, arg)
	case "admin_add_role":
		h.setAddUserRole(cq, arg)
	case "admin_add_confirm":
		h.confirmAddUser(ctx, cq)

	case "admin_ban_user":
		h.startBanFlow(cq)
	case "admin_ban_all":
		h.showAllBanCandidates(ctx, cq)
	case "admin_ban_search":
		h.startBanSearch(cq)
	case "admin_ban_page":
		h.flipBanPage(ctx, cq, arg)
	case "admin_ban_pick":
		if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
			h.pickBanTarget(ctx, cq, id)
		}
	case "admin_ban_skip_reason":
		h.skipBanReason(cq)
	case "admin_ban_confirm":
		h.confirmBan(ctx, cq)

	case "admin_broadcast":
		h.startBroadcastFlow(cq)
	case "admin_broadcast_confirm":
		h.confirmBroadcast(ctx, cq)

	case "admin_sync_google_sheets":
		h.showSyncMenu(cq)
	case "admin_sync_table":
		h.showSyncConfirm(cq, arg)
	case "admin_sync_run":
		args := arg
		if arg2 != "" {
			args += "|" + arg2
		}
		h.runSync(ctx, cq, args)
	case "admin_export_sales":
		h.answerCallback(cq.ID, "")
		h.runSalesExport(ctx, chatID)

	case "search_menu":
		h.backToSearchMenu(ctx, cq)
	case "search_facet":
		h.openFacetView(ctx, cq, arg)
	case "search_toggle":
		h.toggleFacetOption(ctx, cq, arg, arg2)
	case "search_clear":
		h.clearFacetSelection(ctx, cq, arg)
	case "search_clear_all":
		h.clearAllFilters(ctx, cq)
	case "search_apply":
		h.applyFacetSelection(ctx, cq)
	case "search_results":
		h.showSearchResults(ctx, cq)

	case "fav_add":
		h.addFavorite(ctx, cq, arg)
	case "fav_del":
		h.removeFavorite(ctx, cq, arg)

	default:
		h.answerCallback(cq.ID, "")
	}
}
