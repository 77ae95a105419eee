package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/carpet-retail-bot/internal/usecase"
)

func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		h.resetSessions(userID)
		h.handleStart(ctx, chatID, userID)
	case "admin":
		if !h.isAdmin(userID) {
			return
		}
		h.resetSessions(userID)
		if _, err := h.sendHTML(chatID, msgAdminWelcome, adminMenuKeyboard()); err != nil {
			h.log.Error().Err(err).Int64("chat_id", chatID).Msg("admin menu send failed")
		}
	case "find":
		if !h.allowUser(ctx, chatID, userID) {
			return
		}
		h.openSearchMenu(ctx, chatID, userID)
	case "favorites":
		if !h.allowUser(ctx, chatID, userID) {
			return
		}
		h.showFavorites(ctx, chatID, userID)
	case "pdf":
		if !h.allowUser(ctx, chatID, userID) {
			return
		}
		h.sendMessage(chatID, msgPDFPlaceholder)
	case "sync":
		if !h.isAdmin(userID) {
			return
		}
		if _, err := h.sendHTML(chatID, msgSyncChooseTable, syncTableKeyboard()); err != nil {
			h.log.Error().Err(err).Int64("chat_id", chatID).Msg("sync menu send failed")
		}
	case "export":
		if !h.isAdmin(userID) {
			return
		}
		h.runSalesExport(ctx, chatID)
	}
}

// handleStart greets the user according to who they are: admin panel,
// main menu, registration offer, or a pending/banned notice.
func (h *BotHandler) handleStart(ctx context.Context, chatID, userID int64) {
	action, me, err := h.users.Classify(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Int64("telegram_id", userID).Msg("start classification failed")
		h.sendMessage(chatID, msgProcessingError)
		return
	}

	switch action {
	case usecase.ActionShowAdminPanel:
		_, err = h.sendText(chatID, msgWelcomeAdmin, "", adminStartKeyboard())
	case usecase.ActionShowMainMenu:
		greeting := msgWelcomeRegistered + "!"
		if me != nil && me.FirstName != "" {
			greeting = msgWelcomeRegistered + ", " + me.FirstName + "!"
		}
		_, err = h.sendText(chatID, greeting, "", mainMenuKeyboard())
	case usecase.ActionShowPendingNotice:
		_, err = h.sendText(chatID, msgPendingStatus, "", nil)
	case usecase.ActionShowBannedNotice:
		_, err = h.sendText(chatID, msgBannedNotice, "", nil)
	case usecase.ActionOfferRegistration:
		_, err = h.sendText(chatID, msgWelcomeNewUser, "", registrationStartKeyboard())
	}
	if err != nil {
		h.log.Error().Err(err).Int64("chat_id", chatID).Msg("start reply failed")
	}
}

// allowUser admits admins and registered users. Everyone else gets the
// same notice /start would give them.
func (h *BotHandler) allowUser(ctx context.Context, chatID, userID int64) bool {
	action, _, err := h.users.Classify(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Int64("telegram_id", userID).Msg("access classification failed")
		h.sendMessage(chatID, msgProcessingError)
		return false
	}

	switch action {
	case usecase.ActionShowAdminPanel, usecase.ActionShowMainMenu:
		return true
	case usecase.ActionShowPendingNotice:
		h.sendMessage(chatID, msgPendingStatus)
	case usecase.ActionShowBannedNotice:
		h.sendMessage(chatID, msgBannedNotice)
	default:
		if _, err := h.sendText(chatID, msgWelcomeNewUser, "", registrationStartKeyboard()); err != nil {
			h.log.Error().Err(err).Int64("chat_id", chatID).Msg("registration offer failed")
		}
	}
	return false
}

// resetSessions drops every in-flight dialog of the user, the /start
// equivalent of resetting the conversation.
func (h *BotHandler) resetSessions(userID int64) {
	h.regMu.Lock()
	delete(h.regSessions, userID)
	h.regMu.Unlock()

	h.searchMu.Lock()
	delete(h.searchSessions, userID)
	h.searchMu.Unlock()

	h.addMu.Lock()
	delete(h.addSessions, userID)
	h.addMu.Unlock()

	h.banMu.Lock()
	delete(h.banSessions, userID)
	h.banMu.Unlock()

	h.declineMu.Lock()
	delete(h.declineTargets, userID)
	h.declineMu.Unlock()

	h.broadcastMu.Lock()
	delete(h.broadcastSessions, userID)
	h.broadcastMu.Unlock()
}
