package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleText dispatches a plain message to whichever dialog the user
// has open. Checked in the order a user can realistically be in them;
// text outside any dialog is ignored.
func (h *BotHandler) handleText(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	if session, ok := h.regSession(userID); ok {
		h.handleRegistrationText(ctx, message, session)
		return
	}

	if !h.isAdmin(userID) {
		return
	}

	if target, ok := h.declineTarget(userID); ok {
		h.handleDeclineReasonText(ctx, message, target)
		return
	}
	if session, ok := h.banSession(userID); ok {
		h.handleBanText(ctx, message, session)
		return
	}
	if session, ok := h.addSession(userID); ok {
		h.handleAddUserText(ctx, message, session)
		return
	}
	if session, ok := h.broadcastSession(userID); ok {
		h.handleBroadcastText(ctx, message, session)
		return
	}
}

func (h *BotHandler) declineTarget(userID int64) (int64, bool) {
	h.declineMu.RLock()
	defer h.declineMu.RUnlock()
	target, ok := h.declineTargets[userID]
	return target, ok
}

func (h *BotHandler) banSession(userID int64) (*banSession, bool) {
	h.banMu.RLock()
	defer h.banMu.RUnlock()
	s, ok := h.banSessions[userID]
	return s, ok
}

func (h *BotHandler) addSession(userID int64) (*addUserSession, bool) {
	h.addMu.RLock()
	defer h.addMu.RUnlock()
	s, ok := h.addSessions[userID]
	return s, ok
}

func (h *BotHandler) broadcastSession(userID int64) (*broadcastSession, bool) {
	h.broadcastMu.RLock()
	defer h.broadcastMu.RUnlock()
	s, ok := h.broadcastSessions[userID]
	return s, ok
}
