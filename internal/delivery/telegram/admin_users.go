package telegram

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
)

func roleFromKey(key string) (entity.UserRole, bool) {
	switch key {
	case "colleague":
		return entity.RoleColleague, true
	case "designer":
		return entity.RoleDesigner, true
	case "undefined":
		return entity.RoleUndefined, true
	}
	return "", false
}

// Pending applications.

func (h *BotHandler) showPendingList(ctx context.Context, chatID int64, messageID, page int) {
	users, total, totalPages, err := h.admin.PendingPage(ctx, page)
	if err != nil {
		h.log.Error().Err(err).Msg("pending page failed")
		h.sendMessage(chatID, msgOperationError)
		return
	}

	if total == 0 {
		h.renderScreen(chatID, messageID, msgNoPendingUsers, backToMenuKeyboard())
		return
	}
	h.renderScreen(chatID, messageID, pendingListText(total), pendingListKeyboard(users, page, totalPages))
}

// renderScreen edits the given message in place, or sends a new one
// when there is nothing to edit.
func (h *BotHandler) renderScreen(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) {
	if messageID != 0 {
		if err := h.editHTML(chatID, messageID, text, markup); err == nil {
			return
		}
	}
	h.promptHTML(chatID, text, markup)
}

func (h *BotHandler) showPendingDetails(ctx context.Context, cq *tgbotapi.CallbackQuery, telegramID int64) {
	chatID := cq.Message.Chat.ID

	app, err := h.admin.Pending(ctx, telegramID)
	if err != nil {
		h.log.Error().Err(err).Int64("telegram_id", telegramID).Msg("pending lookup failed")
		h.answerCallback(cq.ID, msgOperationError)
		return
	}
	if app == nil {
		h.answerCallback(cq.ID, msgUserNotFound)
		h.showPendingList(ctx, chatID, cq.Message.MessageID, 0)
		return
	}

	h.answerCallback(cq.ID, "")
	h.renderScreen(chatID, cq.Message.MessageID, pendingDetailsText(app), pendingActionsKeyboard(telegramID))
}

func (h *BotHandler) startApprove(cq *tgbotapi.CallbackQuery, telegramID int64) {
	h.answerCallback(cq.ID, "")
	h.renderScreen(cq.Message.Chat.ID, cq.Message.MessageID, msgRolePrompt, roleKeyboard(telegramID))
}

func (h *BotHandler) finishApprove(ctx context.Context, cq *tgbotapi.CallbackQuery, telegramID int64, roleKey string) {
	chatID := cq.Message.Chat.ID

	role, ok := roleFromKey(roleKey)
	if !ok {
		role = entity.RoleUndefined
	}

	_, refusal, err := h.admin.Approve(ctx, telegramID, role)
	h.answerCallback(cq.ID, "")
	if err != nil {
		h.log.Error().Err(err).Int64("telegram_id", telegramID).Msg("approve failed")
		h.sendMessage(chatID, msgOperationError)
		return
	}
	if refusal != "" {
		h.sendMessage(chatID, "❌ "+refusal)
		return
	}

	h.sendMessage(chatID, "✅ "+adminApprovedText(role))
	if _, err := h.sendHTML(telegramID, msgUserApproved, nil); err != nil {
		h.log.Warn().Err(err).Int64("telegram_id", telegramID).Msg("approval notice failed")
	}
}

func (h *BotHandler) startDecline(cq *tgbotapi.CallbackQuery, telegramID int64) {
	h.declineMu.Lock()
	h.declineTargets[cq.From.ID] = telegramID
	h.declineMu.Unlock()

	h.answerCallback(cq.ID, "")
	h.renderScreen(cq.Message.Chat.ID, cq.Message.MessageID, msgDeclineReasonPrompt, declineReasonKeyboard(telegramID))
}

func (h *BotHandler) handleDeclineReasonText(ctx context.Context, message *tgbotapi.Message, target int64) {
	reason := strings.TrimSpace(message.Text)
	if reason == "" {
		h.sendMessage(message.Chat.ID, msgNonTextError)
		return
	}
	h.finishDecline(ctx, message.Chat.ID, message.From.ID, target, reason)
}

func (h *BotHandler) finishDecline(ctx context.Context, chatID, adminID, target int64, reason string) {
	h.declineMu.Lock()
	delete(h.declineTargets, adminID)
	h.declineMu.Unlock()

	_, refusal, err := h.admin.Reject(ctx, target)
	if err != nil {
		h.log.Error().Err(err).Int64("telegram_id", target).Msg("reject failed")
		h.sendMessage(chatID, msgOperationError)
		return
	}
	if refusal != "" {
		h.sendMessage(chatID, "❌ "+refusal)
		return
	}

	h.sendMessage(chatID, "❌ "+adminRejectedText(reason))
	if _, err := h.sendHTML(target, userRejectedText(reason), nil); err != nil {
		h.log.Warn().Err(err).Int64("telegram_id", target).Msg("rejection notice failed")
	}
}

// Ban flow.

func (h *BotHandler) startBanFlow(cq *tgbotapi.CallbackQuery) {
	h.banMu.Lock()
	h.banSessions[cq.From.ID] = &banSession{Stage: banStageNeedTarget}
	h.banMu.Unlock()

	h.answerCallback(cq.ID, "")
	h.renderScreen(cq.Message.Chat.ID, cq.Message.MessageID, msgBanEntry, banEntryKeyboard())
}

func (h *BotHandler) showBanList(ctx context.Context, chatID int64, messageID int, session *banSession) {
	var (
		users      []entity.RegisteredUser
		total      int64
		totalPages int
		err        error
	)
	if session.Query == "" {
		users, total, totalPages, err = h.admin.RegisteredPage(ctx, session.Page)
	} else {
		users, total, totalPages, err = h.admin.SearchPage(ctx, session.Query, session.Page)
	}
	if err != nil {
		h.log.Error().Err(err).Msg("registered page failed")
		h.sendMessage(chatID, msgOperationError)
		return
	}

	if total == 0 {
		h.sendMessage(chatID, msgBanEmpty)
		h.renderScreen(chatID, 0, msgBanEntry, banEntryKeyboard())
		return
	}
	h.renderScreen(chatID, messageID, banUserListText(total), banListKeyboard(users, session.Page, totalPages))
}

func (h *BotHandler) showAllBanCandidates(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	session, ok := h.banSession(cq.From.ID)
	if !ok {
		session = &banSession{}
	}
	session.Stage = banStageNeedTarget
	session.Query = ""
	session.Page = 0
	h.storeBanSession(cq.From.ID, session)

	h.answerCallback(cq.ID, "")
	h.showBanList(ctx, cq.Message.Chat.ID, cq.Message.MessageID, session)
}

func (h *BotHandler) startBanSearch(cq *tgbotapi.CallbackQuery) {
	session, ok := h.banSession(cq.From.ID)
	if !ok {
		session = &banSession{}
	}
	session.Stage = banStageNeedQuery
	h.storeBanSession(cq.From.ID, session)

	h.answerCallback(cq.ID, "")
	h.renderScreen(cq.Message.Chat.ID, cq.Message.MessageID, msgBanQuery, banQueryKeyboard())
}

func (h *BotHandler) flipBanPage(ctx context.Context, cq *tgbotapi.CallbackQuery, pageArg string) {
	session, ok := h.banSession(cq.From.ID)
	if !ok {
		h.answerCallback(cq.ID, "")
		return
	}

	page, err := strconv.Atoi(pageArg)
	if err != nil || page < 0 {
		h.answerCallback(cq.ID, "")
		return
	}
	session.Page = page
	h.storeBanSession(cq.From.ID, session)

	h.answerCallback(cq.ID, "")
	h.showBanList(ctx, cq.Message.Chat.ID, cq.Message.MessageID, session)
}

func (h *BotHandler) handleBanText(ctx context.Context, message *tgbotapi.Message, session *banSession) {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	switch session.Stage {
	case banStageNeedQuery:
		if text == "" {
			h.sendMessage(chatID, msgNonTextError)
			return
		}
		session.Query = text
		session.Page = 0
		session.Stage = banStageNeedTarget
		h.storeBanSession(message.From.ID, session)
		h.showBanList(ctx, chatID, 0, session)

	case banStageNeedReason:
		if text == "" {
			h.sendMessage(chatID, msgNonTextError)
			return
		}
		session.Reason = &text
		session.Stage = banStageNeedConfirm
		h.storeBanSession(message.From.ID, session)
		h.promptHTML(chatID, banConfirmationText(session), banConfirmKeyboard())
	}
}

func (h *BotHandler) storeBanSession(userID int64, session *banSession) {
	h.banMu.Lock()
	h.banSessions[userID] = session
	h.banMu.Unlock()
}

func (h *BotHandler) pickBanTarget(ctx context.Context, cq *tgbotapi.CallbackQuery, telegramID int64) {
	session, ok := h.banSession(cq.From.ID)
	if !ok {
		h.answerCallback(cq.ID, "")
		return
	}

	target, err := h.admin.Registered(ctx, telegramID)
	if err != nil {
		h.log.Error().Err(err).Int64("telegram_id", telegramID).Msg("target lookup failed")
		h.answerCallback(cq.ID, msgOperationError)
		return
	}
	if target == nil {
		h.answerCallback(cq.ID, msgUserNotFound)
		return
	}

	label := target.FullName()
	if target.Username != nil && *target.Username != "" {
		label += " " + *target.Username
	}
	session.TargetID = telegramID
	session.TargetLabel = label
	session.Stage = banStageNeedReason
	h.storeBanSession(cq.From.ID, session)

	h.answerCallback(cq.ID, "")
	h.renderScreen(cq.Message.Chat.ID, cq.Message.MessageID, msgBanReasonPrompt, banReasonKeyboard())
}

func (h *BotHandler) skipBanReason(cq *tgbotapi.CallbackQuery) {
	session, ok := h.banSession(cq.From.ID)
	if !ok || session.Stage != banStageNeedReason {
		h.answerCallback(cq.ID, "")
		return
	}
	session.Reason = nil
	session.Stage = banStageNeedConfirm
	h.storeBanSession(cq.From.ID, session)

	h.answerCallback(cq.ID, "")
	h.renderScreen(cq.Message.Chat.ID, cq.Message.MessageID, banConfirmationText(session), banConfirmKeyboard())
}

func (h *BotHandler) confirmBan(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	chatID := cq.Message.Chat.ID
	adminID := cq.From.ID

	session, ok := h.banSession(adminID)
	if !ok || session.Stage != banStageNeedConfirm {
		h.answerCallback(cq.ID, "")
		return
	}

	h.banMu.Lock()
	delete(h.banSessions, adminID)
	h.banMu.Unlock()

	reason := ""
	if session.Reason != nil {
		reason = *session.Reason
	}

	_, refusal, err := h.admin.Ban(ctx, session.TargetID)
	h.answerCallback(cq.ID, "")
	if err != nil {
		h.log.Error().Err(err).Int64("telegram_id", session.TargetID).Msg("ban failed")
		h.sendMessage(chatID, msgOperationError)
		return
	}
	if refusal != "" {
		h.sendMessage(chatID, "❌ "+refusal)
		return
	}

	h.sendMessage(chatID, "🚫 "+adminBannedText(reason))
	if _, err := h.sendHTML(session.TargetID, userBannedText(reason), nil); err != nil {
		h.log.Warn().Err(err).Int64("telegram_id", session.TargetID).Msg("ban notice failed")
	}
	h.promptHTML(chatID, msgAdminWelcome, adminMenuKeyboard())
}

// Manual add flow.

func (h *BotHandler) startAddUserFlow(cq *tgbotapi.CallbackQuery) {
	h.addMu.Lock()
	h.addSessions[cq.From.ID] = &addUserSession{Stage: addStageNeedTelegramID}
	h.addMu.Unlock()

	h.answerCallback(cq.ID, "")
	h.renderScreen(cq.Message.Chat.ID, cq.Message.MessageID, msgAddUserTelegramID, backToMenuKeyboard())
}

func (h *BotHandler) handleAddUserText(ctx context.Context, message *tgbotapi.Message, session *addUserSession) {
	chatID := message.Chat.ID
	userID := message.From.ID
	text := message.Text

	if strings.TrimSpace(text) == "" {
		h.sendMessage(chatID, msgNonTextError)
		return
	}

	switch session.Stage {
	case addStageNeedTelegramID:
		id, complaint := parseTelegramID(text)
		if complaint != "" {
			h.sendMessage(chatID, "❌ "+complaint)
			return
		}
		session.TelegramID = id
		session.Stage = addStageNeedUsername
		h.storeAddSession(userID, session)
		h.promptHTML(chatID, msgAddUserUsername, addUserSkipKeyboard("username"))

	case addStageNeedUsername:
		value, complaint := validateUsername(text)
		if complaint != "" {
			h.sendMessage(chatID, "❌ "+complaint)
			return
		}
		session.Username = &value
		session.Stage = addStageNeedFirstName
		h.storeAddSession(userID, session)
		h.promptHTML(chatID, msgAddUserFirstName, addUserCancelKeyboard())

	case addStageNeedFirstName:
		value, complaint := validateFirstName(text)
		if complaint != "" {
			h.sendMessage(chatID, "❌ "+complaint)
			return
		}
		session.FirstName = value
		session.Stage = addStageNeedLastName
		h.storeAddSession(userID, session)
		h.promptHTML(chatID, msgAddUserLastName, addUserSkipKeyboard("last_name"))

	case addStageNeedLastName:
		value, complaint := validateLastName(text)
		if complaint != "" {
			h.sendMessage(chatID, "❌ "+complaint)
			return
		}
		session.LastName = &value
		session.Stage = addStageNeedEmail
		h.storeAddSession(userID, session)
		h.promptHTML(chatID, msgAddUserEmail, addUserSkipKeyboard("email"))

	case addStageNeedEmail:
		value, complaint := validateEmail(text)
		if complaint != "" {
			h.sendMessage(chatID, "❌ "+complaint)
			return
		}
		session.Email = &value
		session.Stage = addStageNeedRole
		h.storeAddSession(userID, session)
		h.promptHTML(chatID, msgAddUserRole, addUserRoleKeyboard())
	}
}

func (h *BotHandler) storeAddSession(userID int64, session *addUserSession) {
	h.addMu.Lock()
	h.addSessions[userID] = session
	h.addMu.Unlock()
}

func (h *BotHandler) skipAddUserField(cq *tgbotapi.CallbackQuery, field string) {
	session, ok := h.addSession(cq.From.ID)
	if !ok {
		h.answerCallback(cq.ID, "")
		return
	}

	chatID := cq.Message.Chat.ID
	switch {
	case field == "username" && session.Stage == addStageNeedUsername:
		session.Username = nil
		session.Stage = addStageNeedFirstName
		h.storeAddSession(cq.From.ID, session)
		h.answerCallback(cq.ID, "")
		h.promptHTML(chatID, msgAddUserFirstName, addUserCancelKeyboard())
	case field == "last_name" && session.Stage == addStageNeedLastName:
		session.LastName = nil
		session.Stage = addStageNeedEmail
		h.storeAddSession(cq.From.ID, session)
		h.answerCallback(cq.ID, "")
		h.promptHTML(chatID, msgAddUserEmail, addUserSkipKeyboard("email"))
	case field == "email" && session.Stage == addStageNeedEmail:
		session.Email = nil
		session.Stage = addStageNeedRole
		h.storeAddSession(cq.From.ID, session)
		h.answerCallback(cq.ID, "")
		h.promptHTML(chatID, msgAddUserRole, addUserRoleKeyboard())
	default:
		h.answerCallback(cq.ID, "")
	}
}

func (h *BotHandler) setAddUserRole(cq *tgbotapi.CallbackQuery, roleKey string) {
	session, ok := h.addSession(cq.From.ID)
	if !ok || session.Stage != addStageNeedRole {
		h.answerCallback(cq.ID, "")
		return
	}

	role, valid := roleFromKey(roleKey)
	if !valid {
		role = entity.RoleUndefined
	}
	session.Role = role
	session.Stage = addStageNeedConfirm
	h.storeAddSession(cq.From.ID, session)

	h.answerCallback(cq.ID, "")
	h.renderScreen(cq.Message.Chat.ID, cq.Message.MessageID, addUserConfirmationText(session), addUserConfirmKeyboard())
}

func (h *BotHandler) confirmAddUser(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	chatID := cq.Message.Chat.ID
	adminID := cq.From.ID

	session, ok := h.addSession(adminID)
	if !ok || session.Stage != addStageNeedConfirm {
		h.answerCallback(cq.ID, "")
		return
	}

	h.addMu.Lock()
	delete(h.addSessions, adminID)
	h.addMu.Unlock()

	// Skipped fields get the same fillers the registration form would
	// never produce, so manually added rows are recognizable.
	lastName := "Не заполнено"
	if session.LastName != nil {
		lastName = *session.LastName
	}
	email := "example@example.net"
	if session.Email != nil {
		email = *session.Email
	}

	user := &entity.RegisteredUser{
		TelegramID: session.TelegramID,
		Username:   session.Username,
		FirstName:  session.FirstName,
		LastName:   &lastName,
		Email:      email,
		Role:       session.Role,
	}

	refusal, err := h.admin.AddManually(ctx, user)
	h.answerCallback(cq.ID, "")
	if err != nil {
		h.log.Error().Err(err).Int64("telegram_id", session.TelegramID).Msg("manual add failed")
		h.sendMessage(chatID, msgOperationError)
		return
	}
	if refusal != "" {
		h.sendMessage(chatID, "❌ "+refusal)
		return
	}

	h.sendMessage(chatID, "✅ "+adminAddedText(session.Role))
	if _, err := h.sendHTML(session.TelegramID, msgUserAddedManually, nil); err != nil {
		h.log.Warn().Err(err).Int64("telegram_id", session.TelegramID).Msg("added notice failed")
	}
}

// Broadcast flow.

func (h *BotHandler) startBroadcastFlow(cq *tgbotapi.CallbackQuery) {
	h.broadcastMu.Lock()
	h.broadcastSessions[cq.From.ID] = &broadcastSession{Stage: broadcastStageNeedText}
	h.broadcastMu.Unlock()

	h.answerCallback(cq.ID, "")
	h.renderScreen(cq.Message.Chat.ID, cq.Message.MessageID, msgBroadcastPrompt, addUserCancelKeyboard())
}

func (h *BotHandler) handleBroadcastText(ctx context.Context, message *tgbotapi.Message, session *broadcastSession) {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	if session.Stage != broadcastStageNeedText {
		return
	}
	if text == "" {
		h.sendMessage(chatID, msgNonTextError)
		return
	}

	session.Draft = text
	session.Stage = broadcastStageNeedConfirm
	h.broadcastMu.Lock()
	h.broadcastSessions[message.From.ID] = session
	h.broadcastMu.Unlock()

	h.promptHTML(chatID, broadcastConfirmationText(text), broadcastConfirmKeyboard())
}

func (h *BotHandler) confirmBroadcast(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	chatID := cq.Message.Chat.ID
	adminID := cq.From.ID

	session, ok := h.broadcastSession(adminID)
	if !ok || session.Stage != broadcastStageNeedConfirm {
		h.answerCallback(cq.ID, "")
		return
	}

	h.broadcastMu.Lock()
	delete(h.broadcastSessions, adminID)
	h.broadcastMu.Unlock()

	h.answerCallback(cq.ID, "")
	draft := session.Draft
	sent, failed, err := h.admin.Broadcast(ctx, func(telegramID int64) error {
		_, sendErr := h.sendText(telegramID, draft, "", nil)
		return sendErr
	})
	if err != nil {
		h.log.Error().Err(err).Msg("broadcast failed")
		h.sendMessage(chatID, msgOperationError)
		return
	}

	h.sendMessage(chatID, broadcastResultText(sent, failed))
}

// Shared admin navigation.

func (h *BotHandler) backToAdminMenu(cq *tgbotapi.CallbackQuery) {
	h.resetSessions(cq.From.ID)
	h.answerCallback(cq.ID, "")
	h.renderScreen(cq.Message.Chat.ID, cq.Message.MessageID, msgAdminWelcome, adminMenuKeyboard())
}

func (h *BotHandler) cancelAdminFlow(cq *tgbotapi.CallbackQuery) {
	h.resetSessions(cq.From.ID)
	h.answerCallback(cq.ID, "")
	h.sendMessage(cq.Message.Chat.ID, msgOperationCancelled)
	h.promptHTML(cq.Message.Chat.ID, msgAdminWelcome, adminMenuKeyboard())
}
