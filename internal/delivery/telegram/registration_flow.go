package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
	"github.com/yourusername/carpet-retail-bot/internal/usecase"
)

// Shown when someone who cannot register presses the start button.
const (
	guardAlreadyRegistered = "Пользователь уже зарегистрирован"
	guardAlreadyPending    = "Заявка на регистрацию уже отправлена"
	guardBanned            = "Пользователь заблокирован"
)

// startRegistrationFlow opens the registration dialog unless the user
// is already known. Admins may walk the form; the duplicate check at
// save time still applies to them.
func (h *BotHandler) startRegistrationFlow(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	userID := cq.From.ID
	chatID := cq.Message.Chat.ID

	action, _, err := h.users.Classify(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Int64("telegram_id", userID).Msg("registration guard failed")
		h.answerCallback(cq.ID, "")
		h.sendMessage(chatID, msgProcessingError)
		return
	}

	var guard string
	switch action {
	case usecase.ActionShowMainMenu:
		guard = guardAlreadyRegistered
	case usecase.ActionShowPendingNotice:
		guard = guardAlreadyPending
	case usecase.ActionShowBannedNotice:
		guard = guardBanned
	}
	if guard != "" {
		h.answerCallback(cq.ID, "")
		h.sendMessage(chatID, "⚠️ "+guard)
		return
	}

	session := &regSession{Stage: regStageNeedFirstName}
	if cq.From.UserName != "" {
		username := cq.From.UserName
		session.Username = &username
	}
	h.regMu.Lock()
	h.regSessions[userID] = session
	h.regMu.Unlock()

	h.answerCallback(cq.ID, "")
	if _, err := h.sendHTML(chatID, msgRegWelcome, regPromptKeyboard(false)); err != nil {
		h.log.Error().Err(err).Int64("chat_id", chatID).Msg("registration prompt failed")
	}
}

func (h *BotHandler) regSession(userID int64) (*regSession, bool) {
	h.regMu.RLock()
	defer h.regMu.RUnlock()
	s, ok := h.regSessions[userID]
	return s, ok
}

// handleRegistrationText advances the form one field per message.
func (h *BotHandler) handleRegistrationText(ctx context.Context, message *tgbotapi.Message, session *regSession) {
	chatID := message.Chat.ID
	userID := message.From.ID
	text := message.Text

	if text == "" {
		h.sendMessage(chatID, msgNonTextError)
		return
	}

	switch session.Stage {
	case regStageNeedFirstName:
		value, complaint := validateFirstName(text)
		if complaint != "" {
			h.sendMessage(chatID, "❌ "+complaint)
			return
		}
		session.FirstName = value
		session.Stage = regStageNeedLastName
		h.storeRegSession(userID, session)
		h.promptHTML(chatID, msgRegLastNamePrompt, regPromptKeyboard(false))

	case regStageNeedLastName:
		value, complaint := validateLastName(text)
		if complaint != "" {
			h.sendMessage(chatID, "❌ "+complaint)
			return
		}
		session.LastName = value
		session.Stage = regStageNeedEmail
		h.storeRegSession(userID, session)
		h.promptHTML(chatID, msgRegEmailPrompt, regPromptKeyboard(false))

	case regStageNeedEmail:
		value, complaint := validateEmail(text)
		if complaint != "" {
			h.sendMessage(chatID, "❌ "+complaint)
			return
		}
		session.Email = value
		session.Stage = regStageNeedPhone
		h.storeRegSession(userID, session)
		h.promptHTML(chatID, msgRegPhonePrompt, regPromptKeyboard(true))

	case regStageNeedPhone:
		if strings.EqualFold(strings.TrimSpace(text), "пропустить") {
			session.Phone = nil
		} else {
			value, complaint := validatePhone(text)
			if complaint != "" {
				h.sendMessage(chatID, "❌ "+complaint)
				return
			}
			session.Phone = &value
		}
		session.Stage = regStageNeedFromWhom
		h.storeRegSession(userID, session)
		h.promptHTML(chatID, msgRegFromWhomPrompt, regPromptKeyboard(false))

	case regStageNeedFromWhom:
		value, complaint := validateFromWhom(text)
		if complaint != "" {
			h.sendMessage(chatID, "❌ "+complaint)
			return
		}
		session.FromWhom = value
		session.Stage = regStageNeedConfirm
		h.storeRegSession(userID, session)
		h.promptHTML(chatID, regConfirmationText(session), regConfirmKeyboard())

	case regStageNeedConfirm:
		h.promptHTML(chatID, regConfirmationText(session), regConfirmKeyboard())
	}
}

func (h *BotHandler) storeRegSession(userID int64, session *regSession) {
	h.regMu.Lock()
	h.regSessions[userID] = session
	h.regMu.Unlock()
}

func (h *BotHandler) promptHTML(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) {
	if _, err := h.sendHTML(chatID, text, markup); err != nil {
		h.log.Error().Err(err).Int64("chat_id", chatID).Msg("prompt failed")
	}
}

// handleRegistrationCallback covers the registration dialog buttons.
func (h *BotHandler) handleRegistrationCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	userID := cq.From.ID
	chatID := cq.Message.Chat.ID

	session, ok := h.regSession(userID)
	if !ok {
		h.answerCallback(cq.ID, "")
		return
	}

	switch cq.Data {
	case "reg_skip_phone":
		if session.Stage != regStageNeedPhone {
			h.answerCallback(cq.ID, "")
			return
		}
		session.Phone = nil
		session.Stage = regStageNeedFromWhom
		h.storeRegSession(userID, session)
		h.answerCallback(cq.ID, "")
		h.promptHTML(chatID, msgRegFromWhomPrompt, regPromptKeyboard(false))

	case "reg_edit":
		if session.Stage != regStageNeedConfirm {
			h.answerCallback(cq.ID, "")
			return
		}
		session.Stage = regStageNeedFromWhom
		h.storeRegSession(userID, session)
		h.answerCallback(cq.ID, "")
		h.promptHTML(chatID, msgRegFromWhomPrompt, regPromptKeyboard(false))

	case "reg_cancel":
		h.regMu.Lock()
		delete(h.regSessions, userID)
		h.regMu.Unlock()
		h.answerCallback(cq.ID, "")
		h.sendMessage(chatID, msgOperationCancelled)

	case "reg_confirm":
		if session.Stage != regStageNeedConfirm {
			h.answerCallback(cq.ID, "")
			return
		}
		h.answerCallback(cq.ID, "")
		h.submitRegistration(ctx, chatID, userID, session)
	}
}

func (h *BotHandler) submitRegistration(ctx context.Context, chatID, userID int64, session *regSession) {
	lastName := session.LastName
	app := &entity.PendingUser{
		TelegramID: userID,
		Username:   session.Username,
		FirstName:  session.FirstName,
		LastName:   &lastName,
		Email:      session.Email,
		Phone:      session.Phone,
		FromWhom:   session.FromWhom,
	}

	guard, err := h.users.SubmitRegistration(ctx, app)
	if err != nil {
		h.log.Error().Err(err).Int64("telegram_id", userID).Msg("registration save failed")
		h.sendMessage(chatID, msgRegSaveError)
		return
	}

	h.regMu.Lock()
	delete(h.regSessions, userID)
	h.regMu.Unlock()

	if guard != "" {
		h.sendMessage(chatID, "⚠️ "+guard)
		return
	}

	h.sendMessage(chatID, msgRegSuccess)
	h.notifyAdmins(newApplicationText(app))
}

// notifyAdmins fans one HTML message out to every configured admin.
func (h *BotHandler) notifyAdmins(text string) {
	for _, adminID := range h.cfg.AdminIDs {
		if _, err := h.sendHTML(adminID, text, nil); err != nil {
			h.log.Warn().Err(err).Int64("admin_id", adminID).Msg("admin notification failed")
		}
	}
}
