package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/carpet-retail-bot/internal/domain/constants"
)

// sendText sends one message with optional parseMode and replyMarkup.
func (h *BotHandler) sendText(chatID int64, text string, parseMode string, replyMarkup interface{}) (*tgbotapi.Message, error) {
	if h.bot == nil {
		return nil, fmt.Errorf("telegram bot is nil")
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = parseMode
	if replyMarkup != nil {
		msg.ReplyMarkup = replyMarkup
	}
	sent, err := h.bot.Send(msg)
	if err != nil {
		return nil, err
	}
	return &sent, nil
}

// sendMessage sends plain text, split to fit the Telegram message limit.
func (h *BotHandler) sendMessage(chatID int64, text string) {
	h.sendChunked(chatID, text, "")
}

// sendHTML sends an HTML-formatted message with an optional keyboard.
func (h *BotHandler) sendHTML(chatID int64, text string, replyMarkup interface{}) (*tgbotapi.Message, error) {
	return h.sendText(chatID, text, tgbotapi.ModeHTML, replyMarkup)
}

func (h *BotHandler) sendChunked(chatID int64, text, parseMode string) {
	if strings.TrimSpace(text) == "" {
		h.log.Warn().Int64("chat_id", chatID).Msg("refusing to send empty message")
		return
	}
	for _, chunk := range splitIntoChunks(text, constants.MaxMessageLength) {
		if _, err := h.sendText(chatID, chunk, parseMode, nil); err != nil {
			h.log.Error().Err(err).Int64("chat_id", chatID).Msg("send failed")
			return
		}
	}
}

// sendHTMLChunked sends long HTML content in message-sized pieces.
func (h *BotHandler) sendHTMLChunked(chatID int64, text string) {
	h.sendChunked(chatID, text, tgbotapi.ModeHTML)
}

// editHTML replaces the text and keyboard of an already sent message.
func (h *BotHandler) editHTML(chatID int64, messageID int, text string, replyMarkup tgbotapi.InlineKeyboardMarkup) error {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, replyMarkup)
	edit.ParseMode = tgbotapi.ModeHTML
	_, err := h.bot.Send(edit)
	return err
}

// answerCallback stops the button spinner; text shows as a toast when
// non-empty.
func (h *BotHandler) answerCallback(callbackID, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := h.bot.Request(callback); err != nil {
		h.log.Warn().Err(err).Msg("answer callback failed")
	}
}

// sendDocument uploads an in-memory file to the chat.
func (h *BotHandler) sendDocument(chatID int64, name string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	if caption != "" {
		doc.Caption = caption
	}
	_, err := h.bot.Send(doc)
	return err
}

// splitIntoChunks cuts s into pieces of at most limit runes, so a long
// result list still goes through the Telegram message size cap.
func splitIntoChunks(s string, limit int) []string {
	if limit <= 0 {
		return []string{s}
	}
	var chunks []string
	var current strings.Builder
	count := 0

	for _, r := range s {
		current.WriteRune(r)
		count++
		if count >= limit {
			chunks = append(chunks, current.String())
			current.Reset()
			count = 0
		}
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}
