package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/carpet-retail-bot/internal/domain/apperr"
)

func (h *BotHandler) showFavorites(ctx context.Context, chatID, userID int64) {
	carpets, err := h.favorites.List(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("favorites list failed")
		h.sendMessage(chatID, msgProcessingError)
		return
	}

	if len(carpets) == 0 {
		h.sendMessage(chatID, msgFavoritesEmpty)
		return
	}

	h.sendHTMLChunked(chatID, msgFavoritesTitle+"\n\n"+carpetListText(carpets))
	if _, err := h.sendHTML(chatID, "💔 Убрать из избранного:", favoritesRemoveKeyboard(carpets)); err != nil {
		h.log.Warn().Err(err).Msg("favorites keyboard send failed")
	}
}

func (h *BotHandler) addFavorite(ctx context.Context, cq *tgbotapi.CallbackQuery, idArg string) {
	carpetID, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		h.answerCallback(cq.ID, "")
		return
	}

	if err := h.favorites.Add(ctx, cq.From.ID, carpetID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			h.answerCallback(cq.ID, "❌ Ковёр больше не доступен")
			return
		}
		h.log.Error().Err(err).Int64("carpet_id", carpetID).Msg("favorite add failed")
		h.answerCallback(cq.ID, msgOperationError)
		return
	}
	h.answerCallback(cq.ID, "⭐ Добавлено в избранное")
}

func (h *BotHandler) removeFavorite(ctx context.Context, cq *tgbotapi.CallbackQuery, idArg string) {
	carpetID, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		h.answerCallback(cq.ID, "")
		return
	}

	if err := h.favorites.Remove(ctx, cq.From.ID, carpetID); err != nil {
		h.log.Error().Err(err).Int64("carpet_id", carpetID).Msg("favorite remove failed")
		h.answerCallback(cq.ID, msgOperationError)
		return
	}
	h.answerCallback(cq.ID, "💔 Убрано из избранного")
	h.showFavorites(ctx, cq.Message.Chat.ID, cq.From.ID)
}
