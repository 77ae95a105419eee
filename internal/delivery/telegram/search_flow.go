package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
)

func (h *BotHandler) searchSession(userID int64) (*searchSession, bool) {
	h.searchMu.RLock()
	session, ok := h.searchSessions[userID]
	h.searchMu.RUnlock()
	return session, ok
}

func (h *BotHandler) storeSearchSession(userID int64, session *searchSession) {
	h.searchMu.Lock()
	h.searchSessions[userID] = session
	h.searchMu.Unlock()
}

// openSearchMenu starts (or resumes) the filter conversation with a
// fresh menu message.
func (h *BotHandler) openSearchMenu(ctx context.Context, chatID, userID int64) {
	session, ok := h.searchSession(userID)
	if !ok {
		session = &searchSession{Filters: &entity.CarpetFilters{}}
	}

	total, err := h.search.Count(ctx, session.Filters)
	if err != nil {
		h.log.Error().Err(err).Msg("carpet count failed")
		h.sendMessage(chatID, msgProcessingError)
		return
	}

	sent, err := h.sendHTML(chatID, searchMenuText(session.Filters, total), searchMenuKeyboard(session.Filters, total > 0))
	if err != nil {
		h.log.Error().Err(err).Msg("search menu send failed")
		return
	}
	session.MessageID = sent.MessageID
	h.storeSearchSession(userID, session)
}

func (h *BotHandler) renderSearchMenu(ctx context.Context, cq *tgbotapi.CallbackQuery, session *searchSession) {
	total, err := h.search.Count(ctx, session.Filters)
	if err != nil {
		h.log.Error().Err(err).Msg("carpet count failed")
		h.answerCallback(cq.ID, msgProcessingError)
		return
	}
	session.MessageID = cq.Message.MessageID
	h.storeSearchSession(cq.From.ID, session)
	h.renderScreen(cq.Message.Chat.ID, cq.Message.MessageID, searchMenuText(session.Filters, total), searchMenuKeyboard(session.Filters, total > 0))
}

// sessionForCallback recovers the search state behind a pressed button.
// Buttons can outlive a restart, so a missing session silently becomes a
// fresh one bound to the same message.
func (h *BotHandler) sessionForCallback(cq *tgbotapi.CallbackQuery) *searchSession {
	session, ok := h.searchSession(cq.From.ID)
	if !ok {
		session = &searchSession{Filters: &entity.CarpetFilters{}, MessageID: cq.Message.MessageID}
		h.storeSearchSession(cq.From.ID, session)
	}
	return session
}

func (h *BotHandler) openFacetView(ctx context.Context, cq *tgbotapi.CallbackQuery, facetArg string) {
	facet := entity.Facet(facetArg)
	if !facet.Valid() {
		h.answerCallback(cq.ID, "")
		return
	}
	session := h.sessionForCallback(cq)
	h.answerCallback(cq.ID, "")
	h.renderFacetView(ctx, cq, session, facet)
}

// renderFacetView redraws one facet's option grid with fresh conditioned
// counts and remembers the option order for index-addressed toggles.
func (h *BotHandler) renderFacetView(ctx context.Context, cq *tgbotapi.CallbackQuery, session *searchSession, facet entity.Facet) {
	view, err := h.search.FacetView(ctx, session.Filters, facet)
	if err != nil {
		h.log.Error().Err(err).Str("facet", string(facet)).Msg("facet view failed")
		h.sendMessage(cq.Message.Chat.ID, msgProcessingError)
		return
	}

	values := make([]string, len(view.Options))
	selected := 0
	for i, opt := range view.Options {
		values[i] = opt.Value
		if opt.Selected {
			selected++
		}
	}
	session.Facet = facet
	session.Options = values
	session.MessageID = cq.Message.MessageID
	h.storeSearchSession(cq.From.ID, session)

	h.renderScreen(cq.Message.Chat.ID, cq.Message.MessageID, facetPromptText(facet, selected, len(view.Options)), facetOptionsKeyboard(facet, view.Options))
}

func (h *BotHandler) toggleFacetOption(ctx context.Context, cq *tgbotapi.CallbackQuery, facetArg, idxArg string) {
	facet := entity.Facet(facetArg)
	session := h.sessionForCallback(cq)

	idx, err := strconv.Atoi(idxArg)
	if err != nil || facet != session.Facet || idx < 0 || idx >= len(session.Options) {
		// Stale keyboard from before a restart or an older render.
		h.answerCallback(cq.ID, "")
		h.renderFacetView(ctx, cq, session, facet)
		return
	}

	if err := h.search.ToggleValue(session.Filters, facet, session.Options[idx]); err != nil {
		h.answerCallback(cq.ID, "")
		return
	}
	h.answerCallback(cq.ID, "")
	h.renderFacetView(ctx, cq, session, facet)
}

func (h *BotHandler) clearFacetSelection(ctx context.Context, cq *tgbotapi.CallbackQuery, facetArg string) {
	facet := entity.Facet(facetArg)
	session := h.sessionForCallback(cq)

	if err := h.search.ClearFacet(session.Filters, facet); err != nil {
		h.answerCallback(cq.ID, "")
		return
	}
	h.answerCallback(cq.ID, "🗑 Фильтр очищен")
	h.renderFacetView(ctx, cq, session, facet)
}

func (h *BotHandler) clearAllFilters(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	session := h.sessionForCallback(cq)
	h.search.ClearAll(session.Filters)
	h.answerCallback(cq.ID, "🗑 Все фильтры очищены")
	h.renderSearchMenu(ctx, cq, session)
}

func (h *BotHandler) applyFacetSelection(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	session := h.sessionForCallback(cq)
	h.answerCallback(cq.ID, "✅ Фильтр применен")
	h.renderSearchMenu(ctx, cq, session)
}

func (h *BotHandler) backToSearchMenu(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	session := h.sessionForCallback(cq)
	h.answerCallback(cq.ID, "")
	h.renderSearchMenu(ctx, cq, session)
}

func (h *BotHandler) showSearchResults(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	chatID := cq.Message.Chat.ID
	session := h.sessionForCallback(cq)

	carpets, total, err := h.search.Results(ctx, session.Filters)
	if err != nil {
		h.log.Error().Err(err).Msg("search results failed")
		h.answerCallback(cq.ID, msgProcessingError)
		return
	}
	h.answerCallback(cq.ID, "")

	if len(carpets) == 0 {
		h.renderScreen(chatID, cq.Message.MessageID, searchResultsText(carpets, total), searchResultsKeyboard())
		return
	}

	// The card list easily outgrows one message, so it goes out in
	// chunks and the action buttons ride on a trailing message.
	h.sendHTMLChunked(chatID, searchResultsText(carpets, total))

	markup := favoriteButtonsKeyboard(carpets)
	markup.InlineKeyboard = append(markup.InlineKeyboard, searchResultsKeyboard().InlineKeyboard...)
	if _, err := h.sendHTML(chatID, "⭐ Добавить ковёр в избранное:", markup); err != nil {
		h.log.Warn().Err(err).Msg("favorite buttons send failed")
	}
}
