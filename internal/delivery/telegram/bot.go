package telegram

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/yourusername/carpet-retail-bot/config"
	"github.com/yourusername/carpet-retail-bot/internal/metrics"
	"github.com/yourusername/carpet-retail-bot/internal/usecase"
)

// BotHandler drives the Telegram side: long polling, command and
// callback routing, and the per-user conversation state for the
// multi-step flows. Each flow keeps its own map under its own lock so
// an admin adding a user does not contend with someone mid-search.
type BotHandler struct {
	bot     *tgbotapi.BotAPI
	cfg     config.BotConfig
	log     zerolog.Logger
	metrics *metrics.BotMetrics

	users     usecase.UserUseCase
	admin     usecase.UserAdminUseCase
	search    usecase.SearchUseCase
	syncer    usecase.SyncUseCase
	favorites usecase.FavoritesUseCase

	regMu       sync.RWMutex
	regSessions map[int64]*regSession

	searchMu       sync.RWMutex
	searchSessions map[int64]*searchSession

	addMu       sync.RWMutex
	addSessions map[int64]*addUserSession

	banMu       sync.RWMutex
	banSessions map[int64]*banSession

	declineMu      sync.RWMutex
	declineTargets map[int64]int64

	broadcastMu       sync.RWMutex
	broadcastSessions map[int64]*broadcastSession
}

// NewBotHandler authorizes the bot account and wires the usecases in.
// m may be nil.
func NewBotHandler(
	cfg config.BotConfig,
	users usecase.UserUseCase,
	admin usecase.UserAdminUseCase,
	search usecase.SearchUseCase,
	syncer usecase.SyncUseCase,
	favorites usecase.FavoritesUseCase,
	m *metrics.BotMetrics,
	logg zerolog.Logger,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	handler := &BotHandler{
		bot:               bot,
		cfg:               cfg,
		log:               logg.With().Str("component", "telegram").Logger(),
		metrics:           m,
		users:             users,
		admin:             admin,
		search:            search,
		syncer:            syncer,
		favorites:         favorites,
		regSessions:       make(map[int64]*regSession),
		searchSessions:    make(map[int64]*searchSession),
		addSessions:       make(map[int64]*addUserSession),
		banSessions:       make(map[int64]*banSession),
		declineTargets:    make(map[int64]int64),
		broadcastSessions: make(map[int64]*broadcastSession),
	}

	handler.log.Info().Str("account", bot.Self.UserName).Msg("bot authorized")
	return handler, nil
}

// Start runs the long-polling loop until the context is cancelled.
// Every update is handled in its own goroutine so one slow flow never
// blocks the rest.
func (h *BotHandler) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if update.CallbackQuery != nil {
				h.metrics.IncUpdate("callback")
				go h.handleCallback(ctx, update.CallbackQuery)
				continue
			}
			if update.Message == nil {
				continue
			}
			go h.handleMessage(ctx, update.Message)
		}
	}
}

func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}

	if message.Document != nil {
		h.metrics.IncUpdate("document")
		h.handleDocumentMessage(ctx, message)
		return
	}
	if message.IsCommand() {
		h.metrics.IncUpdate("command")
		h.handleCommand(ctx, message)
		return
	}
	h.metrics.IncUpdate("message")
	h.handleText(ctx, message)
}

func (h *BotHandler) isAdmin(telegramID int64) bool {
	return h.cfg.IsAdmin(telegramID)
}
