package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/yourusername/carpet-retail-bot/config"
	"github.com/yourusername/carpet-retail-bot/internal/delivery/telegram"
	"github.com/yourusername/carpet-retail-bot/internal/domain/constants"
	"github.com/yourusername/carpet-retail-bot/internal/infrastructure/sheets"
	"github.com/yourusername/carpet-retail-bot/internal/infrastructure/storage"
	"github.com/yourusername/carpet-retail-bot/internal/metrics"
	"github.com/yourusername/carpet-retail-bot/internal/usecase"
	"github.com/yourusername/carpet-retail-bot/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// App owns every long-lived component of the bot process: the database
// pool, the Telegram handler and the health/metrics listener. Everything
// is constructed in New and torn down in Shutdown, nothing lives in
// package-level state.
type App struct {
	cfg     *config.Config
	log     zerolog.Logger
	db      *gorm.DB
	httpSrv *http.Server
	bot     *telegram.BotHandler
}

// New loads the configuration and wires the full dependency graph:
// storage, sheet source, metrics, use cases and the Telegram handler.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Options{
		ServiceName: "carpet-bot",
		Level:       logger.ParseLevel(cfg.Log.Level),
		Pretty:      cfg.Log.Pretty,
	})
	log.Info().Msg("starting up")

	db, err := storage.Connect(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	log.Info().Msg("postgres ready")

	userRepo := storage.NewUserRepo(db)
	carpetRepo := storage.NewCarpetRepo(db)
	saleRepo := storage.NewSaleRepo(db)
	favoriteRepo := storage.NewFavoriteRepo(db)

	sheetSource, err := sheets.NewClient(ctx, cfg.Sheets.CredentialsFile, log)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	log.Info().Msg("sheets client ready")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	botMetrics := metrics.NewBotMetrics(registry)

	userUC := usecase.NewUserUseCase(userRepo, cfg.Bot, log)
	adminUC := usecase.NewUserAdminUseCase(userRepo, cfg.Search.RowsPerPage, log)
	searchUC := usecase.NewSearchUseCase(carpetRepo, cfg.Search.OnlyAvailable, constants.SearchResultsLimit, log)
	syncUC := usecase.NewSyncUseCase(sheetSource, carpetRepo, saleRepo, cfg.Sheets, botMetrics, log)
	favoritesUC := usecase.NewFavoritesUseCase(favoriteRepo, carpetRepo, log)

	botHandler, err := telegram.NewBotHandler(cfg.Bot, userUC, adminUC, searchUC, syncUC, favoritesUC, botMetrics, log)
	if err != nil {
		return nil, fmt.Errorf("create bot handler: %w", err)
	}

	return &App{
		cfg:     cfg,
		log:     log,
		db:      db,
		httpSrv: newHTTPServer(cfg.HTTP.Addr, db, registry),
		bot:     botHandler,
	}, nil
}

// Run starts the health listener and the long-polling loop, then blocks
// until SIGINT/SIGTERM or until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		a.log.Info().Str("addr", a.httpSrv.Addr).Msg("http listener started")
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error().Err(err).Msg("http listener failed")
		}
	}()

	go func() {
		if err := a.bot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Error().Err(err).Msg("bot stopped with error")
		}
	}()
	a.log.Info().Msg("bot is running, press Ctrl+C to stop")

	select {
	case <-sigChan:
		a.log.Info().Msg("shutdown signal received")
	case <-ctx.Done():
	}
	cancel()

	return a.Shutdown()
}

// Shutdown stops the HTTP listener and closes the database pool. Safe to
// call once; Run calls it on its way out.
func (a *App) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := multierr.Combine(
		a.httpSrv.Shutdown(shutdownCtx),
		storage.Close(a.db),
	)
	if err != nil {
		a.log.Error().Err(err).Msg("shutdown finished with errors")
		return err
	}
	a.log.Info().Msg("stopped cleanly")
	return nil
}
