// Package storage implements the domain repositories on PostgreSQL
// through GORM. Every repository is a thin struct over a *gorm.DB and
// can be re-scoped onto a transaction via InTx.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yourusername/carpet-retail-bot/config"
)

const (
	connectAttempts = 20
	connectDelay    = 2 * time.Second
)

// Connect opens the GORM client and waits for the database to accept
// connections. Postgres in a fresh compose stack needs a few seconds,
// so the ping is retried with a fixed delay.
func Connect(ctx context.Context, cfg config.DBConfig, logg zerolog.Logger) (*gorm.DB, error) {
	dialector := postgres.New(postgres.Config{
		DSN:                  cfg.DSN,
		PreferSimpleProtocol: true,
	})

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening db connection: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		if lastErr = sqlDB.PingContext(ctx); lastErr == nil {
			return conn, nil
		}
		logg.Warn().Err(lastErr).Int("attempt", attempt).Msg("postgres not ready")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectDelay):
		}
	}
	return nil, fmt.Errorf("connecting to postgres: %w", lastErr)
}

// Ping checks that the database is reachable. Used by the health endpoint.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close shuts down the pooled connections.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
