package main

import (
	"database/sql"
	"os"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/yourusername/carpet-retail-bot/config"
	"github.com/yourusername/carpet-retail-bot/pkg/logger"
)

const migrationsDir = "./migrations"

func main() {
	log := logger.New(logger.Options{ServiceName: "carpet-bot-migrate"})

	cfg, err := config.LoadDB()
	if err != nil {
		log.Fatal().Err(err).Msg("db config load failed")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres open failed")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("postgres ping failed")
	}

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("goose dialect failed")
	}

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	log.Info().Str("command", command).Msg("running migrations")

	switch command {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	case "version":
		var version int64
		if version, err = goose.GetDBVersion(db); err == nil {
			log.Info().Int64("version", version).Msg("current migration version")
		}
	case "create":
		if len(os.Args) < 3 {
			log.Fatal().Msg("usage: migrate create <name>")
		}
		err = goose.Create(db, migrationsDir, os.Args[2], "sql")
	default:
		log.Fatal().Str("command", command).Msg("unknown command, expected up, down, status, version or create")
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("migration failed")
	}
	log.Info().Msg("done")
}
