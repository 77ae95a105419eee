package main

import (
	"context"
	"os"
	"time"

	"github.com/yourusername/carpet-retail-bot/internal/app"
	"github.com/yourusername/carpet-retail-bot/pkg/logger"
)

func main() {
	initDefaultTimezone()

	application, err := app.New(context.Background())
	if err != nil {
		logger.New(logger.Options{ServiceName: "carpet-bot"}).
			Fatal().Err(err).Msg("startup failed")
	}

	if err := application.Run(context.Background()); err != nil {
		os.Exit(1)
	}
}

// Dates in sheet rows and admin screens are business-local; the host
// container has no tzdata guarantee, so fall back to a fixed offset.
func initDefaultTimezone() {
	const tzName = "Europe/Moscow"
	if loc, err := time.LoadLocation(tzName); err == nil {
		time.Local = loc
		return
	}
	time.Local = time.FixedZone(tzName, 3*60*60)
}
