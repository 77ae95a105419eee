package storage

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yourusername/carpet-retail-bot/internal/domain/apperr"
)

const pgUniqueViolation = "23505"

// isUniqueViolation classifies duplicate-key failures. Postgres reports
// them with a structured code; the message fallback covers the SQLite
// databases used in tests.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// translateCreateErr maps duplicate-key failures onto the domain
// sentinel so callers can branch without knowing the driver.
func translateCreateErr(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return apperr.MarkAlreadyExists(err)
	}
	return err
}
