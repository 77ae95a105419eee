package repository

import (
	"context"

	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
)

// FavoriteRepository stores per-user starred carpets.
type FavoriteRepository interface {
	// Add stars a carpet for the user. Adding an existing pair is a no-op.
	Add(ctx context.Context, userID, carpetID int64) error

	// Remove unstars a carpet for the user.
	Remove(ctx context.Context, userID, carpetID int64) error

	// ListByUser returns the user's starred carpets with catalog details,
	// newest star first.
	ListByUser(ctx context.Context, userID int64) ([]entity.Carpet, error)

	// Exists reports whether the user already starred the carpet.
	Exists(ctx context.Context, userID, carpetID int64) (bool, error)
}
