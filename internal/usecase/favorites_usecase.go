package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yourusername/carpet-retail-bot/internal/domain/apperr"
	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
	"github.com/yourusername/carpet-retail-bot/internal/domain/repository"
)

// FavoritesUseCase lets registered users keep a personal shortlist of
// carpets.
type FavoritesUseCase interface {
	// Add stars a carpet. Starring twice is a no-op.
	Add(ctx context.Context, userID, carpetID int64) error

	// Remove unstars a carpet.
	Remove(ctx context.Context, userID, carpetID int64) error

	// List returns the user's starred carpets, newest star first.
	List(ctx context.Context, userID int64) ([]entity.Carpet, error)
}

type favoritesUseCase struct {
	favorites repository.FavoriteRepository
	carpets   repository.CarpetRepository
	log       zerolog.Logger
}

// NewFavoritesUseCase builds the shortlist service.
func NewFavoritesUseCase(favorites repository.FavoriteRepository, carpets repository.CarpetRepository, logg zerolog.Logger) FavoritesUseCase {
	return &favoritesUseCase{
		favorites: favorites,
		carpets:   carpets,
		log:       logg.With().Str("component", "favorites").Logger(),
	}
}

func (u *favoritesUseCase) Add(ctx context.Context, userID, carpetID int64) error {
	carpet, err := u.carpets.GetByID(ctx, carpetID)
	if err != nil {
		return err
	}
	if carpet == nil {
		// The card the button belonged to has been removed by a sync.
		return fmt.Errorf("carpet %d: %w", carpetID, apperr.ErrNotFound)
	}

	starred, err := u.favorites.Exists(ctx, userID, carpetID)
	if err != nil {
		return err
	}
	if starred {
		return nil
	}

	if err := u.favorites.Add(ctx, userID, carpetID); err != nil {
		return err
	}
	u.log.Debug().Int64("user_id", userID).Int64("carpet_id", carpetID).Msg("carpet starred")
	return nil
}

func (u *favoritesUseCase) Remove(ctx context.Context, userID, carpetID int64) error {
	return u.favorites.Remove(ctx, userID, carpetID)
}

func (u *favoritesUseCase) List(ctx context.Context, userID int64) ([]entity.Carpet, error) {
	return u.favorites.ListByUser(ctx, userID)
}
