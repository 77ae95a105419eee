package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/carpet-retail-bot/internal/domain/apperr"
	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
)

// FavoriteRepo implements repository.FavoriteRepository on GORM.
type FavoriteRepo struct {
	db *gorm.DB
}

func NewFavoriteRepo(db *gorm.DB) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

// Add stars the carpet for the user. The (user, carpet) pair is unique
// in the table, so a concurrent double-tap degrades to a no-op.
func (r *FavoriteRepo) Add(ctx context.Context, userID, carpetID int64) error {
	favorite := entity.FavoriteCarpet{
		ID:       uuid.New(),
		UserID:   userID,
		CarpetID: carpetID,
	}
	err := r.db.WithContext(ctx).Create(&favorite).Error
	if err != nil {
		if errors.Is(translateCreateErr(err), apperr.ErrAlreadyExists) {
			return nil
		}
		return fmt.Errorf("adding favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepo) Remove(ctx context.Context, userID, carpetID int64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND carpet_id = ?", userID, carpetID).
		Delete(&entity.FavoriteCarpet{}).Error
	if err != nil {
		return fmt.Errorf("removing favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepo) ListByUser(ctx context.Context, userID int64) ([]entity.Carpet, error) {
	var carpets []entity.Carpet
	err := r.db.WithContext(ctx).
		Model(&entity.Carpet{}).
		Joins("JOIN favorite_carpets ON favorite_carpets.carpet_id = carpets.carpet_id").
		Where("favorite_carpets.user_id = ?", userID).
		Order("favorite_carpets.created_at DESC").
		Find(&carpets).Error
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	return carpets, nil
}

func (r *FavoriteRepo) Exists(ctx context.Context, userID, carpetID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.FavoriteCarpet{}).
		Where("user_id = ? AND carpet_id = ?", userID, carpetID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking favorite: %w", err)
	}
	return count > 0, nil
}
