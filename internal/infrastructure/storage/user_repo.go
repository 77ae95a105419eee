package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
	"github.com/yourusername/carpet-retail-bot/internal/domain/repository"
)

// UserRepo implements repository.UserRepository on GORM.
type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetRegistered(ctx context.Context, telegramID int64) (*entity.RegisteredUser, error) {
	var user entity.RegisteredUser
	err := r.db.WithContext(ctx).First(&user, "telegram_id = ?", telegramID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading registered user %d: %w", telegramID, err)
	}
	return &user, nil
}

func (r *UserRepo) GetPending(ctx context.Context, telegramID int64) (*entity.PendingUser, error) {
	var user entity.PendingUser
	err := r.db.WithContext(ctx).First(&user, "telegram_id = ?", telegramID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading pending user %d: %w", telegramID, err)
	}
	return &user, nil
}

func (r *UserRepo) GetBanned(ctx context.Context, telegramID int64) (*entity.BannedUser, error) {
	var user entity.BannedUser
	err := r.db.WithContext(ctx).First(&user, "telegram_id = ?", telegramID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading banned user %d: %w", telegramID, err)
	}
	return &user, nil
}

func (r *UserRepo) CreatePending(ctx context.Context, user *entity.PendingUser) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("creating pending user %d: %w", user.TelegramID, translateCreateErr(err))
	}
	return nil
}

func (r *UserRepo) CreateRegistered(ctx context.Context, user *entity.RegisteredUser) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("creating registered user %d: %w", user.TelegramID, translateCreateErr(err))
	}
	return nil
}

func (r *UserRepo) CreateBanned(ctx context.Context, user *entity.BannedUser) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("creating banned user %d: %w", user.TelegramID, translateCreateErr(err))
	}
	return nil
}

func (r *UserRepo) DeletePending(ctx context.Context, telegramID int64) error {
	err := r.db.WithContext(ctx).Delete(&entity.PendingUser{}, "telegram_id = ?", telegramID).Error
	if err != nil {
		return fmt.Errorf("deleting pending user %d: %w", telegramID, err)
	}
	return nil
}

func (r *UserRepo) DeleteRegistered(ctx context.Context, telegramID int64) error {
	err := r.db.WithContext(ctx).Delete(&entity.RegisteredUser{}, "telegram_id = ?", telegramID).Error
	if err != nil {
		return fmt.Errorf("deleting registered user %d: %w", telegramID, err)
	}
	return nil
}

func (r *UserRepo) ListPending(ctx context.Context, offset, limit int) ([]entity.PendingUser, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.PendingUser{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting pending users: %w", err)
	}

	var users []entity.PendingUser
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing pending users: %w", err)
	}
	return users, total, nil
}

func (r *UserRepo) ListRegistered(ctx context.Context, offset, limit int) ([]entity.RegisteredUser, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.RegisteredUser{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting registered users: %w", err)
	}

	var users []entity.RegisteredUser
	err := r.db.WithContext(ctx).
		Order("first_name").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing registered users: %w", err)
	}
	return users, total, nil
}

// Both sides are folded by the database so the pattern and the column
// agree under one collation regardless of the engine.
const registeredSearchClause = "LOWER(phone) LIKE LOWER(?) OR LOWER(username) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)"

func (r *UserRepo) SearchRegistered(ctx context.Context, query string, offset, limit int) ([]entity.RegisteredUser, int64, error) {
	pattern := "%" + strings.TrimSpace(query) + "%"
	where := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&entity.RegisteredUser{}).
			Where(registeredSearchClause, pattern, pattern, pattern, pattern)
	}

	var total int64
	if err := where().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting user search: %w", err)
	}

	var users []entity.RegisteredUser
	err := where().
		Order("first_name").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("searching users: %w", err)
	}
	return users, total, nil
}

func (r *UserRepo) ListRegisteredIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&entity.RegisteredUser{}).
		Order("telegram_id").
		Pluck("telegram_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("listing registered ids: %w", err)
	}
	return ids, nil
}

func (r *UserRepo) InTx(ctx context.Context, fn func(repository.UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UserRepo{db: tx})
	})
}
