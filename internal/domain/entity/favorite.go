package entity

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteCarpet links a registered user to a carpet they starred.
// The (user, carpet) pair is unique; re-adding is a no-op upstream.
type FavoriteCarpet struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    int64     `gorm:"column:user_id;not null" json:"user_id"`
	CarpetID  int64     `gorm:"column:carpet_id;not null" json:"carpet_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName maps the entity onto the favorite_carpets table.
func (FavoriteCarpet) TableName() string { return "favorite_carpets" }
