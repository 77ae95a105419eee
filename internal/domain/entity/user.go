package entity

import (
	"strings"
	"time"
)

// UserRole is the access role assigned to an approved user.
// Values are stored (and displayed) exactly as the business names them.
type UserRole string

const (
	RoleColleague UserRole = "Коллега"
	RoleUndefined UserRole = "Неопределенна"
	RoleDesigner  UserRole = "Дизайнер"
)

// UserRoles lists the assignable roles in menu order.
var UserRoles = []UserRole{RoleColleague, RoleUndefined, RoleDesigner}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleColleague, RoleUndefined, RoleDesigner:
		return true
	}
	return false
}

// RegisteredUser is an approved bot user. The three user tables
// (registered, pending, banned) are disjoint on TelegramID: an identity
// lives in exactly one of them at any time.
type RegisteredUser struct {
	TelegramID int64     `gorm:"column:telegram_id;primaryKey" json:"telegram_id"`
	Username   *string   `gorm:"column:username;size:32;unique" json:"username,omitempty"`
	FirstName  string    `gorm:"column:first_name;size:32;not null" json:"first_name"`
	LastName   *string   `gorm:"column:last_name;size:32" json:"last_name,omitempty"`
	Email      string    `gorm:"column:email;size:64;not null" json:"email"`
	Phone      *string   `gorm:"column:phone;size:16;unique" json:"phone,omitempty"`
	Role       UserRole  `gorm:"column:role;size:32;not null" json:"role"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName maps the entity onto the registered_users table.
func (RegisteredUser) TableName() string { return "registered_users" }

// FullName joins first and last name, skipping an absent last name.
func (u *RegisteredUser) FullName() string {
	if u.LastName == nil || *u.LastName == "" {
		return u.FirstName
	}
	return strings.TrimSpace(u.FirstName + " " + *u.LastName)
}

// PendingUser is a registration application awaiting admin review.
// FromWhom records who referred the applicant.
type PendingUser struct {
	TelegramID int64     `gorm:"column:telegram_id;primaryKey" json:"telegram_id"`
	Username   *string   `gorm:"column:username;size:32;unique" json:"username,omitempty"`
	FirstName  string    `gorm:"column:first_name;size:32;not null" json:"first_name"`
	LastName   *string   `gorm:"column:last_name;size:32" json:"last_name,omitempty"`
	Email      string    `gorm:"column:email;size:64;not null" json:"email"`
	Phone      *string   `gorm:"column:phone;size:16;unique" json:"phone,omitempty"`
	FromWhom   string    `gorm:"column:from_whom;size:100;not null" json:"from_whom"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName maps the entity onto the pending_users table.
func (PendingUser) TableName() string { return "pending_users" }

// FullName joins first and last name, skipping an absent last name.
func (u *PendingUser) FullName() string {
	if u.LastName == nil || *u.LastName == "" {
		return u.FirstName
	}
	return strings.TrimSpace(u.FirstName + " " + *u.LastName)
}

// BannedUser keeps the contact data of a blocked identity so the ban
// survives re-registration attempts.
type BannedUser struct {
	TelegramID int64     `gorm:"column:telegram_id;primaryKey" json:"telegram_id"`
	Username   *string   `gorm:"column:username;size:32;unique" json:"username,omitempty"`
	FirstName  string    `gorm:"column:first_name;size:32;not null" json:"first_name"`
	LastName   *string   `gorm:"column:last_name;size:32" json:"last_name,omitempty"`
	Email      string    `gorm:"column:email;size:64;not null" json:"email"`
	Phone      *string   `gorm:"column:phone;size:16;unique" json:"phone,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName maps the entity onto the banned_users table.
func (BannedUser) TableName() string { return "banned_users" }
