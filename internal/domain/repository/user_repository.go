package repository

import (
	"context"

	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
)

// UserRepository stores the three disjoint user sets. Lookup methods
// return (nil, nil) on a miss so membership checks stay branchless;
// set transitions are orchestrated by the user-admin usecase inside InTx.
type UserRepository interface {
	// GetRegistered loads an approved user. (nil, nil) when absent.
	GetRegistered(ctx context.Context, telegramID int64) (*entity.RegisteredUser, error)

	// GetPending loads a registration application. (nil, nil) when absent.
	GetPending(ctx context.Context, telegramID int64) (*entity.PendingUser, error)

	// GetBanned loads a banned identity. (nil, nil) when absent.
	GetBanned(ctx context.Context, telegramID int64) (*entity.BannedUser, error)

	// CreatePending stores a new registration application.
	CreatePending(ctx context.Context, user *entity.PendingUser) error

	// CreateRegistered stores an approved user.
	CreateRegistered(ctx context.Context, user *entity.RegisteredUser) error

	// CreateBanned stores a banned identity.
	CreateBanned(ctx context.Context, user *entity.BannedUser) error

	// DeletePending removes a registration application.
	DeletePending(ctx context.Context, telegramID int64) error

	// DeleteRegistered removes an approved user.
	DeleteRegistered(ctx context.Context, telegramID int64) error

	// ListPending pages applications newest first, returning the page and
	// the total application count.
	ListPending(ctx context.Context, offset, limit int) ([]entity.PendingUser, int64, error)

	// ListRegistered pages approved users ordered by first name.
	ListRegistered(ctx context.Context, offset, limit int) ([]entity.RegisteredUser, int64, error)

	// SearchRegistered pages approved users whose phone, username, last
	// name or email contains the query (case-insensitive), ordered by
	// first name.
	SearchRegistered(ctx context.Context, query string, offset, limit int) ([]entity.RegisteredUser, int64, error)

	// ListRegisteredIDs returns every approved user's telegram id.
	ListRegisteredIDs(ctx context.Context) ([]int64, error)

	// InTx runs fn against a transaction-scoped copy of the repository,
	// committing on nil and rolling back on error.
	InTx(ctx context.Context, fn func(UserRepository) error) error
}
