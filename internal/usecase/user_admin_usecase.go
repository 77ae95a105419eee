package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourusername/carpet-retail-bot/internal/domain/apperr"
	"github.com/yourusername/carpet-retail-bot/internal/domain/constants"
	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
	"github.com/yourusername/carpet-retail-bot/internal/domain/repository"
)

// Refusal messages of the management operations.
const (
	adminNotInPendingList  = "Пользователь не найден в списке ожидающих"
	adminUserNotFound      = "Пользователь не найден"
	adminAlreadyRegistered = "Пользователь уже зарегистрирован"
	adminAlreadyPending    = "Пользователь есть в списке ожидающих. Используйте команду одобрения"
	adminAlreadyBanned     = "Пользователь заблокирован. Сначала разблокируйте его."
)

// UserAdminUseCase is the admin side of user management. Mutations that
// move an identity between the user sets run in one transaction so the
// sets stay disjoint. Every operation returns a refusal message instead
// of an error when the precondition is a business rule, not a failure.
type UserAdminUseCase interface {
	// Approve moves a pending application into the registered set with
	// the given role and returns the new user for the notification.
	Approve(ctx context.Context, telegramID int64, role entity.UserRole) (*entity.RegisteredUser, string, error)

	// Reject drops a pending application and returns it for the
	// notification.
	Reject(ctx context.Context, telegramID int64) (*entity.PendingUser, string, error)

	// Ban moves a registered user into the banned set.
	Ban(ctx context.Context, telegramID int64) (*entity.BannedUser, string, error)

	// AddManually inserts a registered user directly, guarded against
	// presence in any user set. An empty role defaults to Неопределенна.
	AddManually(ctx context.Context, user *entity.RegisteredUser) (string, error)

	// Pending returns one application by id, nil when it is gone.
	Pending(ctx context.Context, telegramID int64) (*entity.PendingUser, error)

	// Registered returns one approved user by id, nil when unknown.
	Registered(ctx context.Context, telegramID int64) (*entity.RegisteredUser, error)

	// PendingPage returns one page of applications with the total count
	// and the page count.
	PendingPage(ctx context.Context, page int) ([]entity.PendingUser, int64, int, error)

	// RegisteredPage returns one page of approved users.
	RegisteredPage(ctx context.Context, page int) ([]entity.RegisteredUser, int64, int, error)

	// SearchPage returns one page of approved users matching the query.
	SearchPage(ctx context.Context, query string, page int) ([]entity.RegisteredUser, int64, int, error)

	// Broadcast delivers to every registered user in rate-limited
	// batches; per-user failures are counted, never fatal. Returns how
	// many deliveries succeeded and failed.
	Broadcast(ctx context.Context, deliver func(telegramID int64) error) (int, int, error)
}

type userAdminUseCase struct {
	users       repository.UserRepository
	rowsPerPage int
	log         zerolog.Logger
}

// NewUserAdminUseCase builds the management service. rowsPerPage sizes
// the inline list pages.
func NewUserAdminUseCase(users repository.UserRepository, rowsPerPage int, logg zerolog.Logger) UserAdminUseCase {
	if rowsPerPage <= 0 {
		rowsPerPage = constants.DefaultInlineRowsPerPage
	}
	return &userAdminUseCase{
		users:       users,
		rowsPerPage: rowsPerPage,
		log:         logg.With().Str("component", "user_admin").Logger(),
	}
}

func (u *userAdminUseCase) Approve(ctx context.Context, telegramID int64, role entity.UserRole) (*entity.RegisteredUser, string, error) {
	if !role.Valid() {
		return nil, "", apperr.InvalidArgumentf("unknown role %q", role)
	}

	var (
		approved *entity.RegisteredUser
		refusal  string
	)
	err := u.users.InTx(ctx, func(repo repository.UserRepository) error {
		pending, err := repo.GetPending(ctx, telegramID)
		if err != nil {
			return err
		}
		if pending == nil {
			refusal = adminNotInPendingList
			return nil
		}

		registered, err := repo.GetRegistered(ctx, telegramID)
		if err != nil {
			return err
		}
		if registered != nil {
			refusal = adminAlreadyRegistered
			return nil
		}

		approved = &entity.RegisteredUser{
			TelegramID: pending.TelegramID,
			Username:   pending.Username,
			FirstName:  pending.FirstName,
			LastName:   pending.LastName,
			Email:      pending.Email,
			Phone:      pending.Phone,
			Role:       role,
		}
		if err := repo.CreateRegistered(ctx, approved); err != nil {
			return err
		}
		return repo.DeletePending(ctx, telegramID)
	})
	if err != nil {
		return nil, "", fmt.Errorf("approving user %d: %w", telegramID, err)
	}
	if refusal != "" {
		return nil, refusal, nil
	}

	u.log.Info().Int64("telegram_id", telegramID).Str("role", string(role)).Msg("user approved")
	return approved, "", nil
}

func (u *userAdminUseCase) Reject(ctx context.Context, telegramID int64) (*entity.PendingUser, string, error) {
	pending, err := u.users.GetPending(ctx, telegramID)
	if err != nil {
		return nil, "", err
	}
	if pending == nil {
		return nil, adminNotInPendingList, nil
	}

	if err := u.users.DeletePending(ctx, telegramID); err != nil {
		return nil, "", fmt.Errorf("rejecting user %d: %w", telegramID, err)
	}

	u.log.Info().Int64("telegram_id", telegramID).Msg("application rejected")
	return pending, "", nil
}

func (u *userAdminUseCase) Ban(ctx context.Context, telegramID int64) (*entity.BannedUser, string, error) {
	var (
		banned  *entity.BannedUser
		refusal string
	)
	err := u.users.InTx(ctx, func(repo repository.UserRepository) error {
		registered, err := repo.GetRegistered(ctx, telegramID)
		if err != nil {
			return err
		}
		if registered == nil {
			refusal = adminUserNotFound
			return nil
		}

		banned = &entity.BannedUser{
			TelegramID: registered.TelegramID,
			Username:   registered.Username,
			FirstName:  registered.FirstName,
			LastName:   registered.LastName,
			Email:      registered.Email,
			Phone:      registered.Phone,
		}
		if err := repo.CreateBanned(ctx, banned); err != nil {
			return err
		}
		return repo.DeleteRegistered(ctx, telegramID)
	})
	if err != nil {
		return nil, "", fmt.Errorf("banning user %d: %w", telegramID, err)
	}
	if refusal != "" {
		return nil, refusal, nil
	}

	u.log.Info().Int64("telegram_id", telegramID).Msg("user banned")
	return banned, "", nil
}

func (u *userAdminUseCase) AddManually(ctx context.Context, user *entity.RegisteredUser) (string, error) {
	if user.Role == "" {
		user.Role = entity.RoleUndefined
	} else if !user.Role.Valid() {
		return "", apperr.InvalidArgumentf("unknown role %q", user.Role)
	}

	var refusal string
	err := u.users.InTx(ctx, func(repo repository.UserRepository) error {
		registered, err := repo.GetRegistered(ctx, user.TelegramID)
		if err != nil {
			return err
		}
		if registered != nil {
			refusal = adminAlreadyRegistered
			return nil
		}

		pending, err := repo.GetPending(ctx, user.TelegramID)
		if err != nil {
			return err
		}
		if pending != nil {
			refusal = adminAlreadyPending
			return nil
		}

		banned, err := repo.GetBanned(ctx, user.TelegramID)
		if err != nil {
			return err
		}
		if banned != nil {
			refusal = adminAlreadyBanned
			return nil
		}

		return repo.CreateRegistered(ctx, user)
	})
	if err != nil {
		return "", fmt.Errorf("adding user %d: %w", user.TelegramID, err)
	}
	if refusal != "" {
		return refusal, nil
	}

	u.log.Info().Int64("telegram_id", user.TelegramID).Str("role", string(user.Role)).Msg("user added manually")
	return "", nil
}

func (u *userAdminUseCase) Pending(ctx context.Context, telegramID int64) (*entity.PendingUser, error) {
	return u.users.GetPending(ctx, telegramID)
}

func (u *userAdminUseCase) Registered(ctx context.Context, telegramID int64) (*entity.RegisteredUser, error) {
	return u.users.GetRegistered(ctx, telegramID)
}

func (u *userAdminUseCase) PendingPage(ctx context.Context, page int) ([]entity.PendingUser, int64, int, error) {
	if page < 0 {
		page = 0
	}
	users, total, err := u.users.ListPending(ctx, page*u.rowsPerPage, u.rowsPerPage)
	if err != nil {
		return nil, 0, 0, err
	}
	return users, total, totalPages(total, u.rowsPerPage), nil
}

func (u *userAdminUseCase) RegisteredPage(ctx context.Context, page int) ([]entity.RegisteredUser, int64, int, error) {
	if page < 0 {
		page = 0
	}
	users, total, err := u.users.ListRegistered(ctx, page*u.rowsPerPage, u.rowsPerPage)
	if err != nil {
		return nil, 0, 0, err
	}
	return users, total, totalPages(total, u.rowsPerPage), nil
}

func (u *userAdminUseCase) SearchPage(ctx context.Context, query string, page int) ([]entity.RegisteredUser, int64, int, error) {
	if page < 0 {
		page = 0
	}
	users, total, err := u.users.SearchRegistered(ctx, query, page*u.rowsPerPage, u.rowsPerPage)
	if err != nil {
		return nil, 0, 0, err
	}
	return users, total, totalPages(total, u.rowsPerPage), nil
}

func (u *userAdminUseCase) Broadcast(ctx context.Context, deliver func(telegramID int64) error) (int, int, error) {
	ids, err := u.users.ListRegisteredIDs(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("loading broadcast targets: %w", err)
	}
	if len(ids) == 0 {
		return 0, 0, nil
	}

	u.log.Info().Int("targets", len(ids)).Msg("broadcast started")

	var sent, failed int64
	for start := 0; start < len(ids); start += constants.BroadcastBatchSize {
		end := min(start+constants.BroadcastBatchSize, len(ids))

		var wg sync.WaitGroup
		for _, id := range ids[start:end] {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				if err := deliver(id); err != nil {
					atomic.AddInt64(&failed, 1)
					u.log.Warn().Int64("telegram_id", id).Err(err).Msg("broadcast delivery failed")
					return
				}
				atomic.AddInt64(&sent, 1)
			}(id)
		}
		wg.Wait()

		// Stay under the Bot API rate limit between batches.
		if end < len(ids) {
			select {
			case <-ctx.Done():
				return int(sent), int(failed), ctx.Err()
			case <-time.After(constants.BroadcastBatchPauseSeconds * time.Second):
			}
		}
	}

	u.log.Info().Int64("sent", sent).Int64("failed", failed).Msg("broadcast finished")
	return int(sent), int(failed), nil
}

func totalPages(total int64, pageSize int) int {
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
