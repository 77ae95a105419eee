package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/carpet-retail-bot/internal/domain/apperr"
	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
	"github.com/yourusername/carpet-retail-bot/internal/domain/repository"
	"github.com/yourusername/carpet-retail-bot/internal/infrastructure/storage"
)

func newAdminFixture(t *testing.T, rowsPerPage int) (UserAdminUseCase, repository.UserRepository) {
	t.Helper()
	users := storage.NewUserRepo(newTestDB(t))
	return NewUserAdminUseCase(users, rowsPerPage, zerolog.Nop()), users
}

func TestApproveMovesApplication(t *testing.T) {
	t.Parallel()

	uc, users := newAdminFixture(t, 3)
	ctx := context.Background()
	require.NoError(t, users.CreatePending(ctx, application(42)))

	approved, refusal, err := uc.Approve(ctx, 42, entity.RoleColleague)
	require.NoError(t, err)
	require.Empty(t, refusal)
	require.Equal(t, entity.RoleColleague, approved.Role)
	require.Equal(t, "Иван Иванов", approved.FullName())

	gone, err := users.GetPending(ctx, 42)
	require.NoError(t, err)
	require.Nil(t, gone)

	registered, err := users.GetRegistered(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, registered)
	require.Equal(t, entity.RoleColleague, registered.Role)
	require.Equal(t, "ivan@example.com", registered.Email)
}

func TestApproveRefusalsAndInvalidRole(t *testing.T) {
	t.Parallel()

	uc, users := newAdminFixture(t, 3)
	ctx := context.Background()

	_, refusal, err := uc.Approve(ctx, 7, entity.RoleDesigner)
	require.NoError(t, err)
	require.Equal(t, "Пользователь не найден в списке ожидающих", refusal)

	_, _, err = uc.Approve(ctx, 7, entity.UserRole("Директор"))
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)

	// An identity that slipped into both sets refuses instead of
	// overwriting the registered row.
	require.NoError(t, users.CreatePending(ctx, application(8)))
	require.NoError(t, users.CreateRegistered(ctx, &entity.RegisteredUser{
		TelegramID: 8, FirstName: "Рег", Email: "reg@example.com", Role: entity.RoleColleague,
	}))
	_, refusal, err = uc.Approve(ctx, 8, entity.RoleDesigner)
	require.NoError(t, err)
	require.Equal(t, "Пользователь уже зарегистрирован", refusal)
}

func TestRejectDeletesApplication(t *testing.T) {
	t.Parallel()

	uc, users := newAdminFixture(t, 3)
	ctx := context.Background()
	require.NoError(t, users.CreatePending(ctx, application(42)))

	rejected, refusal, err := uc.Reject(ctx, 42)
	require.NoError(t, err)
	require.Empty(t, refusal)
	require.Equal(t, "Иван Иванов", rejected.FullName())

	gone, err := users.GetPending(ctx, 42)
	require.NoError(t, err)
	require.Nil(t, gone)

	_, refusal, err = uc.Reject(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, "Пользователь не найден в списке ожидающих", refusal)
}

func TestBanMovesRegisteredUser(t *testing.T) {
	t.Parallel()

	uc, users := newAdminFixture(t, 3)
	ctx := context.Background()
	require.NoError(t, users.CreateRegistered(ctx, &entity.RegisteredUser{
		TelegramID: 21,
		Username:   strPtr("karen"),
		FirstName:  "Карина",
		Email:      "karen@example.com",
		Phone:      strPtr("+79990001122"),
		Role:       entity.RoleDesigner,
	}))

	banned, refusal, err := uc.Ban(ctx, 21)
	require.NoError(t, err)
	require.Empty(t, refusal)
	require.Equal(t, "Карина", banned.FirstName)
	require.NotNil(t, banned.Phone)

	stillRegistered, err := users.GetRegistered(ctx, 21)
	require.NoError(t, err)
	require.Nil(t, stillRegistered)

	stored, err := users.GetBanned(ctx, 21)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, "karen@example.com", stored.Email)

	_, refusal, err = uc.Ban(ctx, 99)
	require.NoError(t, err)
	require.Equal(t, "Пользователь не найден", refusal)
}

func TestAddManuallyGuardsEverySet(t *testing.T) {
	t.Parallel()

	uc, users := newAdminFixture(t, 3)
	ctx := context.Background()

	refusal, err := uc.AddManually(ctx, &entity.RegisteredUser{
		TelegramID: 50, FirstName: "Новый", Email: "new@example.com",
	})
	require.NoError(t, err)
	require.Empty(t, refusal)

	stored, err := users.GetRegistered(ctx, 50)
	require.NoError(t, err)
	require.Equal(t, entity.RoleUndefined, stored.Role)

	refusal, err = uc.AddManually(ctx, &entity.RegisteredUser{
		TelegramID: 50, FirstName: "Новый", Email: "new2@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "Пользователь уже зарегистрирован", refusal)

	require.NoError(t, users.CreatePending(ctx, application(51)))
	refusal, err = uc.AddManually(ctx, &entity.RegisteredUser{
		TelegramID: 51, FirstName: "Жд", Email: "wait@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "Пользователь есть в списке ожидающих. Используйте команду одобрения", refusal)

	require.NoError(t, users.CreateBanned(ctx, &entity.BannedUser{
		TelegramID: 52, FirstName: "Бан", Email: "ban@example.com",
	}))
	refusal, err = uc.AddManually(ctx, &entity.RegisteredUser{
		TelegramID: 52, FirstName: "Бан", Email: "ban@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "Пользователь заблокирован. Сначала разблокируйте его.", refusal)
}

func TestPendingPagePagination(t *testing.T) {
	t.Parallel()

	uc, users := newAdminFixture(t, 2)
	ctx := context.Background()
	for i := int64(1); i <= 5; i++ {
		app := application(i)
		app.Email = fmt.Sprintf("user%d@example.com", i)
		require.NoError(t, users.CreatePending(ctx, app))
	}

	page, total, pages, err := uc.PendingPage(ctx, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.EqualValues(t, 5, total)
	require.Equal(t, 3, pages)

	last, _, _, err := uc.PendingPage(ctx, 2)
	require.NoError(t, err)
	require.Len(t, last, 1)

	empty, _, _, err := uc.PendingPage(ctx, 3)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestSearchPageFindsByPhone(t *testing.T) {
	t.Parallel()

	uc, users := newAdminFixture(t, 3)
	ctx := context.Background()
	require.NoError(t, users.CreateRegistered(ctx, &entity.RegisteredUser{
		TelegramID: 1, FirstName: "Анна", Email: "anna@example.com",
		Phone: strPtr("+79991112233"), Role: entity.RoleColleague,
	}))
	require.NoError(t, users.CreateRegistered(ctx, &entity.RegisteredUser{
		TelegramID: 2, FirstName: "Борис", Email: "boris@example.com",
		Phone: strPtr("+78883334455"), Role: entity.RoleColleague,
	}))

	found, total, pages, err := uc.SearchPage(ctx, "999", 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, 1, pages)
	require.Len(t, found, 1)
	require.Equal(t, "Анна", found[0].FirstName)
}

func TestBroadcastCountsDeliveries(t *testing.T) {
	t.Parallel()

	uc, users := newAdminFixture(t, 3)
	ctx := context.Background()
	for i := int64(1); i <= 4; i++ {
		require.NoError(t, users.CreateRegistered(ctx, &entity.RegisteredUser{
			TelegramID: i,
			FirstName:  "Игорь",
			Email:      fmt.Sprintf("u%d@example.com", i),
			Role:       entity.RoleColleague,
		}))
	}

	var delivered int64
	sent, failed, err := uc.Broadcast(ctx, func(telegramID int64) error {
		if telegramID == 3 {
			return errors.New("blocked by user")
		}
		atomic.AddInt64(&delivered, 1)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, sent)
	require.Equal(t, 1, failed)
	require.EqualValues(t, 3, delivered)
}

func TestBroadcastWithoutTargets(t *testing.T) {
	t.Parallel()

	uc, _ := newAdminFixture(t, 3)
	sent, failed, err := uc.Broadcast(context.Background(), func(int64) error { return nil })
	require.NoError(t, err)
	require.Zero(t, sent)
	require.Zero(t, failed)
}
