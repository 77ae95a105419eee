package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/carpet-retail-bot/internal/domain/apperr"
	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
	"github.com/yourusername/carpet-retail-bot/internal/domain/repository"
)

func TestUserRepoGettersMissOnEmpty(t *testing.T) {
	t.Parallel()

	repo := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	registered, err := repo.GetRegistered(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, registered)

	pending, err := repo.GetPending(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, pending)

	banned, err := repo.GetBanned(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, banned)
}

func TestUserRepoRoundtrip(t *testing.T) {
	t.Parallel()

	repo := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreatePending(ctx, &entity.PendingUser{
		TelegramID: 100,
		Username:   strPtr("ivan"),
		FirstName:  "Иван",
		LastName:   strPtr("Иванов"),
		Email:      "ivan@example.com",
		Phone:      strPtr("+79990001122"),
		FromWhom:   "От Марии",
	}))

	pending, err := repo.GetPending(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, pending)
	require.Equal(t, "Иван Иванов", pending.FullName())
	require.Equal(t, "От Марии", pending.FromWhom)

	require.NoError(t, repo.DeletePending(ctx, 100))
	require.NoError(t, repo.CreateRegistered(ctx, &entity.RegisteredUser{
		TelegramID: 100,
		Username:   pending.Username,
		FirstName:  pending.FirstName,
		LastName:   pending.LastName,
		Email:      pending.Email,
		Phone:      pending.Phone,
		Role:       entity.RoleColleague,
	}))

	gone, err := repo.GetPending(ctx, 100)
	require.NoError(t, err)
	require.Nil(t, gone)

	registered, err := repo.GetRegistered(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, registered)
	require.Equal(t, entity.RoleColleague, registered.Role)
}

func TestUserRepoCreatePendingDuplicate(t *testing.T) {
	t.Parallel()

	repo := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	user := entity.PendingUser{TelegramID: 7, FirstName: "Анна", Email: "a@b.ru", FromWhom: "Сайт"}
	require.NoError(t, repo.CreatePending(ctx, &user))

	dup := entity.PendingUser{TelegramID: 7, FirstName: "Анна", Email: "a@b.ru", FromWhom: "Сайт"}
	err := repo.CreatePending(ctx, &dup)
	require.ErrorIs(t, err, apperr.ErrAlreadyExists)
}

func TestUserRepoListPendingPagination(t *testing.T) {
	t.Parallel()

	repo := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, repo.CreatePending(ctx, &entity.PendingUser{
			TelegramID: i,
			FirstName:  "Гость",
			Email:      "guest@example.com",
			FromWhom:   "Сайт",
		}))
	}

	page, total, err := repo.ListPending(ctx, 0, 3)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, page, 3)

	rest, total, err := repo.ListPending(ctx, 3, 3)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, rest, 2)
}

func TestUserRepoSearchRegistered(t *testing.T) {
	t.Parallel()

	repo := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	users := []entity.RegisteredUser{
		{TelegramID: 1, FirstName: "Борис", LastName: strPtr("Петров"), Email: "boris@shop.ru", Phone: strPtr("+79991112233"), Username: strPtr("bpetrov"), Role: entity.RoleColleague},
		{TelegramID: 2, FirstName: "Анна", LastName: strPtr("Смирнова"), Email: "anna@design.com", Phone: strPtr("+79994445566"), Username: strPtr("anna_s"), Role: entity.RoleDesigner},
		{TelegramID: 3, FirstName: "Виктор", LastName: strPtr("Петровский"), Email: "v@mail.ru", Phone: strPtr("+78120001122"), Username: strPtr("victor"), Role: entity.RoleColleague},
	}
	for i := range users {
		require.NoError(t, repo.CreateRegistered(ctx, &users[i]))
	}

	// Phone substring.
	byPhone, total, err := repo.SearchRegistered(ctx, "999", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, byPhone, 2)
	// Ordered by first name: Анна before Борис.
	require.Equal(t, "Анна", byPhone[0].FirstName)
	require.Equal(t, "Борис", byPhone[1].FirstName)

	// Case-insensitive username match.
	byUsername, total, err := repo.SearchRegistered(ctx, "ANNA", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "anna@design.com", byUsername[0].Email)

	// Last-name substring hits both Петров and Петровский.
	byLastName, total, err := repo.SearchRegistered(ctx, "Петров", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, byLastName, 2)
}

func TestUserRepoListRegisteredIDs(t *testing.T) {
	t.Parallel()

	repo := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	for _, id := range []int64{30, 10, 20} {
		require.NoError(t, repo.CreateRegistered(ctx, &entity.RegisteredUser{
			TelegramID: id,
			FirstName:  "Гость",
			Email:      "guest@example.com",
			Role:       entity.RoleUndefined,
		}))
	}

	ids, err := repo.ListRegisteredIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{10, 20, 30}, ids)
}

func TestUserRepoInTxMovesUserAtomically(t *testing.T) {
	t.Parallel()

	repo := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreatePending(ctx, &entity.PendingUser{
		TelegramID: 55,
		FirstName:  "Олег",
		Email:      "oleg@example.com",
		FromWhom:   "Сайт",
	}))

	err := repo.InTx(ctx, func(tx repository.UserRepository) error {
		if err := tx.DeletePending(ctx, 55); err != nil {
			return err
		}
		return tx.CreateRegistered(ctx, &entity.RegisteredUser{
			TelegramID: 55,
			FirstName:  "Олег",
			Email:      "oleg@example.com",
			Role:       entity.RoleColleague,
		})
	})
	require.NoError(t, err)

	pending, err := repo.GetPending(ctx, 55)
	require.NoError(t, err)
	require.Nil(t, pending)

	registered, err := repo.GetRegistered(ctx, 55)
	require.NoError(t, err)
	require.NotNil(t, registered)
}
