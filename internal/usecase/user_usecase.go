package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/yourusername/carpet-retail-bot/config"
	"github.com/yourusername/carpet-retail-bot/internal/domain/apperr"
	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
	"github.com/yourusername/carpet-retail-bot/internal/domain/repository"
)

// StartAction tells the delivery layer which screen /start opens.
type StartAction int

const (
	// ActionShowAdminPanel for ids on the admin list.
	ActionShowAdminPanel StartAction = iota
	// ActionShowBannedNotice for blocked identities.
	ActionShowBannedNotice
	// ActionShowMainMenu for approved users.
	ActionShowMainMenu
	// ActionShowPendingNotice while the application awaits review.
	ActionShowPendingNotice
	// ActionOfferRegistration for identities the bot has never seen.
	ActionOfferRegistration
)

// Refusal messages of the registration guard.
const (
	guardAlreadyRegistered = "Пользователь уже зарегистрирован"
	guardAlreadyPending    = "Заявка на регистрацию уже отправлена"
	guardBanned            = "Пользователь заблокирован"
)

// UserUseCase serves the user-facing identity flow: /start triage and
// registration applications.
type UserUseCase interface {
	// Classify decides which screen /start opens for the caller. The
	// admin list wins over everything stored in the database; after that
	// banned beats registered beats pending. For approved users the
	// stored record comes back too, so the greeting can use the name
	// they registered with.
	Classify(ctx context.Context, telegramID int64) (StartAction, *entity.RegisteredUser, error)

	// SubmitRegistration stores the application. A non-empty refusal
	// names the user set the identity already occupies.
	SubmitRegistration(ctx context.Context, application *entity.PendingUser) (string, error)
}

type userUseCase struct {
	users repository.UserRepository
	bot   config.BotConfig
	log   zerolog.Logger
}

// NewUserUseCase builds the identity service.
func NewUserUseCase(users repository.UserRepository, bot config.BotConfig, logg zerolog.Logger) UserUseCase {
	return &userUseCase{
		users: users,
		bot:   bot,
		log:   logg.With().Str("component", "users").Logger(),
	}
}

func (u *userUseCase) Classify(ctx context.Context, telegramID int64) (StartAction, *entity.RegisteredUser, error) {
	if u.bot.IsAdmin(telegramID) {
		return ActionShowAdminPanel, nil, nil
	}

	// The three membership lookups are independent reads.
	var (
		wg         sync.WaitGroup
		banned     *entity.BannedUser
		registered *entity.RegisteredUser
		pending    *entity.PendingUser

		bannedErr, registeredErr, pendingErr error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		banned, bannedErr = u.users.GetBanned(ctx, telegramID)
	}()
	go func() {
		defer wg.Done()
		registered, registeredErr = u.users.GetRegistered(ctx, telegramID)
	}()
	go func() {
		defer wg.Done()
		pending, pendingErr = u.users.GetPending(ctx, telegramID)
	}()
	wg.Wait()

	if err := multierr.Combine(bannedErr, registeredErr, pendingErr); err != nil {
		return 0, nil, fmt.Errorf("classifying user %d: %w", telegramID, err)
	}

	switch {
	case banned != nil:
		return ActionShowBannedNotice, nil, nil
	case registered != nil:
		return ActionShowMainMenu, registered, nil
	case pending != nil:
		return ActionShowPendingNotice, nil, nil
	}
	return ActionOfferRegistration, nil, nil
}

func (u *userUseCase) SubmitRegistration(ctx context.Context, application *entity.PendingUser) (string, error) {
	refusal, err := u.registrationGuard(ctx, application.TelegramID)
	if err != nil || refusal != "" {
		return refusal, err
	}

	if err := u.users.CreatePending(ctx, application); err != nil {
		// Lost a race with an identical application.
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return guardAlreadyPending, nil
		}
		return "", fmt.Errorf("saving application of %d: %w", application.TelegramID, err)
	}

	u.log.Info().Int64("telegram_id", application.TelegramID).Msg("registration application saved")
	return "", nil
}

// registrationGuard reports which user set already holds the identity,
// checking in the same order the refusals are phrased in.
func (u *userUseCase) registrationGuard(ctx context.Context, telegramID int64) (string, error) {
	registered, err := u.users.GetRegistered(ctx, telegramID)
	if err != nil {
		return "", err
	}
	if registered != nil {
		return guardAlreadyRegistered, nil
	}

	pending, err := u.users.GetPending(ctx, telegramID)
	if err != nil {
		return "", err
	}
	if pending != nil {
		return guardAlreadyPending, nil
	}

	banned, err := u.users.GetBanned(ctx, telegramID)
	if err != nil {
		return "", err
	}
	if banned != nil {
		return guardBanned, nil
	}
	return "", nil
}
