package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/domain/repository"
)

// AuthUseCase login/logout va joriy sessiya
type AuthUseCase interface {
	// Login username va parolni tekshirib sessiya ochish
	Login(ctx context.Context, username, password string) (entity.Session, error)

	// Logout sessiyani yopish
	Logout(ctx context.Context) error

	// Current joriy sessiya (hech kim kirmagan bo'lsa nol qiymat)
	Current() entity.Session

	// IsLoggedIn sessiya ochiqligini tekshirish
	IsLoggedIn() bool
}

type authUseCase struct {
	accounts repository.AccountRepository
	activity *activityLogger
	logger   *slog.Logger
	metrics  MetricsRecorder
	now      func() time.Time
	session  entity.Session
}

// NewAuthUseCase yangi AuthUseCase yaratish
func NewAuthUseCase(
	accounts repository.AccountRepository,
	activityRepo repository.ActivityRepository,
	opts ...Option,
) AuthUseCase {
	o := newOptions(opts)
	return &authUseCase{
		accounts: accounts,
		activity: newActivityLogger(activityRepo, o),
		logger:   o.logger,
		metrics:  o.metrics,
		now:      o.now,
	}
}

// Login ikkala maydon aniq mos kelsa sessiya ochiladi
func (u *authUseCase) Login(ctx context.Context, username, password string) (entity.Session, error) {
	account, err := u.accounts.Find(ctx, username)
	if err != nil || account.Password != password {
		u.metrics.Operation("login", outcomeOf(ErrInvalidCredentials))
		return entity.Session{}, ErrInvalidCredentials
	}

	u.session = entity.Session{
		ID:        uuid.New().String(),
		Username:  account.Username,
		Role:      account.Role,
		LoginTime: u.now(),
	}
	u.logger.InfoContext(ctx, "user logged in", "user", account.Username, "role", account.Role.String(), "session", u.session.ID)

	u.activity.record(ctx, u.session.Username, "Logged in")
	u.metrics.Operation("login", outcomeOf(nil))
	return u.session, nil
}

// Logout jurnalga yozib, keyin sessiyani tozalash
func (u *authUseCase) Logout(ctx context.Context) error {
	if !u.session.Active() {
		return fmt.Errorf("logout: %w", ErrNotLoggedIn)
	}

	u.activity.record(ctx, u.session.Username, "Logged out")
	u.logger.InfoContext(ctx, "user logged out", "user", u.session.Username, "session", u.session.ID)
	u.session = entity.Session{}
	u.metrics.Operation("logout", outcomeOf(nil))
	return nil
}

// Current joriy sessiya
func (u *authUseCase) Current() entity.Session {
	return u.session
}

// IsLoggedIn sessiya ochiqligini tekshirish
func (u *authUseCase) IsLoggedIn() bool {
	return u.session.Active()
}
