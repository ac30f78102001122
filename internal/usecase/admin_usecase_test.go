package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/infrastructure/storage"
)

func newTestAuth() (AuthUseCase, *storage.MemoryActivityRepository, *fakeMetrics) {
	activity := storage.NewMemoryActivityRepository()
	m := &fakeMetrics{}
	auth := NewAuthUseCase(
		storage.NewMemoryAccountRepository(storage.DefaultAccounts()...),
		activity,
		WithLogger(discardLogger()),
		WithMetrics(m),
		WithClock(func() time.Time { return fixedTime }),
	)
	return auth, activity, m
}

func Test_AuthUseCase_Login(t *testing.T) {
	testCases := []struct {
		name         string
		username     string
		password     string
		expectedRole entity.Role
		expectErr    bool
	}{
		{name: "admin", username: "admin", password: "admin123", expectedRole: entity.RoleAdmin},
		{name: "staff", username: "staff", password: "staff123", expectedRole: entity.RoleStaff},
		{name: "wrong password", username: "admin", password: "admin", expectErr: true},
		{name: "unknown user", username: "guest", password: "admin123", expectErr: true},
		{name: "case sensitive", username: "Admin", password: "admin123", expectErr: true},
		{name: "empty", username: "", password: "", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			auth, activity, _ := newTestAuth()
			// when
			session, err := auth.Login(context.Background(), tc.username, tc.password)
			// then
			if tc.expectErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.False(t, auth.IsLoggedIn())
				assert.Empty(t, activity.Entries())
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, session.ID)
			assert.Equal(t, tc.username, session.Username)
			assert.Equal(t, tc.expectedRole, session.Role)
			assert.Equal(t, fixedTime, session.LoginTime)
			assert.Equal(t, session, auth.Current())
			assert.Equal(t, []string{"Logged in"}, activity.Actions())
		})
	}
}

func Test_AuthUseCase_Logout(t *testing.T) {
	// given
	ctx := context.Background()
	auth, activity, m := newTestAuth()
	_, err := auth.Login(ctx, "staff", "staff123")
	require.NoError(t, err)
	// when
	err = auth.Logout(ctx)
	// then
	require.NoError(t, err)
	assert.False(t, auth.IsLoggedIn())
	assert.Equal(t, entity.Session{}, auth.Current())

	entries := activity.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "staff", entries[1].Username, "logout is attributed before the session is cleared")
	assert.Equal(t, "Logged out", entries[1].Action)
	assert.Equal(t, []string{"login:ok", "logout:ok"}, m.ops)
}

func Test_AuthUseCase_LogoutWithoutSession(t *testing.T) {
	auth, activity, _ := newTestAuth()

	err := auth.Logout(context.Background())

	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Empty(t, activity.Entries())
}

func Test_AuthUseCase_NewSessionPerLogin(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newTestAuth()

	first, err := auth.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.NoError(t, auth.Logout(ctx))
	second, err := auth.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func Test_AuthUseCase_AsSessionProvider(t *testing.T) {
	// given
	ctx := context.Background()
	auth, activity, _ := newTestAuth()
	catalog, err := NewProductUseCase(ctx, storage.NewMemoryProductRepository(), activity, auth,
		WithLogger(discardLogger()), WithClock(func() time.Time { return fixedTime }))
	require.NoError(t, err)
	_, err = auth.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	// when
	_, err = catalog.Add(ctx, 1, "Steel", 50, 12.5, entity.RawMaterial)
	// then
	require.NoError(t, err)
	entries := activity.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "[Mon Jan 15 14:30:00 2024] User: admin | Action: Added product: Steel (ID: 1)", entries[1].String())
}
