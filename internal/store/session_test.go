package store

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edupro-go-api/internal/models"
	"github.com/noah-isme/edupro-go-api/internal/storage"
)

func TestLoginSuccess(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.Login(ctx, "student", "student123")
	require.NoError(t, err)
	require.Equal(t, int64(2), user.ID)
	require.NotNil(t, user.LastLogin)

	current, ok := s.CurrentUser()
	require.True(t, ok)
	require.Equal(t, int64(2), current.ID)
	require.Equal(t, 1, s.ActiveSessionCount())

	logs := s.ListSystemLogs(1, models.ActionLogin)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].UserID)
	require.Equal(t, int64(2), *logs[0].UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "student", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// The failure leaves the account untouched and records an anonymous
	// audit entry.
	user, err := s.GetUser(2)
	require.NoError(t, err)
	require.Nil(t, user.LastLogin)

	logs := s.ListSystemLogs(1, models.ActionLoginFailed)
	require.Len(t, logs, 1)
	require.Nil(t, logs[0].UserID)

	_, ok := s.CurrentUser()
	require.False(t, ok)
}

func TestLoginUnknownUsername(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Login(context.Background(), "ghost", "whatever123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpdateUser(ctx, 2, UserInput{
		Username: "student", Email: "student@ferretto.edu", Name: "John Student",
		Role: models.RoleStudent, CourseID: courseID(101), Status: models.UserStatusDisabled,
	})
	require.NoError(t, err)

	_, err = s.Login(ctx, "student", "student123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutClearsIdentity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "admin", "admin12345")
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))

	_, ok := s.CurrentUser()
	require.False(t, ok)
	require.Equal(t, 0, s.ActiveSessionCount())

	// Logging out again is a no-op.
	require.NoError(t, s.Logout(ctx))
}

func TestExpireIfIdle(t *testing.T) {
	backend := newMemStorage()
	ctx := context.Background()

	current := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	s, err := Open(ctx, backend, zerolog.Nop(), Options{
		SeedDemoData: true,
		Now:          func() time.Time { return current },
	})
	require.NoError(t, err)

	_, err = s.Login(ctx, "student", "student123")
	require.NoError(t, err)
	require.NoError(t, s.TouchActivity(ctx))

	// Within the timeout nothing happens.
	expired, err := s.ExpireIfIdle(ctx, (30 * time.Minute).Milliseconds())
	require.NoError(t, err)
	require.False(t, expired)

	// Past the timeout the session is closed and audited.
	current = current.Add(31 * time.Minute)
	expired, err = s.ExpireIfIdle(ctx, (30 * time.Minute).Milliseconds())
	require.NoError(t, err)
	require.True(t, expired)

	_, ok := s.CurrentUser()
	require.False(t, ok)
	logs := s.ListSystemLogs(1, models.ActionSessionExpired)
	require.Len(t, logs, 1)
}

func TestExpireIfIdleWithoutSession(t *testing.T) {
	s := newTestStore(t)

	expired, err := s.ExpireIfIdle(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, expired)
}

func TestTouchActivityWritesEpochMillis(t *testing.T) {
	backend := newMemStorage()
	ctx := context.Background()

	fixed := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	s, err := Open(ctx, backend, zerolog.Nop(), Options{
		SeedDemoData: true,
		Now:          func() time.Time { return fixed },
	})
	require.NoError(t, err)

	require.NoError(t, s.TouchActivity(ctx))

	raw, err := backend.Get(ctx, storage.KeyLastActivity)
	require.NoError(t, err)
	require.Equal(t, strconv.FormatInt(fixed.UnixMilli(), 10), string(raw))
}
