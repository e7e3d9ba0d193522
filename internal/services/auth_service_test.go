package services

import (
	"context"
	"testing"
	"time"

	"billfold/internal/core"
	"billfold/internal/ledger/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T) (*AuthService, *memory.Store) {
	t.Helper()
	store := memory.New()
	return NewAuthService(store, store, time.Hour), store
}

func TestRegisterThenLogin(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	u, err := auth.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "pw1", u.PasswordHash, "password must not be stored in the clear")

	token, got, err := auth.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, u.ID, got.ID)

	// The same credentials always resolve to the same user id.
	_, again, err := auth.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, core.ErrInvalidCredentials)

	_, _, err = auth.Login(ctx, "nobody", "pw1")
	assert.ErrorIs(t, err, core.ErrInvalidCredentials)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	// Duplicate regardless of password.
	_, err = auth.Register(ctx, "alice", "completely-different")
	assert.ErrorIs(t, err, core.ErrDuplicateUsername)
}

func TestRegisterRejectsEmptyInput(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "  ", "pw")
	assert.ErrorIs(t, err, core.ErrEmptyUsername)

	_, err = auth.Register(ctx, "alice", "")
	assert.ErrorIs(t, err, core.ErrEmptyPassword)
}

func TestSessionLifecycle(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	u, err := auth.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	// Registration does not log the user in; there is no token yet.
	token, _, err := auth.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	got, err := auth.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	require.NoError(t, auth.Logout(ctx, token))
	_, err = auth.Resolve(ctx, token)
	assert.ErrorIs(t, err, core.ErrSessionNotFound)

	// Logging out twice is harmless.
	assert.NoError(t, auth.Logout(ctx, token))
}
