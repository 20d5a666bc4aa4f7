package authstate_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelterops/authkit/core/authstate"
	"github.com/shelterops/authkit/core/session"
)

func mintToken(t *testing.T, username string, exp time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":      uuid.NewString(),
		"username": username,
		"role":     "volunteer",
		"iat":      time.Now().Unix(),
		"exp":      exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func sessionWithToken(accessToken string) session.Session {
	return session.Session{
		AccessToken:  accessToken,
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    3600,
		User: session.User{
			ID:       uuid.New(),
			Username: "alice",
			Email:    "alice@shelter.test",
			Role:     session.RoleVolunteer,
			Status:   session.StatusActive,
		},
	}
}

func TestStateLoginLogout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewStore(session.NewMemoryStorage())
	state := authstate.New(store)

	assert.False(t, state.IsAuthenticated())
	assert.Nil(t, state.CurrentUser())

	changes := state.Subscribe()

	sess := sessionWithToken(mintToken(t, "alice", time.Now().Add(time.Hour)))
	require.NoError(t, store.Save(ctx, sess))

	assert.True(t, state.IsAuthenticated())
	user := state.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)

	change := <-changes
	assert.True(t, change.Authenticated)
	assert.Equal(t, authstate.ReasonLogin, change.Reason)
	require.NotNil(t, change.User)
	assert.Equal(t, "alice", change.User.Username)

	require.NoError(t, store.Clear(ctx))

	assert.False(t, state.IsAuthenticated())
	assert.Nil(t, state.CurrentUser())

	change = <-changes
	assert.False(t, change.Authenticated)
	assert.Nil(t, change.User)
	assert.Equal(t, authstate.ReasonLogout, change.Reason)
}

func TestStateRefreshReason(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewStore(session.NewMemoryStorage())
	state := authstate.New(store)

	require.NoError(t, store.Save(ctx, sessionWithToken(mintToken(t, "alice", time.Now().Add(time.Hour)))))

	changes := state.Subscribe()
	require.NoError(t, store.Save(ctx, sessionWithToken(mintToken(t, "alice", time.Now().Add(2*time.Hour)))))

	change := <-changes
	assert.True(t, change.Authenticated)
	assert.Equal(t, authstate.ReasonRefresh, change.Reason)
}

func TestStateExpiryIsLive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewStore(session.NewMemoryStorage())

	now := time.Now()
	clock := &now
	state := authstate.New(store, authstate.WithClock(func() time.Time { return *clock }))

	require.NoError(t, store.Save(ctx, sessionWithToken(mintToken(t, "alice", now.Add(time.Minute)))))
	assert.True(t, state.IsAuthenticated())

	// Advance past expiry without touching the store: the signal must flip.
	later := now.Add(2 * time.Minute)
	clock = &later
	assert.False(t, state.IsAuthenticated())
	assert.Nil(t, state.CurrentUser())
}

func TestStateMalformedTokenFailsClosed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewStore(session.NewMemoryStorage())
	state := authstate.New(store)

	require.NoError(t, store.Save(ctx, sessionWithToken("garbage")))

	assert.False(t, state.IsAuthenticated())
	assert.Nil(t, state.CurrentUser())
}

func TestStateInit(t *testing.T) {
	t.Parallel()

	t.Run("empty storage starts unauthenticated", func(t *testing.T) {
		t.Parallel()

		store := session.NewStore(session.NewMemoryStorage())
		state := authstate.New(store)

		require.NoError(t, state.Init(context.Background()))
		assert.False(t, state.IsAuthenticated())
	})

	t.Run("valid persisted session survives restart", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		storage := session.NewMemoryStorage()

		sess := sessionWithToken(mintToken(t, "alice", time.Now().Add(time.Hour)))
		require.NoError(t, session.NewStore(storage).Save(ctx, sess))

		store := session.NewStore(storage)
		state := authstate.New(store)
		require.NoError(t, state.Init(ctx))

		assert.True(t, state.IsAuthenticated())
		require.NotNil(t, state.CurrentUser())
		assert.Equal(t, "alice", state.CurrentUser().Username)
	})

	t.Run("expired persisted session is cleared", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		storage := session.NewMemoryStorage()

		sess := sessionWithToken(mintToken(t, "alice", time.Now().Add(-time.Hour)))
		require.NoError(t, session.NewStore(storage).Save(ctx, sess))

		store := session.NewStore(storage)
		state := authstate.New(store)
		changes := state.Subscribe()

		require.NoError(t, state.Init(ctx))

		assert.False(t, state.IsAuthenticated())
		_, err := storage.Get(ctx)
		assert.ErrorIs(t, err, session.ErrNotFound, "expired session must not survive startup")

		change := <-changes
		assert.False(t, change.Authenticated)
		assert.Equal(t, authstate.ReasonSessionExpired, change.Reason)
	})
}

func TestStateForceLogout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := session.NewMemoryStorage()
	store := session.NewStore(storage)
	state := authstate.New(store)

	require.NoError(t, store.Save(ctx, sessionWithToken(mintToken(t, "alice", time.Now().Add(time.Hour)))))

	changes := state.Subscribe()
	require.NoError(t, state.ForceLogout(ctx))

	assert.False(t, state.IsAuthenticated())
	_, err := storage.Get(ctx)
	assert.ErrorIs(t, err, session.ErrNotFound)

	change := <-changes
	assert.False(t, change.Authenticated)
	assert.Equal(t, authstate.ReasonRefreshFailed, change.Reason)
}

func TestStateUnsubscribe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewStore(session.NewMemoryStorage())
	state := authstate.New(store)

	changes := state.Subscribe()
	state.Unsubscribe(changes)

	_, open := <-changes
	assert.False(t, open, "unsubscribed channel must be closed")

	// Mutations after unsubscribe must not panic.
	require.NoError(t, store.Save(ctx, sessionWithToken(mintToken(t, "alice", time.Now().Add(time.Hour)))))
}
