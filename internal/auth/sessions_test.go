package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/protrack-app/protrack/internal/shared"
)

func newTestSessions(t *testing.T) (*Sessions, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessions(rdb, time.Hour), mr
}

func TestSessionRoundTrip(t *testing.T) {
	sessions, _ := newTestSessions(t)
	ctx := context.Background()

	id := &shared.Identity{
		UserID:      uuid.New(),
		TenantID:    uuid.New(),
		Name:        "Casey Morgan",
		Email:       "casey@example.com",
		Role:        "manager",
		Permissions: map[string]string{"labor": "write", "invoices": "read"},
	}

	token, err := sessions.Create(ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := sessions.Get(ctx, token)
	require.NoError(t, err)
	require.Equal(t, id.UserID, got.UserID)
	require.Equal(t, id.TenantID, got.TenantID)
	require.Equal(t, "write", got.Permissions["labor"])
}

func TestSessionExpiry(t *testing.T) {
	sessions, mr := newTestSessions(t)
	ctx := context.Background()

	token, err := sessions.Create(ctx, &shared.Identity{UserID: uuid.New()})
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = sessions.Get(ctx, token)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionDestroy(t *testing.T) {
	sessions, _ := newTestSessions(t)
	ctx := context.Background()

	token, err := sessions.Create(ctx, &shared.Identity{UserID: uuid.New()})
	require.NoError(t, err)
	require.NoError(t, sessions.Destroy(ctx, token))

	_, err = sessions.Get(ctx, token)
	require.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, sessions.Destroy(ctx, "unknown-token"))
}

func TestUnknownTokenRejected(t *testing.T) {
	sessions, _ := newTestSessions(t)

	_, err := sessions.Get(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, ErrSessionNotFound)
}
