// Package auth issues and verifies bearer session tokens backed by Redis.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/protrack-app/protrack/internal/shared"
)

// ErrSessionNotFound occurs when a token is missing, expired or revoked.
var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "session:"

// Sessions stores the identity snapshot for each live token. A permission
// change takes effect at next login, matching the snapshot-at-login model.
type Sessions struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewSessions constructs a session store.
func NewSessions(rdb *redis.Client, ttl time.Duration) *Sessions {
	return &Sessions{redis: rdb, ttl: ttl}
}

// Create issues a token for the identity.
func (s *Sessions) Create(ctx context.Context, id *shared.Identity) (string, error) {
	token := uuid.NewString()
	payload, err := json.Marshal(id)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKeyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get resolves a token to its identity and slides the expiry forward.
func (s *Sessions) Get(ctx context.Context, token string) (*shared.Identity, error) {
	payload, err := s.redis.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var id shared.Identity
	if err := json.Unmarshal(payload, &id); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	_ = s.redis.Expire(ctx, sessionKeyPrefix+token, s.ttl).Err()
	return &id, nil
}

// Destroy revokes a token. Revoking an unknown token is not an error.
func (s *Sessions) Destroy(ctx context.Context, token string) error {
	return s.redis.Del(ctx, sessionKeyPrefix+token).Err()
}
