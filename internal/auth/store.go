// Package auth stores per-session OAuth credentials in Redis. The browser
// holds only an opaque session id; tokens never leave the server.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"

	"github.com/tubewarden/tubewarden/internal/domain"
	"github.com/tubewarden/tubewarden/internal/logger"
)

const sessionKeyPrefix = "session:"

// Store persists OAuth tokens keyed by session id with a TTL.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewStore creates a session store backed by the given Redis client.
func NewStore(rdb *redis.Client, ttl time.Duration, log logger.Logger) *Store {
	return &Store{rdb: rdb, ttl: ttl, logger: log}
}

// CreateSession stores the token under a fresh session id and returns the id.
func (s *Store) CreateSession(ctx context.Context, tok *oauth2.Token) (string, error) {
	sessionID := uuid.NewString()
	if err := s.SaveToken(ctx, sessionID, tok); err != nil {
		return "", err
	}
	s.logger.Info("session created", logger.String("session_id", sessionID))
	return sessionID, nil
}

// SaveToken writes the token for an existing session, resetting its TTL.
// Called again after the OAuth client refreshes an access token.
func (s *Store) SaveToken(ctx context.Context, sessionID string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+sessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Token loads the stored token for a session. A missing or expired session
// yields domain.ErrAuthExpired.
func (s *Store) Token(ctx context.Context, sessionID string) (*oauth2.Token, error) {
	if sessionID == "" {
		return nil, domain.ErrAuthExpired
	}

	data, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrAuthExpired
	}
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("unmarshal token: %w", err)
	}
	return &tok, nil
}

// Delete removes a session. Used on logout and when the platform reports the
// credentials invalid.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Ping verifies Redis connectivity for health checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
