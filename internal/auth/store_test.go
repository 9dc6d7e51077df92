//nolint:testpackage // Testing internal store requires same package access
package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"

	"github.com/tubewarden/tubewarden/internal/domain"
	"github.com/tubewarden/tubewarden/internal/logger"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewStore(rdb, time.Hour, logger.NewNop()), mr
}

func TestStore_CreateSessionAndLoadToken(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	tok := &oauth2.Token{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		TokenType:    "Bearer",
	}

	sessionID, err := store.CreateSession(ctx, tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sessionID == "" {
		t.Fatal("expected a session id")
	}

	got, err := store.Token(ctx, sessionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AccessToken != tok.AccessToken || got.RefreshToken != tok.RefreshToken {
		t.Errorf("roundtrip mismatch: got %+v", got)
	}
}

func TestStore_Token_UnknownSession(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Token(context.Background(), "no-such-session")
	if !errors.Is(err, domain.ErrAuthExpired) {
		t.Errorf("expected auth expired, got %v", err)
	}

	_, err = store.Token(context.Background(), "")
	if !errors.Is(err, domain.ErrAuthExpired) {
		t.Errorf("expected auth expired for empty id, got %v", err)
	}
}

func TestStore_Token_ExpiredSession(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sessionID, err := store.CreateSession(ctx, &oauth2.Token{AccessToken: "access-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	_, err = store.Token(ctx, sessionID)
	if !errors.Is(err, domain.ErrAuthExpired) {
		t.Errorf("expected auth expired after TTL, got %v", err)
	}
}

func TestStore_SaveToken_ResetsTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sessionID, err := store.CreateSession(ctx, &oauth2.Token{AccessToken: "access-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(30 * time.Minute)
	if err := store.SaveToken(ctx, sessionID, &oauth2.Token{AccessToken: "access-2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mr.FastForward(45 * time.Minute)

	got, err := store.Token(ctx, sessionID)
	if err != nil {
		t.Fatalf("refreshed session should outlive original TTL: %v", err)
	}
	if got.AccessToken != "access-2" {
		t.Errorf("access token: got %s, want access-2", got.AccessToken)
	}
}

func TestStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sessionID, err := store.CreateSession(ctx, &oauth2.Token{AccessToken: "access-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Delete(ctx, sessionID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Token(ctx, sessionID); !errors.Is(err, domain.ErrAuthExpired) {
		t.Errorf("expected auth expired after delete, got %v", err)
	}
}
