//nolint:testpackage // Testing the unexported token source requires same package access
package youtube

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"

	"github.com/tubewarden/tubewarden/internal/auth"
	"github.com/tubewarden/tubewarden/internal/logger"
)

type staticTokenSource struct {
	tok *oauth2.Token
}

func (s *staticTokenSource) Token() (*oauth2.Token, error) {
	return s.tok, nil
}

func newTestStore(t *testing.T) *auth.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return auth.NewStore(rdb, time.Hour, logger.NewNop())
}

func TestSavingTokenSource_ConcurrentRefresh(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sessionID, err := store.CreateSession(ctx, &oauth2.Token{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		Expiry:       time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	refreshed := &oauth2.Token{
		AccessToken:  "access-2",
		RefreshToken: "refresh-1",
		Expiry:       time.Now().Add(2 * time.Hour),
	}
	ts := &savingTokenSource{
		base:       &staticTokenSource{tok: refreshed},
		store:      store,
		sessionID:  sessionID,
		lastAccess: "access-1",
	}

	// One token source serves all of a session's fan-out calls.
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, tokErr := ts.Token()
			if tokErr != nil {
				t.Errorf("unexpected error: %v", tokErr)
				return
			}
			if tok.AccessToken != "access-2" {
				t.Errorf("access token: got %q, want %q", tok.AccessToken, "access-2")
			}
		}()
	}
	wg.Wait()

	saved, err := store.Token(ctx, sessionID)
	if err != nil {
		t.Fatalf("failed to load saved token: %v", err)
	}
	if saved.AccessToken != "access-2" {
		t.Errorf("persisted access token: got %q, want %q", saved.AccessToken, "access-2")
	}
}

func TestSavingTokenSource_UnchangedTokenIsNotResaved(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sessionID, err := store.CreateSession(ctx, &oauth2.Token{
		AccessToken: "access-1",
		Expiry:      time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if delErr := store.Delete(ctx, sessionID); delErr != nil {
		t.Fatalf("failed to delete session: %v", delErr)
	}

	ts := &savingTokenSource{
		base: &staticTokenSource{tok: &oauth2.Token{
			AccessToken: "access-1",
			Expiry:      time.Now().Add(time.Hour),
		}},
		store:      store,
		sessionID:  sessionID,
		lastAccess: "access-1",
	}

	if _, tokErr := ts.Token(); tokErr != nil {
		t.Fatalf("unexpected error: %v", tokErr)
	}

	// The session was removed above; an unchanged token must not recreate it.
	if _, loadErr := store.Token(ctx, sessionID); loadErr == nil {
		t.Error("expected deleted session to stay absent")
	}
}
