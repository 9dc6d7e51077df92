package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/tubewarden/tubewarden/internal/auth"
	"github.com/tubewarden/tubewarden/internal/config"
	"github.com/tubewarden/tubewarden/internal/domain"
	"github.com/tubewarden/tubewarden/internal/logger"
	"github.com/tubewarden/tubewarden/internal/platform"
)

// Factory builds per-session YouTube clients. No client is shared across
// sessions; each carries its own token source and rate limiter.
type Factory struct {
	conf   *oauth2.Config
	store  *auth.Store
	rps    int
	burst  int
	logger logger.Logger
}

// NewFactory creates a client factory.
func NewFactory(cfg config.GoogleConfig, store *auth.Store, log logger.Logger) *Factory {
	return &Factory{
		conf:   OAuthConfig(cfg),
		store:  store,
		rps:    cfg.RequestsPerSecond,
		burst:  cfg.Burst,
		logger: log,
	}
}

// ClientForSession builds an authenticated client for the session, or
// domain.ErrAuthExpired when the session holds no usable credentials.
func (f *Factory) ClientForSession(ctx context.Context, sessionID string) (platform.Client, error) {
	tok, err := f.store.Token(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ts := &savingTokenSource{
		base:       f.conf.TokenSource(ctx, tok),
		store:      f.store,
		sessionID:  sessionID,
		lastAccess: tok.AccessToken,
	}

	svc, err := yt.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &client{
		svc:       svc,
		limiter:   rate.NewLimiter(rate.Limit(f.rps), f.burst),
		store:     f.store,
		sessionID: sessionID,
		logger:    f.logger.With(logger.String("session_id", sessionID)),
	}, nil
}

// savingTokenSource persists refreshed access tokens back to the session
// store so later requests in the session reuse them. Token is called once
// per outgoing request, concurrently during batch fan-out, so the
// compare-and-save is guarded by a mutex.
type savingTokenSource struct {
	base      oauth2.TokenSource
	store     *auth.Store
	sessionID string

	mu         sync.Mutex
	lastAccess string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, domain.ErrAuthExpired
		}
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.lastAccess {
		s.lastAccess = tok.AccessToken
		// Best effort: a failed save only costs an extra refresh later.
		_ = s.store.SaveToken(context.Background(), s.sessionID, tok)
	}
	return tok, nil
}

// client implements platform.Client over the YouTube Data API.
type client struct {
	svc       *yt.Service
	limiter   *rate.Limiter
	store     *auth.Store
	sessionID string
	logger    logger.Logger
}

// ChannelID resolves the authenticated channel. Also serves as the
// credential check: an expired grant surfaces here as ErrAuthExpired.
func (c *client) ChannelID(ctx context.Context) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := c.svc.Channels.List([]string{"id"}).Mine(true).Context(ctx).Do()
	if err != nil {
		return "", c.mapError(ctx, err)
	}
	if len(resp.Items) == 0 {
		return "", domain.ValidationError("no channel found for authenticated account")
	}
	return resp.Items[0].Id, nil
}

func (c *client) ListThreads(ctx context.Context, channelID string, maxResults int64) ([]domain.Comment, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.CommentThreads.List([]string{"snippet"}).
		AllThreadsRelatedToChannelId(channelID).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, c.mapError(ctx, err)
	}

	comments := make([]domain.Comment, 0, len(resp.Items))
	for _, item := range resp.Items {
		comments = append(comments, threadToComment(item))
	}
	return comments, nil
}

func (c *client) GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Comments.List([]string{"id", "snippet"}).Id(id).Context(ctx).Do()
	if err != nil {
		return nil, c.mapError(ctx, err)
	}
	if len(resp.Items) == 0 {
		return nil, domain.ErrNotFound
	}
	return commentToDomain(resp.Items[0]), nil
}

func (c *client) DeleteComment(ctx context.Context, id string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if err := c.svc.Comments.Delete(id).Context(ctx).Do(); err != nil {
		return c.mapError(ctx, err)
	}
	return nil
}

func (c *client) InsertComment(ctx context.Context, req platform.InsertRequest) (*domain.Comment, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if req.ParentID != "" {
		comment, err := c.svc.Comments.Insert([]string{"snippet"}, &yt.Comment{
			Snippet: &yt.CommentSnippet{
				ParentId:     req.ParentID,
				TextOriginal: req.Text,
			},
		}).Context(ctx).Do()
		if err != nil {
			return nil, c.mapError(ctx, err)
		}
		return commentToDomain(comment), nil
	}

	thread, err := c.svc.CommentThreads.Insert([]string{"snippet"}, &yt.CommentThread{
		Snippet: &yt.CommentThreadSnippet{
			VideoId: req.VideoID,
			TopLevelComment: &yt.Comment{
				Snippet: &yt.CommentSnippet{TextOriginal: req.Text},
			},
		},
	}).Context(ctx).Do()
	if err != nil {
		return nil, c.mapError(ctx, err)
	}
	created := threadToComment(thread)
	return &created, nil
}

// mapError translates SDK errors into the domain taxonomy. Invalid
// credentials also tear down the stored session, matching the platform's
// "clear tokens and re-login" contract.
func (c *client) mapError(ctx context.Context, err error) error {
	if errors.Is(err, domain.ErrAuthExpired) {
		c.clearSession(ctx)
		return domain.ErrAuthExpired
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized:
			c.clearSession(ctx)
			return domain.ErrAuthExpired
		case http.StatusNotFound:
			return domain.ErrNotFound
		default:
			return &domain.UpstreamError{Code: gerr.Code, Message: gerr.Message}
		}
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		c.clearSession(ctx)
		return domain.ErrAuthExpired
	}

	return fmt.Errorf("youtube api: %w", err)
}

func (c *client) clearSession(ctx context.Context) {
	if err := c.store.Delete(ctx, c.sessionID); err != nil {
		c.logger.Warn("failed to clear invalid session", logger.Error(err))
	}
}

func threadToComment(t *yt.CommentThread) domain.Comment {
	comment := domain.Comment{ID: t.Id}
	if t.Snippet == nil {
		return comment
	}
	comment.VideoID = t.Snippet.VideoId
	top := t.Snippet.TopLevelComment
	if top == nil || top.Snippet == nil {
		return comment
	}
	comment.Text = top.Snippet.TextDisplay
	comment.Author = top.Snippet.AuthorDisplayName
	comment.AuthorImageURL = top.Snippet.AuthorProfileImageUrl
	comment.LikeCount = top.Snippet.LikeCount
	comment.PublishedAt = top.Snippet.PublishedAt
	return comment
}

func commentToDomain(c *yt.Comment) *domain.Comment {
	comment := &domain.Comment{ID: c.Id}
	if c.Snippet == nil {
		return comment
	}
	comment.Text = c.Snippet.TextDisplay
	comment.Author = c.Snippet.AuthorDisplayName
	comment.AuthorImageURL = c.Snippet.AuthorProfileImageUrl
	comment.LikeCount = c.Snippet.LikeCount
	comment.ParentID = c.Snippet.ParentId
	comment.PublishedAt = c.Snippet.PublishedAt
	return comment
}
