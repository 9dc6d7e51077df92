// Package platform defines the comment-platform capability the moderation
// core consumes. Implementations live in subpackages; the core never talks
// to a platform SDK directly.
package platform

import (
	"context"

	"github.com/tubewarden/tubewarden/internal/domain"
)

// InsertRequest describes a comment write. Exactly one of ParentID (reply to
// an existing comment) or VideoID (new top-level thread) must be set.
type InsertRequest struct {
	ParentID string
	VideoID  string
	Text     string
}

// Client is the authenticated comment-platform capability bound to one
// session. It is read-only from the core's perspective and safe for
// concurrent per-item calls.
type Client interface {
	// ChannelID resolves the authenticated channel's id.
	ChannelID(ctx context.Context) (string, error)

	// ListThreads returns up to maxResults top-level thread comments related
	// to the channel, in the platform's order. Threads without display text
	// are returned as-is; callers decide whether to keep them.
	ListThreads(ctx context.Context, channelID string, maxResults int64) ([]domain.Comment, error)

	// GetComment fetches a single comment, or domain.ErrNotFound.
	GetComment(ctx context.Context, id string) (*domain.Comment, error)

	// DeleteComment removes a comment. Refusals surface as *domain.UpstreamError.
	DeleteComment(ctx context.Context, id string) error

	// InsertComment posts a reply or a new top-level thread comment.
	InsertComment(ctx context.Context, req InsertRequest) (*domain.Comment, error)
}

// Factory builds a per-session Client. It fails with domain.ErrAuthExpired
// when the session has no usable credentials.
type Factory interface {
	ClientForSession(ctx context.Context, sessionID string) (Client, error)
}
