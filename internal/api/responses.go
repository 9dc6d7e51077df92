package api

import (
	"time"

	"github.com/tubewarden/tubewarden/internal/database"
	"github.com/tubewarden/tubewarden/internal/domain"
)

// CommentResponse is the wire form of a single comment.
type CommentResponse struct {
	ID          string `json:"id"`
	Author      string `json:"author"`
	Text        string `json:"text"`
	LikeCount   int64  `json:"like_count"`
	PublishedAt string `json:"published_at,omitempty"`
}

// ModerationItemResponse is a comment annotated with moderation verdicts.
type ModerationItemResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Author    string `json:"author"`
	LikeCount int64  `json:"like_count"`
	IsSpam    bool   `json:"is_spam"`
	Sentiment string `json:"sentiment"`
}

// QueueResponse is the two-queue moderation view of a channel's comments.
type QueueResponse struct {
	Legitimate []ModerationItemResponse `json:"legitimate"`
	Spam       []ModerationItemResponse `json:"spam"`
	Total      int                      `json:"total"`
}

// DeleteCommentsRequest asks for a batch of comments to be deleted.
type DeleteCommentsRequest struct {
	CommentIDs []string `json:"comment_ids" binding:"required"`
}

// ItemFailureResponse reports one comment that could not be deleted.
type ItemFailureResponse struct {
	ID      string `json:"id"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// DeleteCommentsResponse reports per-item batch deletion outcomes. Success
// means at least one deletion went through.
type DeleteCommentsResponse struct {
	Success        bool                  `json:"success"`
	Successful     []string              `json:"successful"`
	Failed         []ItemFailureResponse `json:"failed"`
	TotalProcessed int                   `json:"total_processed"`
}

// PostCommentRequest posts a new top-level comment on a video.
type PostCommentRequest struct {
	VideoID string `json:"video_id" binding:"required"`
	Text    string `json:"text"    binding:"required"`
}

// ReplyRequest posts a reply under an existing comment.
type ReplyRequest struct {
	CommentID string `json:"comment_id" binding:"required"`
	Text      string `json:"text"       binding:"required"`
}

// GenerateReplyRequest asks for an AI-drafted reply to a comment.
type GenerateReplyRequest struct {
	CommentText string `json:"comment_text" binding:"required"`
}

// GenerateReplyResponse carries the drafted reply.
type GenerateReplyResponse struct {
	Reply string `json:"reply"`
}

func toCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:          c.ID,
		Author:      c.Author,
		Text:        c.Text,
		LikeCount:   c.LikeCount,
		PublishedAt: c.PublishedAt,
	}
}

func toItemResponse(item domain.ModerationItem) ModerationItemResponse {
	return ModerationItemResponse{
		ID:        item.ID,
		Text:      item.Text,
		Author:    item.Author,
		LikeCount: item.LikeCount,
		IsSpam:    item.IsSpam,
		Sentiment: string(item.Sentiment),
	}
}

func toQueueResponse(queue domain.ModerationQueue) QueueResponse {
	resp := QueueResponse{
		Legitimate: make([]ModerationItemResponse, 0, len(queue.Legitimate)),
		Spam:       make([]ModerationItemResponse, 0, len(queue.Spam)),
	}
	for _, item := range queue.Legitimate {
		resp.Legitimate = append(resp.Legitimate, toItemResponse(item))
	}
	for _, item := range queue.Spam {
		resp.Spam = append(resp.Spam, toItemResponse(item))
	}
	resp.Total = len(resp.Legitimate) + len(resp.Spam)
	return resp
}

func toDeleteResponse(result domain.BatchResult) DeleteCommentsResponse {
	resp := DeleteCommentsResponse{
		Success:        result.Success(),
		Successful:     result.Successful,
		Failed:         make([]ItemFailureResponse, 0, len(result.Failed)),
		TotalProcessed: result.TotalProcessed,
	}
	for _, f := range result.Failed {
		resp.Failed = append(resp.Failed, ItemFailureResponse{
			ID:      f.ID,
			Code:    f.Code,
			Message: f.Message,
			Details: f.Details,
		})
	}
	return resp
}

// StatsResponse is the aggregate audit trail view.
type StatsResponse struct {
	TotalBatches   int       `json:"total_batches"`
	TotalSucceeded int       `json:"total_succeeded"`
	TotalFailed    int       `json:"total_failed"`
	LastExecutedAt time.Time `json:"last_executed_at"`
}

func toStatsResponse(stats *database.BatchStats) StatsResponse {
	return StatsResponse{
		TotalBatches:   stats.TotalBatches,
		TotalSucceeded: stats.TotalSucceeded,
		TotalFailed:    stats.TotalFailed,
		LastExecutedAt: stats.LastExecutedAt,
	}
}
