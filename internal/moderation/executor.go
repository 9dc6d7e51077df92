// Package moderation executes state-changing moderation actions against the
// comment platform: batch deletion with verify-then-delete semantics,
// replies, and AI-assisted reply drafts.
package moderation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/tubewarden/tubewarden/internal/domain"
	"github.com/tubewarden/tubewarden/internal/logger"
	"github.com/tubewarden/tubewarden/internal/platform"
	"github.com/tubewarden/tubewarden/internal/telemetry"
)

// ReplyWriter drafts a reply to a comment. Failures carry
// domain.ErrModelUnavailable; there is no fallback text.
type ReplyWriter interface {
	WriteReply(ctx context.Context, commentText string) (string, error)
}

// BatchRecord summarizes one batch operation for the audit trail.
type BatchRecord struct {
	Action    string
	Requested int
	Verified  int
	Succeeded int
	Failed    int
}

// Recorder persists batch outcomes. Implementations must tolerate being
// called concurrently; a nil Recorder disables persistence.
type Recorder interface {
	RecordBatch(ctx context.Context, rec BatchRecord) error
}

// Executor performs moderation actions for one session. Constructed per
// request around that session's platform client.
type Executor struct {
	client    platform.Client
	writer    ReplyWriter
	recorder  Recorder
	logger    logger.Logger
	telemetry *telemetry.Provider
}

// NewExecutor creates an executor. recorder and telemetry may be nil.
func NewExecutor(client platform.Client, writer ReplyWriter, recorder Recorder, log logger.Logger, tp *telemetry.Provider) *Executor {
	return &Executor{
		client:    client,
		writer:    writer,
		recorder:  recorder,
		logger:    log,
		telemetry: tp,
	}
}

// outcome captures one deletion attempt. Each fan-out goroutine writes its
// own slot; no state is shared across items.
type outcome struct {
	id  string
	err error
}

// DeleteMany deletes the given comments with independent per-item
// accounting. The platform returns ambiguous errors for ids that never
// existed or were already deleted, so a concurrent verification pass runs
// first: only ids the platform confirms are attempted, which keeps failure
// reasons attributable.
func (e *Executor) DeleteMany(ctx context.Context, ids []string) (domain.BatchResult, error) {
	if len(ids) == 0 {
		return domain.BatchResult{}, domain.ValidationError("comment ids are required")
	}

	cleaned := normalizeIDs(ids)
	if len(cleaned) == 0 {
		return domain.BatchResult{}, domain.ValidationError("no well-formed comment ids provided")
	}
	e.observeBatchSize(len(cleaned))

	validIDs := e.verify(ctx, cleaned)
	if len(validIDs) == 0 {
		// Distinct from an empty success: nothing was verified, nothing
		// was attempted.
		return domain.BatchResult{}, domain.ValidationError("no valid comments found to delete")
	}

	outcomes := e.delete(ctx, validIDs)

	result := domain.BatchResult{
		Successful:     make([]string, 0, len(validIDs)),
		Failed:         make([]domain.ItemFailure, 0),
		TotalProcessed: len(validIDs),
	}
	for _, o := range outcomes {
		if o.err == nil {
			result.Successful = append(result.Successful, o.id)
			continue
		}
		result.Failed = append(result.Failed, toFailure(o))
	}

	e.countDeletes(result)
	e.record(ctx, BatchRecord{
		Action:    "delete",
		Requested: len(cleaned),
		Verified:  len(validIDs),
		Succeeded: len(result.Successful),
		Failed:    len(result.Failed),
	})

	e.logger.Info("batch deletion complete",
		logger.Int("requested", len(cleaned)),
		logger.Int("verified", len(validIDs)),
		logger.Int("succeeded", len(result.Successful)),
		logger.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// verify checks each id's existence concurrently. Any verification error
// conservatively counts as nonexistent. Returned ids keep input order.
func (e *Executor) verify(ctx context.Context, ids []string) []string {
	exists := make([]bool, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(slot int, commentID string) {
			defer wg.Done()
			_, err := e.client.GetComment(ctx, commentID)
			if err != nil {
				e.logger.Debug("comment failed verification",
					logger.String("comment_id", commentID),
					logger.Error(err))
				return
			}
			exists[slot] = true
		}(i, id)
	}
	wg.Wait()

	valid := make([]string, 0, len(ids))
	for i, id := range ids {
		if exists[i] {
			valid = append(valid, id)
		}
	}
	return valid
}

// delete issues one delete per id concurrently, settle-all: one id's
// refusal never cancels or blocks its siblings.
func (e *Executor) delete(ctx context.Context, ids []string) []outcome {
	outcomes := make([]outcome, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(slot int, commentID string) {
			defer wg.Done()
			err := e.client.DeleteComment(ctx, commentID)
			outcomes[slot] = outcome{id: commentID, err: err}
			if err != nil {
				e.logger.Warn("comment deletion rejected",
					logger.String("comment_id", commentID),
					logger.Error(err))
			}
		}(i, id)
	}
	wg.Wait()

	return outcomes
}

// Reply posts a reply under an existing comment.
func (e *Executor) Reply(ctx context.Context, parentID, text string) (*domain.Comment, error) {
	parentID = strings.TrimSpace(parentID)
	text = strings.TrimSpace(text)
	if parentID == "" {
		return nil, domain.ValidationError("parent comment id is required")
	}
	if text == "" {
		return nil, domain.ValidationError("reply text is required")
	}

	comment, err := e.client.InsertComment(ctx, platform.InsertRequest{ParentID: parentID, Text: text})
	if err != nil {
		return nil, fmt.Errorf("post reply: %w", err)
	}

	e.countReplyPosted()
	e.logger.Info("reply posted",
		logger.String("parent_id", parentID),
		logger.String("comment_id", comment.ID))
	return comment, nil
}

// PostThread posts a new top-level comment on a video.
func (e *Executor) PostThread(ctx context.Context, videoID, text string) (*domain.Comment, error) {
	videoID = strings.TrimSpace(videoID)
	text = strings.TrimSpace(text)
	if videoID == "" {
		return nil, domain.ValidationError("video id is required")
	}
	if text == "" {
		return nil, domain.ValidationError("comment text is required")
	}

	comment, err := e.client.InsertComment(ctx, platform.InsertRequest{VideoID: videoID, Text: text})
	if err != nil {
		return nil, fmt.Errorf("post comment thread: %w", err)
	}

	e.countReplyPosted()
	e.logger.Info("comment thread posted",
		logger.String("video_id", videoID),
		logger.String("comment_id", comment.ID))
	return comment, nil
}

// GenerateReply drafts a reply to the given comment text.
func (e *Executor) GenerateReply(ctx context.Context, sourceText string) (string, error) {
	if strings.TrimSpace(sourceText) == "" {
		return "", domain.ValidationError("comment text is required")
	}

	reply, err := e.writer.WriteReply(ctx, sourceText)
	if err != nil {
		return "", err
	}

	e.countReplyGenerated()
	return reply, nil
}

// normalizeIDs trims whitespace, drops empty ids, and removes duplicates
// while preserving first-seen order.
func normalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}
	return cleaned
}

func toFailure(o outcome) domain.ItemFailure {
	failure := domain.ItemFailure{ID: o.id, Message: o.err.Error()}
	if ue, ok := domain.AsUpstream(o.err); ok {
		failure.Code = ue.Code
		failure.Details = ue.Message
	}
	return failure
}

func (e *Executor) record(ctx context.Context, rec BatchRecord) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.RecordBatch(ctx, rec); err != nil {
		// The audit trail is advisory; the batch result already went out.
		e.logger.Warn("failed to record batch outcome", logger.Error(err))
	}
}

func (e *Executor) observeBatchSize(n int) {
	if e.telemetry != nil {
		e.telemetry.Metrics.BatchSize.Observe(float64(n))
	}
}

func (e *Executor) countDeletes(result domain.BatchResult) {
	if e.telemetry == nil {
		return
	}
	m := e.telemetry.Metrics
	m.DeletesAttempted.Add(float64(result.TotalProcessed))
	m.DeletesSucceeded.Add(float64(len(result.Successful)))
	for _, f := range result.Failed {
		m.DeletesFailed.WithLabelValues(strconv.Itoa(f.Code)).Inc()
	}
}

func (e *Executor) countReplyPosted() {
	if e.telemetry != nil {
		e.telemetry.Metrics.RepliesPosted.Inc()
	}
}

func (e *Executor) countReplyGenerated() {
	if e.telemetry != nil {
		e.telemetry.Metrics.RepliesGenerated.Inc()
	}
}
