// Package ingest pulls comment threads for the authenticated channel and
// annotates each with spam verdict and sentiment using a fixed worker pool.
package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/tubewarden/tubewarden/internal/domain"
	"github.com/tubewarden/tubewarden/internal/logger"
	"github.com/tubewarden/tubewarden/internal/platform"
	"github.com/tubewarden/tubewarden/internal/sentiment"
	"github.com/tubewarden/tubewarden/internal/spam"
	"github.com/tubewarden/tubewarden/internal/telemetry"
)

const defaultConcurrency = 10

// RunRecord summarizes one ingestion pass for the audit trail.
type RunRecord struct {
	ChannelID string
	Fetched   int
	Spam      int
	Skipped   int
}

// Recorder persists ingestion pass summaries.
type Recorder interface {
	RecordIngestion(ctx context.Context, rec RunRecord) error
}

// Service runs one moderation-session ingestion pass. It is constructed per
// session around that session's platform client; nothing in it is shared
// mutable state.
type Service struct {
	client      platform.Client
	classifier  *spam.Classifier
	scorer      *sentiment.Scorer
	recorder    Recorder
	concurrency int
	maxComments int64
	logger      logger.Logger
	telemetry   *telemetry.Provider
}

// NewService creates an ingestion service. recorder may be nil when no
// history database is configured.
func NewService(
	client platform.Client,
	classifier *spam.Classifier,
	scorer *sentiment.Scorer,
	recorder Recorder,
	concurrency int,
	maxComments int64,
	log logger.Logger,
	tp *telemetry.Provider,
) *Service {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Service{
		client:      client,
		classifier:  classifier,
		scorer:      scorer,
		recorder:    recorder,
		concurrency: concurrency,
		maxComments: maxComments,
		logger:      log,
		telemetry:   tp,
	}
}

// job carries one comment and its slot in the output slice, so results land
// in the platform's thread order regardless of worker timing.
type job struct {
	index   int
	comment domain.Comment
}

// Ingest lists the channel's comment threads and annotates each retained
// comment. It errors only when channel resolution or thread listing fails;
// per-comment classification failures are absorbed by the classifier and
// scorer fail-safe defaults.
func (s *Service) Ingest(ctx context.Context) ([]domain.ModerationItem, error) {
	ctx, span := s.startSpan(ctx)
	defer span.End()

	channelID, err := s.client.ChannelID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve channel: %w", err)
	}

	threads, err := s.client.ListThreads(ctx, channelID, s.maxComments)
	if err != nil {
		return nil, fmt.Errorf("list comment threads: %w", err)
	}

	// Data-quality guard, not a failure: threads without display text are
	// omitted from the output.
	retained := make([]domain.Comment, 0, len(threads))
	skipped := 0
	for _, t := range threads {
		if t.Text == "" {
			skipped++
			continue
		}
		retained = append(retained, t)
	}
	if skipped > 0 {
		s.countSkipped(skipped)
		s.logger.Debug("threads skipped for missing display text",
			logger.Int("skipped", skipped))
	}

	items := s.annotate(ctx, retained)

	s.recordRun(span, len(items))
	s.recordHistory(ctx, channelID, items, skipped)
	s.logger.Info("ingestion pass complete",
		logger.String("channel_id", channelID),
		logger.Int("comments", len(items)),
		logger.Int("skipped", skipped),
	)
	return items, nil
}

// annotate classifies and scores comments with a worker pool. Workers write
// into disjoint slots, so no locking is needed and output order matches
// input order.
func (s *Service) annotate(ctx context.Context, comments []domain.Comment) []domain.ModerationItem {
	if len(comments) == 0 {
		return []domain.ModerationItem{}
	}

	start := time.Now()
	items := make([]domain.ModerationItem, len(comments))
	jobs := make(chan job, len(comments))

	var wg sync.WaitGroup
	for w := 0; w < s.concurrency; w++ {
		wg.Add(1)
		go s.worker(ctx, jobs, items, &wg)
	}

	for i, c := range comments {
		jobs <- job{index: i, comment: c}
	}
	close(jobs)
	wg.Wait()

	s.logger.Debug("annotation complete",
		logger.Int("comments", len(comments)),
		logger.Int("concurrency", s.concurrency),
		logger.Duration("elapsed", time.Since(start)),
	)
	return items
}

func (s *Service) worker(ctx context.Context, jobs <-chan job, items []domain.ModerationItem, wg *sync.WaitGroup) {
	defer wg.Done()

	for j := range jobs {
		select {
		case <-ctx.Done():
			// Leave remaining slots annotated with safe defaults.
			items[j.index] = safeDefaultItem(j.comment)
			continue
		default:
		}

		items[j.index] = domain.ModerationItem{
			ID:        j.comment.ID,
			Text:      j.comment.Text,
			Author:    j.comment.Author,
			LikeCount: j.comment.LikeCount,
			IsSpam:    s.classifier.Classify(ctx, j.comment.Text),
			Sentiment: s.scorer.Score(ctx, j.comment.Text),
		}
	}
}

func safeDefaultItem(c domain.Comment) domain.ModerationItem {
	return domain.ModerationItem{
		ID:        c.ID,
		Text:      c.Text,
		Author:    c.Author,
		LikeCount: c.LikeCount,
		IsSpam:    false,
		Sentiment: domain.SentimentNeutral,
	}
}

func (s *Service) startSpan(ctx context.Context) (context.Context, trace.Span) {
	if s.telemetry == nil {
		return noop.NewTracerProvider().Tracer("").Start(ctx, "ingest")
	}
	return s.telemetry.Tracer.Start(ctx, "ingest")
}

func (s *Service) recordRun(span trace.Span, size int) {
	span.SetAttributes(attribute.Int("comments", size))
	if s.telemetry != nil {
		s.telemetry.Metrics.IngestionRuns.Inc()
		s.telemetry.Metrics.IngestionSize.Observe(float64(size))
	}
}

// recordHistory writes the pass summary to the audit trail. Best effort: a
// failed write is logged, never surfaced to the caller.
func (s *Service) recordHistory(ctx context.Context, channelID string, items []domain.ModerationItem, skipped int) {
	if s.recorder == nil {
		return
	}

	spamCount := 0
	for _, item := range items {
		if item.IsSpam {
			spamCount++
		}
	}

	rec := RunRecord{
		ChannelID: channelID,
		Fetched:   len(items),
		Spam:      spamCount,
		Skipped:   skipped,
	}
	if err := s.recorder.RecordIngestion(ctx, rec); err != nil {
		s.logger.Warn("failed to record ingestion run", logger.Error(err))
	}
}

func (s *Service) countSkipped(n int) {
	if s.telemetry != nil {
		s.telemetry.Metrics.ThreadsSkipped.Add(float64(n))
	}
}
