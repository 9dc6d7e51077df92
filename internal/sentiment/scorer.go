// Package sentiment maps comment text to a three-way tone label via the
// language-model capability.
package sentiment

import (
	"context"
	"strings"

	"github.com/tubewarden/tubewarden/internal/domain"
	"github.com/tubewarden/tubewarden/internal/logger"
	"github.com/tubewarden/tubewarden/internal/telemetry"
)

// Rater is the model capability. It returns the model's raw response for a
// tone question.
type Rater interface {
	RateSentiment(ctx context.Context, text string) (string, error)
}

// Scorer labels comment tone. Model failures and unparseable responses fall
// back to neutral; errors never cross the component boundary.
type Scorer struct {
	rater     Rater
	logger    logger.Logger
	telemetry *telemetry.Provider
}

// NewScorer creates a scorer. telemetry may be nil in tests.
func NewScorer(rater Rater, log logger.Logger, tp *telemetry.Provider) *Scorer {
	return &Scorer{rater: rater, logger: log, telemetry: tp}
}

// Score returns the sentiment label for text.
func (s *Scorer) Score(ctx context.Context, text string) domain.Sentiment {
	response, err := s.rater.RateSentiment(ctx, text)
	if err != nil {
		s.countModelError()
		s.logger.Warn("sentiment model call failed, defaulting to neutral",
			logger.Error(err))
		return s.record(domain.SentimentNeutral)
	}
	return s.record(parseLabel(response))
}

// parseLabel picks whichever label the model committed to. When the
// response names both or neither polarity, neutral wins.
func parseLabel(response string) domain.Sentiment {
	lower := strings.ToLower(response)
	positive := strings.Contains(lower, "positive")
	negative := strings.Contains(lower, "negative")

	switch {
	case positive && !negative:
		return domain.SentimentPositive
	case negative && !positive:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

func (s *Scorer) record(label domain.Sentiment) domain.Sentiment {
	if s.telemetry != nil {
		s.telemetry.Metrics.SentimentLabels.WithLabelValues(string(label)).Inc()
	}
	return label
}

func (s *Scorer) countModelError() {
	if s.telemetry != nil {
		s.telemetry.Metrics.ModelFallbackErrors.WithLabelValues("sentiment").Inc()
	}
}
