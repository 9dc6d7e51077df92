package spam

import (
	"context"
	"strings"
	"time"

	"github.com/tubewarden/tubewarden/internal/logger"
	"github.com/tubewarden/tubewarden/internal/telemetry"
)

// Verdict stages recorded in metrics.
const (
	stagePattern = "pattern"
	stageModel   = "model"
	stageClean   = "clean"
)

// Judge is the model fallback capability. It returns the model's raw
// response text for a yes/no spam question.
type Judge interface {
	JudgeSpam(ctx context.Context, text string) (string, error)
}

// Classifier runs the two-stage spam decision. The pattern stage decides
// alone whenever it matches; the model is consulted only for the remainder,
// keeping model cost proportional to the clean-looking share of traffic.
type Classifier struct {
	patterns  *PatternFilter
	judge     Judge
	logger    logger.Logger
	telemetry *telemetry.Provider
}

// NewClassifier creates a classifier. telemetry may be nil in tests.
func NewClassifier(judge Judge, log logger.Logger, tp *telemetry.Provider) *Classifier {
	return &Classifier{
		patterns:  NewPatternFilter(),
		judge:     judge,
		logger:    log,
		telemetry: tp,
	}
}

// Classify returns true when text is spam. A failed model call fails safe
// to false: a missed spam comment costs less than a blocked pipeline.
func (c *Classifier) Classify(ctx context.Context, text string) bool {
	start := time.Now()
	defer c.observeDuration(start)

	c.countClassified()

	if indicator, ok := c.patterns.Match(text); ok {
		c.countVerdict(stagePattern)
		c.logger.Debug("spam pattern matched",
			logger.String("indicator", indicator))
		return true
	}

	response, err := c.judge.JudgeSpam(ctx, text)
	if err != nil {
		c.countModelError()
		c.logger.Warn("spam model fallback failed, treating as not spam",
			logger.Error(err))
		return false
	}

	if strings.Contains(strings.ToLower(response), "yes") {
		c.countVerdict(stageModel)
		return true
	}

	c.countVerdict(stageClean)
	return false
}

// ClassifyMany classifies each text independently, preserving input order.
// One item's model failure never affects another's verdict and the batch
// always runs to completion.
func (c *Classifier) ClassifyMany(ctx context.Context, texts []string) []bool {
	verdicts := make([]bool, len(texts))
	for i, text := range texts {
		verdicts[i] = c.Classify(ctx, text)
	}
	return verdicts
}

func (c *Classifier) countClassified() {
	if c.telemetry != nil {
		c.telemetry.Metrics.CommentsClassified.Inc()
	}
}

func (c *Classifier) countVerdict(stage string) {
	if c.telemetry != nil {
		c.telemetry.Metrics.SpamVerdicts.WithLabelValues(stage).Inc()
	}
}

func (c *Classifier) countModelError() {
	if c.telemetry != nil {
		c.telemetry.Metrics.ModelFallbackErrors.WithLabelValues("spam").Inc()
	}
}

func (c *Classifier) observeDuration(start time.Time) {
	if c.telemetry != nil {
		c.telemetry.Metrics.ClassifyDuration.Observe(time.Since(start).Seconds())
	}
}
