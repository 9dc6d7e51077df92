//nolint:testpackage // Testing internal scorer requires same package access
package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/tubewarden/tubewarden/internal/domain"
	"github.com/tubewarden/tubewarden/internal/logger"
)

type mockRater struct {
	response string
	err      error
}

func (m *mockRater) RateSentiment(_ context.Context, _ string) (string, error) {
	return m.response, m.err
}

func TestScorer_Score_Labels(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     domain.Sentiment
	}{
		{"positive", "Positive", domain.SentimentPositive},
		{"positive lowercase", "positive", domain.SentimentPositive},
		{"positive in sentence", "The tone here is clearly positive.", domain.SentimentPositive},
		{"negative", "Negative", domain.SentimentNegative},
		{"neutral", "Neutral", domain.SentimentNeutral},
		{"unparseable", "I would call this mixed", domain.SentimentNeutral},
		{"both polarities", "somewhere between positive and negative", domain.SentimentNeutral},
		{"empty", "", domain.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScorer(&mockRater{response: tt.response}, logger.NewNop(), nil)

			got := s.Score(context.Background(), "some comment")
			if got != tt.want {
				t.Errorf("label for %q: got %s, want %s", tt.response, got, tt.want)
			}
		})
	}
}

func TestScorer_Score_ModelFailureDefaultsNeutral(t *testing.T) {
	s := NewScorer(&mockRater{err: errors.New("model unavailable")}, logger.NewNop(), nil)

	if got := s.Score(context.Background(), "Great video"); got != domain.SentimentNeutral {
		t.Errorf("got %s, want neutral on model failure", got)
	}
}
