//nolint:testpackage // Testing internal pattern tables requires same package access
package spam

import (
	"testing"
)

func TestPatternFilter_Match_KeywordIndicators(t *testing.T) {
	filter := NewPatternFilter()

	tests := []struct {
		name string
		text string
	}{
		{"financial advisor pitch", "Contact my financial advisor for great returns"},
		{"crypto shill", "Invest in Bitcoin today and retire early"},
		{"guaranteed returns", "This fund has guaranteed returns every month"},
		{"telegram redirect", "reach me on telegram for the real deal"},
		{"whatsapp redirect", "WhatsApp me for exclusive tips"},
		{"free money", "Claim your FREE MONEY now"},
		{"mixed case keyword", "My InVeStMeNt ExPeRt changed my life"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := filter.Match(tt.text); !ok {
				t.Errorf("expected match for %q", tt.text)
			}
		})
	}
}

func TestPatternFilter_Match_StructuralIndicators(t *testing.T) {
	filter := NewPatternFilter()

	tests := []struct {
		name string
		text string
	}{
		{"http url", "Great video, see http://scam.biz for more"},
		{"https url", "check https://totally-legit.example now"},
		{"phone number", "Call 555-123-4567 for a consultation"},
		{"email address", "Write to winner@prizes.example to claim"},
		{"punctuation flood", "AMAZING OFFER!!! Don't miss out"},
		{"all caps shouting", "SUBSCRIBE TO MY CHANNEL RIGHT NOW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := filter.Match(tt.text); !ok {
				t.Errorf("expected match for %q", tt.text)
			}
		})
	}
}

func TestPatternFilter_Match_CleanText(t *testing.T) {
	filter := NewPatternFilter()

	tests := []struct {
		name string
		text string
	}{
		{"plain praise", "Loved this video, the editing was great"},
		{"question", "What camera do you use for these shots?"},
		{"single exclamation", "Really well explained!"},
		{"short acronym", "LOL that intro"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if indicator, ok := filter.Match(tt.text); ok {
				t.Errorf("unexpected match %q for %q", indicator, tt.text)
			}
		})
	}
}

func TestPatternFilter_Match_ReportsIndicator(t *testing.T) {
	filter := NewPatternFilter()

	indicator, ok := filter.Match("my financial advisor doubled my savings")
	if !ok {
		t.Fatal("expected keyword match")
	}
	if indicator == "" {
		t.Error("expected a named indicator")
	}
}
