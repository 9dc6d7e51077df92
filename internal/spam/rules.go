// Package spam decides whether a comment is spam using a two-stage filter:
// a deterministic pattern stage, then a language-model fallback for anything
// the patterns cannot condemn on their own.
package spam

import (
	"regexp"
	"strings"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// keywordIndicators are the plain-phrase spam indicators. They are matched
// case-insensitively with a single Aho-Corasick pass over the lowercased
// text, which stays O(n) no matter how many phrases accumulate here.
var keywordIndicators = []string{
	"phone number",
	"contact my financial advisor",
	"financial advisor",
	"investment expert",
	"bitcoin",
	"crypto",
	"cryptocurrency",
	"ethereum",
	"blockchain",
	"altcoin",
	"free money",
	"easy cash",
	"quick investment",
	"guaranteed returns",
	"risk-free investment",
	"whatsapp me",
	"reach me on telegram",
	"telegram",
	"dm me",
}

// Compiled structural patterns. Compiled once at package init and reused for
// every call, safe for concurrent use.
var (
	// urlPattern matches http/https URLs.
	urlPattern = regexp.MustCompile(`(?i)https?://\S+`)

	// phonePattern matches phone number formats like +1-555-123-4567,
	// (555) 123-4567 and 555.123.4567. Anchored to whitespace/string
	// boundaries to avoid matching digit runs inside normal words.
	phonePattern = regexp.MustCompile(`(?:^|\s)(\+?\d{1,3}[-.\s]?)?\(?\d{2,4}\)?[-.\s]?\d{3,4}[-.\s]?\d{3,4}(?:\s|$)`)

	// punctFloodPattern matches 2+ consecutive exclamation marks.
	punctFloodPattern = regexp.MustCompile(`!{2,}`)

	// emailPattern matches embedded email addresses.
	emailPattern = regexp.MustCompile(`\b\w+@\w+\.\w+\b`)

	// allCapsPattern matches text consisting only of capitals and spaces.
	allCapsPattern = regexp.MustCompile(`^[A-Z\s]+$`)
)

// structuralCheck pairs a detection function with the indicator name used
// for logging and metrics.
type structuralCheck struct {
	name  string
	match func(string) bool
}

// structuralChecks is the ordered list of non-keyword checks. The first
// match wins.
var structuralChecks = []structuralCheck{
	{name: "url", match: urlPattern.MatchString},
	{name: "phone", match: phonePattern.MatchString},
	{name: "punct_flood", match: punctFloodPattern.MatchString},
	{name: "all_caps", match: isAllCaps},
	{name: "email", match: emailPattern.MatchString},
}

// isAllCaps reports shouting: every letter uppercase, at least one letter
// present so whitespace-only text does not count.
func isAllCaps(text string) bool {
	if !allCapsPattern.MatchString(text) {
		return false
	}
	return strings.ContainsFunc(text, unicode.IsUpper)
}

// PatternFilter is the deterministic first stage of the spam classifier.
type PatternFilter struct {
	matcher  *ahocorasick.Matcher
	keywords []string
}

// NewPatternFilter builds the keyword automaton.
func NewPatternFilter() *PatternFilter {
	return &PatternFilter{
		matcher:  ahocorasick.NewStringMatcher(keywordIndicators),
		keywords: keywordIndicators,
	}
}

// Match reports whether text trips any spam indicator, returning the name
// of the first indicator that matched.
func (f *PatternFilter) Match(text string) (string, bool) {
	hits := f.matcher.Match([]byte(strings.ToLower(text)))
	if len(hits) > 0 {
		return f.keywords[hits[0]], true
	}

	for _, check := range structuralChecks {
		if check.match(text) {
			return check.name, true
		}
	}
	return "", false
}
