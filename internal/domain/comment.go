// Package domain defines the core data model for comment moderation.
package domain

// Comment is the read model for a top-level platform comment.
type Comment struct {
	ID              string `json:"id"`
	Text            string `json:"text"`
	Author          string `json:"author"`
	AuthorImageURL  string `json:"author_image_url,omitempty"`
	LikeCount       int64  `json:"like_count"`
	ParentID        string `json:"parent_id,omitempty"`
	VideoID         string `json:"video_id,omitempty"`
	PublishedAt     string `json:"published_at,omitempty"`
}

// Sentiment is a three-way tone label. There is no unknown state: scoring
// failures map to SentimentNeutral.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ModerationItem is one annotated comment in a moderation session.
// Immutable once constructed; a new ingestion pass produces a new set.
type ModerationItem struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	LikeCount int64     `json:"like_count"`
	IsSpam    bool      `json:"is_spam"`
	Sentiment Sentiment `json:"sentiment"`
}

// ModerationQueue partitions one ingestion pass by spam verdict.
type ModerationQueue struct {
	Legitimate []ModerationItem `json:"legitimate"`
	Spam       []ModerationItem `json:"spam"`
}

// Partition splits items into legitimate and spam subsets, preserving order.
func Partition(items []ModerationItem) ModerationQueue {
	queue := ModerationQueue{
		Legitimate: make([]ModerationItem, 0, len(items)),
		Spam:       make([]ModerationItem, 0),
	}
	for _, item := range items {
		if item.IsSpam {
			queue.Spam = append(queue.Spam, item)
		} else {
			queue.Legitimate = append(queue.Legitimate, item)
		}
	}
	return queue
}

// ItemFailure records one failed operation inside a batch.
type ItemFailure struct {
	ID      string `json:"id"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// BatchResult aggregates the per-item outcomes of one batch operation.
// Invariant: len(Successful) + len(Failed) == TotalProcessed.
type BatchResult struct {
	Successful     []string      `json:"successful"`
	Failed         []ItemFailure `json:"failed"`
	TotalProcessed int           `json:"total_processed"`
}

// Success reports whether at least one item in the batch went through.
func (r BatchResult) Success() bool {
	return len(r.Successful) > 0
}
