// Package llm implements the language-model capabilities (spam judgement,
// sentiment rating, reply writing) on the Anthropic Messages API.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/tubewarden/tubewarden/internal/config"
	"github.com/tubewarden/tubewarden/internal/domain"
)

// Client bundles the three model capabilities behind one provider. The
// consuming packages each depend on their own single-method interface, so
// tests swap in fakes without touching this type.
type Client struct {
	api           anthropic.Client
	model         anthropic.Model
	verdictTokens int64
	replyTokens   int64
}

// NewClient creates an Anthropic-backed model client.
func NewClient(cfg config.AnthropicConfig) *Client {
	return &Client{
		api:           anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:         anthropic.Model(cfg.Model),
		verdictTokens: int64(cfg.VerdictTokens),
		replyTokens:   int64(cfg.ReplyTokens),
	}
}

// JudgeSpam submits the text for a yes/no spam verdict and returns the raw
// response text. Callers parse the verdict; transport failures come back as
// plain errors for the caller's fail-safe handling.
func (c *Client) JudgeSpam(ctx context.Context, text string) (string, error) {
	return c.complete(ctx, spamSystemPrompt, fmt.Sprintf(spamUserPromptFormat, text), c.verdictTokens)
}

// RateSentiment asks for a one-word tone label and returns the raw response.
func (c *Client) RateSentiment(ctx context.Context, text string) (string, error) {
	return c.complete(ctx, sentimentSystemPrompt, fmt.Sprintf(sentimentUserPromptFormat, text), c.verdictTokens)
}

// WriteReply generates a creator reply to the given comment. Failures are
// wrapped in domain.ErrModelUnavailable since there is no safe default text.
func (c *Client) WriteReply(ctx context.Context, commentText string) (string, error) {
	reply, err := c.complete(ctx, replySystemPrompt, fmt.Sprintf(replyUserPromptFormat, commentText), c.replyTokens)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrModelUnavailable, err)
	}
	if strings.TrimSpace(reply) == "" {
		return "", fmt.Errorf("%w: empty completion", domain.ErrModelUnavailable)
	}
	return reply, nil
}

func (c *Client) complete(ctx context.Context, system, user string, maxTokens int64) (string, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic completion: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		sb.WriteString(block.Text)
	}
	return sb.String(), nil
}
