package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/TestingGuyz/hanuman/pkg/provider/llm"
)

// Chatter produces a persona reply for one user utterance. The controller
// talks to the LLM exclusively through this interface so tests can substitute
// canned replies.
type Chatter interface {
	Chat(ctx context.Context, systemPrompt, userText string) (string, error)
}

const (
	defaultChatTimeout = 15 * time.Second
	defaultTemperature = 0.7
	defaultMaxTokens   = 500
)

// LLMChatter implements [Chatter] on top of an llm.Provider, typically the
// model-cascading fallback wrapper.
type LLMChatter struct {
	provider    llm.Provider
	timeout     time.Duration
	temperature float64
	maxTokens   int
}

// ChatterOption is a functional option for LLMChatter.
type ChatterOption func(*LLMChatter)

// WithChatTimeout bounds each completion request. Defaults to 15s.
func WithChatTimeout(d time.Duration) ChatterOption {
	return func(c *LLMChatter) { c.timeout = d }
}

// WithTemperature sets the sampling temperature. Defaults to 0.7.
func WithTemperature(t float64) ChatterOption {
	return func(c *LLMChatter) { c.temperature = t }
}

// WithMaxTokens caps reply length in tokens. Defaults to 500, which keeps
// spoken replies short enough to synthesise quickly.
func WithMaxTokens(n int) ChatterOption {
	return func(c *LLMChatter) { c.maxTokens = n }
}

// NewLLMChatter wraps provider as a [Chatter].
func NewLLMChatter(provider llm.Provider, opts ...ChatterOption) *LLMChatter {
	c := &LLMChatter{
		provider:    provider,
		timeout:     defaultChatTimeout,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Chat implements [Chatter].
func (c *LLMChatter) Chat(ctx context.Context, systemPrompt, userText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: systemPrompt,
		Messages: []llm.Message{
			{Role: "user", Content: userText},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return resp.Content, nil
}

var _ Chatter = (*LLMChatter)(nil)
