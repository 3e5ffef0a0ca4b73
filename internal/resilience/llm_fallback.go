package resilience

import (
	"context"
	"time"

	"github.com/TestingGuyz/hanuman/pkg/provider/llm"
)

// LLMFallback implements [llm.Provider] with automatic failover across an
// ordered list of LLM backends. In the default deployment each entry is the
// same Groq backend pinned to a different model, so an outage or rate limit on
// the large model degrades to smaller ones instead of failing the turn. Each
// entry has its own circuit breaker.
type LLMFallback struct {
	group *FallbackGroup[llm.Provider]
}

// Compile-time interface assertion.
var _ llm.Provider = (*LLMFallback)(nil)

// NewLLMFallback creates an [LLMFallback] with primary as the preferred backend.
func NewLLMFallback(primary llm.Provider, primaryName string, cfg FallbackConfig) *LLMFallback {
	cfg.Kind = "llm"
	return &LLMFallback{
		group: NewFallbackGroup(primary, primaryName, cfg),
	}
}

// AddFallback registers an additional LLM provider as a fallback.
func (f *LLMFallback) AddFallback(name string, provider llm.Provider) {
	f.group.AddFallback(name, provider)
}

// Complete sends the request to the first healthy provider and returns its
// response. If the primary fails, subsequent fallbacks are tried. The whole
// cascade is timed into [observe.Metrics.LLMDuration].
func (f *LLMFallback) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	start := time.Now()
	resp, err := ExecuteWithResult(ctx, f.group, func(p llm.Provider) (*llm.CompletionResponse, error) {
		return p.Complete(ctx, req)
	})
	f.group.cfg.Metrics.LLMDuration.Record(ctx, time.Since(start).Seconds())
	return resp, err
}
