package anyllm

import (
	"testing"

	anyllmlib "github.com/mozilla-ai/any-llm-go"

	"github.com/TestingGuyz/hanuman/pkg/provider/llm"
)

// ── buildParams ───────────────────────────────────────────────────────────────

// TestBuildParams_SystemPrompt checks that the system prompt becomes the first
// message.
func TestBuildParams_SystemPrompt(t *testing.T) {
	p := &Provider{model: "llama-3.3-70b-versatile"}
	params := p.buildParams(llm.CompletionRequest{
		SystemPrompt: "You are Hanuman.",
		Messages:     []llm.Message{{Role: "user", Content: "Jai Shri Ram"}},
	})

	if params.Model != "llama-3.3-70b-versatile" {
		t.Errorf("expected model llama-3.3-70b-versatile, got %q", params.Model)
	}
	if len(params.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(params.Messages))
	}
	if params.Messages[0].Role != anyllmlib.RoleSystem {
		t.Errorf("expected first message role system, got %q", params.Messages[0].Role)
	}
	if got := params.Messages[0].ContentString(); got != "You are Hanuman." {
		t.Errorf("unexpected system content: %q", got)
	}
	if params.Messages[1].Role != "user" || params.Messages[1].ContentString() != "Jai Shri Ram" {
		t.Errorf("unexpected user message: %+v", params.Messages[1])
	}
}

// TestBuildParams_NoSystemPrompt checks that no system message is injected
// when the request has none.
func TestBuildParams_NoSystemPrompt(t *testing.T) {
	p := &Provider{model: "m"}
	params := p.buildParams(llm.CompletionRequest{
		Messages: []llm.Message{{Role: "user", Content: "hi"}},
	})
	if len(params.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(params.Messages))
	}
}

// TestBuildParams_Sampling checks that temperature and max tokens only appear
// when set.
func TestBuildParams_Sampling(t *testing.T) {
	p := &Provider{model: "m"}

	params := p.buildParams(llm.CompletionRequest{Temperature: 0.7, MaxTokens: 256})
	if params.Temperature == nil || *params.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", params.Temperature)
	}
	if params.MaxTokens == nil || *params.MaxTokens != 256 {
		t.Errorf("expected max tokens 256, got %v", params.MaxTokens)
	}

	params = p.buildParams(llm.CompletionRequest{})
	if params.Temperature != nil {
		t.Errorf("expected nil temperature for zero value, got %v", *params.Temperature)
	}
	if params.MaxTokens != nil {
		t.Errorf("expected nil max tokens for zero value, got %v", *params.MaxTokens)
	}
}

// ── Constructor ───────────────────────────────────────────────────────────────

// TestNew_EmptyProviderName checks that an empty provider name returns an error.
func TestNew_EmptyProviderName(t *testing.T) {
	_, err := New("", "llama-3.3-70b-versatile")
	if err == nil {
		t.Fatal("expected error for empty providerName")
	}
}

// TestNew_EmptyModel checks that an empty model name returns an error.
func TestNew_EmptyModel(t *testing.T) {
	_, err := New("groq", "")
	if err == nil {
		t.Fatal("expected error for empty model")
	}
}

// TestNew_UnsupportedProvider checks that an unsupported provider returns an error.
func TestNew_UnsupportedProvider(t *testing.T) {
	_, err := New("fakecloud", "some-model", anyllmlib.WithAPIKey("dummy"))
	if err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

// TestNew_Groq_WithAPIKey checks that the Groq backend constructs with an
// explicit API key.
func TestNew_Groq_WithAPIKey(t *testing.T) {
	p, err := New("groq", "llama-3.3-70b-versatile", anyllmlib.WithAPIKey("gsk-test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Model() != "llama-3.3-70b-versatile" {
		t.Errorf("expected model llama-3.3-70b-versatile, got %q", p.Model())
	}
}

// TestNew_Groq_MissingAPIKey checks that Groq errors when no key is available.
// Relies on GROQ_API_KEY not being set in the test environment.
func TestNew_Groq_MissingAPIKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	_, err := New("groq", "llama-3.3-70b-versatile")
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
}

// TestNew_Ollama_NoAPIKey checks that Ollama works without an API key.
func TestNew_Ollama_NoAPIKey(t *testing.T) {
	p, err := NewOllama("llama3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil {
		t.Fatal("expected non-nil provider")
	}
}

// TestNew_CaseInsensitiveProviderName checks that provider names are matched
// case-insensitively.
func TestNew_CaseInsensitiveProviderName(t *testing.T) {
	_, err := New("Groq", "llama-3.3-70b-versatile", anyllmlib.WithAPIKey("gsk-test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestConvenienceConstructors checks the convenience constructors delegate
// correctly.
func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (*Provider, error)
	}{
		{"NewGroq", func() (*Provider, error) { return NewGroq("llama-3.3-70b-versatile", anyllmlib.WithAPIKey("gsk-test")) }},
		{"NewOpenAI", func() (*Provider, error) { return NewOpenAI("gpt-4o", anyllmlib.WithAPIKey("sk-test")) }},
		{"NewOllama", func() (*Provider, error) { return NewOllama("llama3") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.fn()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p == nil {
				t.Fatal("expected non-nil provider")
			}
		})
	}
}
