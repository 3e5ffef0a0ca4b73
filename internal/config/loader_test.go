package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/TestingGuyz/hanuman/internal/config"
)

const validYAML = `
server:
  listen_addr: ":9090"
  log_level: debug
  turn_timeout: 30s
providers:
  llm:
    provider: groq
    api_key: gsk-test
    models: [llama-3.3-70b-versatile, llama-3.1-8b-instant]
  stt:
    api_key: gsk-test
  tts:
    api_key: el-test
    voices:
      - id: v1
        name: Hanuman
      - id: v2
        name: Rachel
  search:
    api_key: tvly-test
history:
  postgres_dsn: postgres://localhost/hanuman
`

func TestLoadFromReader_Valid(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadFromReader(strings.NewReader(validYAML))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Server.ListenAddr != ":9090" {
		t.Errorf("listen_addr = %q", cfg.Server.ListenAddr)
	}
	if cfg.Server.TurnTimeout != 30*time.Second {
		t.Errorf("turn_timeout = %s", cfg.Server.TurnTimeout)
	}
	if got := cfg.Providers.LLM.Models; len(got) != 2 || got[0] != "llama-3.3-70b-versatile" {
		t.Errorf("llm models = %v", got)
	}
	if len(cfg.Providers.TTS.Voices) != 2 || cfg.Providers.TTS.Voices[0].Name != "Hanuman" {
		t.Errorf("tts voices = %v", cfg.Providers.TTS.Voices)
	}
	if !cfg.MusicEnabled() {
		t.Error("music should default to enabled")
	}
}

func TestLoadFromReader_Defaults(t *testing.T) {
	t.Parallel()
	yaml := `
providers:
  llm:
    provider: groq
    api_key: gsk-test
    models: [llama-3.1-8b-instant]
  stt:
    api_key: gsk-test
  tts:
    api_key: el-test
    voices:
      - id: v1
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Server.ListenAddr != config.DefaultListenAddr {
		t.Errorf("listen_addr = %q, want default %q", cfg.Server.ListenAddr, config.DefaultListenAddr)
	}
	if cfg.Server.AudioDir != config.DefaultAudioDir {
		t.Errorf("audio_dir = %q", cfg.Server.AudioDir)
	}
	if cfg.Server.TurnTimeout != config.DefaultTurnTimeout {
		t.Errorf("turn_timeout = %s", cfg.Server.TurnTimeout)
	}
	if cfg.Providers.STT.Model != config.DefaultSTTModel {
		t.Errorf("stt model = %q", cfg.Providers.STT.Model)
	}
}

func TestLoadFromReader_EnvExpansion(t *testing.T) {
	t.Setenv("HANUMAN_TEST_GROQ_KEY", "gsk-from-env")
	yaml := `
providers:
  llm:
    provider: groq
    api_key: ${HANUMAN_TEST_GROQ_KEY}
    models: [llama-3.1-8b-instant]
  stt:
    api_key: ${HANUMAN_TEST_GROQ_KEY}
  tts:
    api_key: el-test
    voices:
      - id: v1
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Providers.LLM.APIKey != "gsk-from-env" {
		t.Errorf("api_key = %q, want expanded env value", cfg.Providers.LLM.APIKey)
	}
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  listen_adress: ":8080"
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestValidate_MissingLLM(t *testing.T) {
	t.Parallel()
	yaml := `
providers:
  stt:
    api_key: gsk-test
  tts:
    api_key: el-test
    voices:
      - id: v1
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for missing LLM provider, got nil")
	}
	if !strings.Contains(err.Error(), "providers.llm.provider") {
		t.Errorf("error should mention providers.llm.provider, got: %v", err)
	}
	if !strings.Contains(err.Error(), "providers.llm.models") {
		t.Errorf("error should mention providers.llm.models, got: %v", err)
	}
}

func TestValidate_InvalidLLMProvider(t *testing.T) {
	t.Parallel()
	yaml := `
providers:
  llm:
    provider: bedrock
    api_key: k
    models: [m]
  stt:
    api_key: gsk-test
  tts:
    api_key: el-test
    voices:
      - id: v1
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for unknown LLM provider, got nil")
	}
	if !strings.Contains(err.Error(), "bedrock") {
		t.Errorf("error should name the invalid provider, got: %v", err)
	}
}

func TestValidate_OllamaNeedsNoKey(t *testing.T) {
	t.Parallel()
	yaml := `
providers:
  llm:
    provider: ollama
    base_url: http://localhost:11434
    models: [llama3]
  stt:
    local_model_path: /models/ggml-base.en.bin
  tts:
    api_key: el-test
    voices:
      - id: v1
`
	if _, err := config.LoadFromReader(strings.NewReader(yaml)); err != nil {
		t.Fatalf("ollama without api_key should validate, got: %v", err)
	}
}

func TestValidate_NoSTTBackend(t *testing.T) {
	t.Parallel()
	yaml := `
providers:
  llm:
    provider: groq
    api_key: k
    models: [m]
  tts:
    api_key: el-test
    voices:
      - id: v1
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error when no STT backend is configured, got nil")
	}
	if !strings.Contains(err.Error(), "transcription backend") {
		t.Errorf("error should mention transcription backend, got: %v", err)
	}
}

func TestValidate_VoiceMissingID(t *testing.T) {
	t.Parallel()
	yaml := `
providers:
  llm:
    provider: groq
    api_key: k
    models: [m]
  stt:
    api_key: k
  tts:
    api_key: el-test
    voices:
      - name: Nameless
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for voice without id, got nil")
	}
	if !strings.Contains(err.Error(), "voices[0].id") {
		t.Errorf("error should mention voices[0].id, got: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: verbose
providers:
  llm:
    provider: groq
    api_key: k
    models: [m]
  stt:
    api_key: k
  tts:
    api_key: el-test
    voices:
      - id: v1
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for invalid log level, got nil")
	}
	if !strings.Contains(err.Error(), "log_level") {
		t.Errorf("error should mention log_level, got: %v", err)
	}
}

func TestMusicDisabled(t *testing.T) {
	t.Parallel()
	yaml := `
providers:
  llm:
    provider: groq
    api_key: k
    models: [m]
  stt:
    api_key: k
  tts:
    api_key: el-test
    voices:
      - id: v1
  music:
    enabled: false
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.MusicEnabled() {
		t.Error("music should be disabled")
	}
}
