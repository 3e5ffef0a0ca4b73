package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// ValidLLMProviders lists the chat backends the server knows how to build.
var ValidLLMProviders = []string{"groq", "openai", "ollama", "mistral"}

// Defaults applied by [applyDefaults] when the file leaves fields empty.
const (
	DefaultListenAddr  = ":8080"
	DefaultAudioDir    = "audio_output"
	DefaultTurnTimeout = 60 * time.Second
	DefaultSTTModel    = "whisper-large-v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. ${VAR} references in the file are expanded from the environment
// before decoding, so API keys can stay out of the file itself.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, expands ${VAR} environment
// references, applies defaults, and validates the result. Useful in tests
// where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}
	expanded := os.Expand(string(raw), func(name string) string {
		return os.Getenv(name)
	})

	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills in fields the file left empty.
func applyDefaults(cfg *Config) {
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = DefaultListenAddr
	}
	if cfg.Server.AudioDir == "" {
		cfg.Server.AudioDir = DefaultAudioDir
	}
	if cfg.Server.TurnTimeout == 0 {
		cfg.Server.TurnTimeout = DefaultTurnTimeout
	}
	if cfg.Providers.STT.Model == "" {
		cfg.Providers.STT.Model = DefaultSTTModel
	}
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if cfg.Server.TurnTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.turn_timeout %s is negative", cfg.Server.TurnTimeout))
	}
	if cfg.Server.SessionTTL < 0 {
		errs = append(errs, fmt.Errorf("server.session_ttl %s is negative", cfg.Server.SessionTTL))
	}

	// LLM — required; every mode except yudha needs it.
	llm := cfg.Providers.LLM
	if llm.Provider == "" {
		errs = append(errs, errors.New("providers.llm.provider is required"))
	} else if !slices.Contains(ValidLLMProviders, llm.Provider) {
		errs = append(errs, fmt.Errorf("providers.llm.provider %q is invalid; valid values: groq, openai, ollama, mistral", llm.Provider))
	}
	if len(llm.Models) == 0 {
		errs = append(errs, errors.New("providers.llm.models must list at least one model"))
	}
	if llm.Provider != "" && llm.Provider != "ollama" && llm.APIKey == "" {
		errs = append(errs, fmt.Errorf("providers.llm.api_key is required for provider %q", llm.Provider))
	}

	// STT — at least one backend must be available.
	stt := cfg.Providers.STT
	if stt.APIKey == "" && stt.LocalModelPath == "" {
		errs = append(errs, errors.New("providers.stt needs api_key or local_model_path; no transcription backend available"))
	}

	// TTS
	tts := cfg.Providers.TTS
	if tts.APIKey == "" {
		errs = append(errs, errors.New("providers.tts.api_key is required"))
	}
	if len(tts.Voices) == 0 {
		errs = append(errs, errors.New("providers.tts.voices must list at least one voice"))
	}
	for i, v := range tts.Voices {
		if v.ID == "" {
			errs = append(errs, fmt.Errorf("providers.tts.voices[%d].id is required", i))
		}
	}

	if cfg.Providers.Search.APIKey == "" {
		slog.Warn("providers.search.api_key is empty; khoj mode will report search as unavailable")
	}
	if cfg.History.PostgresDSN == "" {
		slog.Warn("history.postgres_dsn is empty; conversation turns will not be persisted")
	}

	return errors.Join(errs...)
}
