// Command hanuman is the main entry point for the Hanuman voice assistant
// server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	anyllmlib "github.com/mozilla-ai/any-llm-go"

	"github.com/TestingGuyz/hanuman/internal/config"
	"github.com/TestingGuyz/hanuman/internal/conversation"
	"github.com/TestingGuyz/hanuman/internal/health"
	"github.com/TestingGuyz/hanuman/internal/observe"
	"github.com/TestingGuyz/hanuman/internal/resilience"
	"github.com/TestingGuyz/hanuman/internal/server"
	"github.com/TestingGuyz/hanuman/internal/session"
	"github.com/TestingGuyz/hanuman/internal/store"
	"github.com/TestingGuyz/hanuman/pkg/provider/llm/anyllm"
	"github.com/TestingGuyz/hanuman/pkg/provider/music/youtube"
	"github.com/TestingGuyz/hanuman/pkg/provider/search/tavily"
	groqstt "github.com/TestingGuyz/hanuman/pkg/provider/stt/groq"
	"github.com/TestingGuyz/hanuman/pkg/provider/stt/whisper"
	"github.com/TestingGuyz/hanuman/pkg/provider/tts"
	"github.com/TestingGuyz/hanuman/pkg/provider/tts/elevenlabs"
)

// version is stamped by the build; "dev" for local builds.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "hanuman: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "hanuman: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	slog.Info("hanuman starting",
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Observability ─────────────────────────────────────────────────────────
	shutdownOtel, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "hanuman",
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOtel(shCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()
	metrics := observe.DefaultMetrics()

	// ── Providers ─────────────────────────────────────────────────────────────
	llmGroup, err := buildLLM(cfg.Providers.LLM)
	if err != nil {
		slog.Error("failed to build LLM cascade", "err", err)
		return 1
	}

	sttGroup, closeSTT, err := buildSTT(cfg.Providers.STT)
	if err != nil {
		slog.Error("failed to build STT cascade", "err", err)
		return 1
	}
	defer closeSTT()

	ttsGroup, err := buildTTS(cfg.Providers.TTS)
	if err != nil {
		slog.Error("failed to build TTS cascade", "err", err)
		return 1
	}

	// ── Conversation controller ───────────────────────────────────────────────
	chat := conversation.NewLLMChatter(llmGroup)
	var ctrlOpts []conversation.Option
	if cfg.Providers.Search.APIKey != "" {
		searcher, err := tavily.New(cfg.Providers.Search.APIKey)
		if err != nil {
			slog.Error("failed to create search provider", "err", err)
			return 1
		}
		ctrlOpts = append(ctrlOpts, conversation.WithSearcher(searcher))
		slog.Info("khoj mode enabled", "provider", "tavily")
	}
	if cfg.MusicEnabled() {
		ctrlOpts = append(ctrlOpts, conversation.WithMusic(youtube.New()))
		slog.Info("gandharva mode enabled", "provider", "youtube")
	}
	controller := conversation.New(chat, ctrlOpts...)

	// ── History store (optional) ──────────────────────────────────────────────
	checkers := []health.Checker{
		health.DirWritableChecker("audio_dir", cfg.Server.AudioDir),
	}
	var srvOpts []server.Option
	if dsn := cfg.History.PostgresDSN; dsn != "" {
		st, err := store.NewStore(ctx, dsn)
		if err != nil {
			slog.Error("failed to connect history store", "err", err)
			return 1
		}
		defer st.Close()
		srvOpts = append(srvOpts, server.WithArchiver(st))
		checkers = append(checkers, health.PingChecker("history", st))
		slog.Info("turn history persistence enabled")
	}

	srvOpts = append(srvOpts,
		server.WithHealth(health.New(checkers...)),
		server.WithTurnTimeout(cfg.Server.TurnTimeout),
		server.WithProviderStatus(cfg.Providers.Search.APIKey != "", cfg.MusicEnabled()),
	)
	if cfg.Server.SessionTTL > 0 {
		srvOpts = append(srvOpts, server.WithSessionTTL(cfg.Server.SessionTTL))
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	srv, err := server.New(
		cfg.Server.ListenAddr,
		cfg.Server.AudioDir,
		session.NewStore(),
		controller,
		sttGroup,
		ttsGroup,
		metrics,
		srvOpts...,
	)
	if err != nil {
		slog.Error("failed to initialise server", "err", err)
		return 1
	}

	printStartupSummary(cfg)
	slog.Info("server ready — press Ctrl+C to shut down")

	if err := srv.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

// ── Provider wiring ───────────────────────────────────────────────────────────

// buildLLM constructs the model cascade: the first configured model is the
// primary, later models take over when it fails or its breaker is open. All
// entries share the same backend and credentials.
func buildLLM(cfg config.LLMConfig) (*resilience.LLMFallback, error) {
	var opts []anyllmlib.Option
	if cfg.APIKey != "" {
		opts = append(opts, anyllmlib.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, anyllmlib.WithBaseURL(cfg.BaseURL))
	}

	primary, err := anyllm.New(cfg.Provider, cfg.Models[0], opts...)
	if err != nil {
		return nil, fmt.Errorf("create llm %s/%s: %w", cfg.Provider, cfg.Models[0], err)
	}
	group := resilience.NewLLMFallback(primary, cfg.Models[0], resilience.FallbackConfig{})

	for _, model := range cfg.Models[1:] {
		p, err := anyllm.New(cfg.Provider, model, opts...)
		if err != nil {
			return nil, fmt.Errorf("create llm %s/%s: %w", cfg.Provider, model, err)
		}
		group.AddFallback(model, p)
		slog.Info("llm fallback registered", "model", model)
	}
	return group, nil
}

// buildSTT constructs the transcription cascade: hosted Whisper first when
// an API key is present, local whisper.cpp as offline fallback when a model
// path is configured. Config validation guarantees at least one backend.
func buildSTT(cfg config.STTConfig) (*resilience.STTFallback, func(), error) {
	closeFn := func() {}
	var group *resilience.STTFallback

	if cfg.APIKey != "" {
		opts := []groqstt.Option{groqstt.WithModel(cfg.Model)}
		if cfg.Language != "" {
			opts = append(opts, groqstt.WithLanguage(cfg.Language))
		}
		hosted, err := groqstt.New(cfg.APIKey, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("create hosted whisper: %w", err)
		}
		group = resilience.NewSTTFallback(hosted, "groq-whisper", resilience.FallbackConfig{})
	}

	if cfg.LocalModelPath != "" {
		var opts []whisper.Option
		if cfg.Language != "" {
			opts = append(opts, whisper.WithLanguage(cfg.Language))
		}
		local, err := whisper.New(cfg.LocalModelPath, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("load local whisper model: %w", err)
		}
		closeFn = func() {
			if err := local.Close(); err != nil {
				slog.Warn("local whisper close error", "err", err)
			}
		}
		if group == nil {
			group = resilience.NewSTTFallback(local, "whisper-local", resilience.FallbackConfig{})
		} else {
			group.AddFallback("whisper-local", local)
			slog.Info("stt fallback registered", "backend", "whisper-local")
		}
	}

	if group == nil {
		return nil, nil, errors.New("no transcription backend configured")
	}
	return group, closeFn, nil
}

// buildTTS constructs the voice cascade over a single ElevenLabs client.
// Voices are tried in config order until one synthesises successfully.
func buildTTS(cfg config.TTSConfig) (*resilience.TTSFallback, error) {
	var opts []elevenlabs.Option
	if cfg.ModelID != "" {
		opts = append(opts, elevenlabs.WithModel(cfg.ModelID))
	}
	synth, err := elevenlabs.New(cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("create elevenlabs client: %w", err)
	}

	voices := make([]tts.VoiceProfile, 0, len(cfg.Voices))
	for _, v := range cfg.Voices {
		voices = append(voices, tts.VoiceProfile{
			ID:       v.ID,
			Name:     v.Name,
			Provider: "elevenlabs",
		})
	}
	return resilience.NewTTSFallback(synth, voices, resilience.FallbackConfig{})
}

// ── Startup summary ───────────────────────────────────────────────────────────

func printStartupSummary(cfg *config.Config) {
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║      Hanuman — startup summary        ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	printLine("LLM", fmt.Sprintf("%s ×%d models", cfg.Providers.LLM.Provider, len(cfg.Providers.LLM.Models)))
	printLine("STT", sttSummary(cfg.Providers.STT))
	printLine("TTS", fmt.Sprintf("elevenlabs ×%d voices", len(cfg.Providers.TTS.Voices)))
	printLine("Search", enabled(cfg.Providers.Search.APIKey != ""))
	printLine("Music", enabled(cfg.MusicEnabled()))
	printLine("History", enabled(cfg.History.PostgresDSN != ""))
	printLine("Listen addr", cfg.Server.ListenAddr)
	fmt.Println("╚═══════════════════════════════════════╝")
}

func sttSummary(cfg config.STTConfig) string {
	switch {
	case cfg.APIKey != "" && cfg.LocalModelPath != "":
		return "groq + local whisper"
	case cfg.APIKey != "":
		return "groq"
	default:
		return "local whisper"
	}
}

func enabled(on bool) string {
	if on {
		return "enabled"
	}
	return "(disabled)"
}

func printLine(kind, value string) {
	if len(value) > 19 {
		value = value[:16] + "…"
	}
	fmt.Printf("║  %-12s : %-19s  ║\n", kind, value)
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
