// Package tts defines the Synthesizer interface for Text-to-Speech backends.
//
// A TTS provider wraps a speech synthesis service (e.g. ElevenLabs) behind one
// blocking call: reply text in, encoded audio out. The voice pipeline serves
// the synthesised clip as a static file, so there is no streaming surface.
//
// Implementations must be safe for concurrent use.
package tts

import "context"

// VoiceProfile identifies a voice available for synthesis.
type VoiceProfile struct {
	// ID is the provider-assigned voice identifier.
	ID string

	// Name is the human-readable voice name (e.g. "Rachel").
	Name string

	// Provider names the backend that owns this voice (e.g. "elevenlabs").
	Provider string

	// Metadata carries provider-specific labels such as gender or accent.
	Metadata map[string]string
}

// Synthesizer is the abstraction over any TTS backend.
type Synthesizer interface {
	// Synthesize converts text to speech using the given voice and returns the
	// complete encoded audio clip. The encoding is implementation-defined;
	// the bundled ElevenLabs backend returns MP3.
	//
	// Returns an error if the voice is unavailable, the request fails, or ctx
	// is cancelled before synthesis completes.
	Synthesize(ctx context.Context, text string, voice VoiceProfile) ([]byte, error)

	// ListVoices returns all voice profiles currently available from this
	// backend. The list may change between calls as the underlying catalogue
	// is updated.
	ListVoices(ctx context.Context) ([]VoiceProfile, error)
}
