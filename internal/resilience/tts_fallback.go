package resilience

import (
	"context"
	"errors"

	"github.com/TestingGuyz/hanuman/pkg/provider/tts"
)

// TTSFallback synthesises speech against an ordered list of voices on one
// backend. Some ElevenLabs voices are account-scoped and can disappear or hit
// quota independently, so each voice gets its own circuit breaker and the
// cascade falls through to the next voice in order.
type TTSFallback struct {
	synth tts.Synthesizer
	group *FallbackGroup[tts.VoiceProfile]
}

// NewTTSFallback creates a voice cascade over synth. voices are tried in the
// given order; the list must be non-empty.
func NewTTSFallback(synth tts.Synthesizer, voices []tts.VoiceProfile, cfg FallbackConfig) (*TTSFallback, error) {
	if synth == nil {
		return nil, errors.New("resilience: synth must not be nil")
	}
	if len(voices) == 0 {
		return nil, errors.New("resilience: at least one voice is required")
	}

	cfg.Kind = "tts"
	group := NewFallbackGroup(voices[0], voices[0].Name, cfg)
	for _, v := range voices[1:] {
		group.AddFallback(v.Name, v)
	}
	return &TTSFallback{synth: synth, group: group}, nil
}

// Synthesize converts text to speech using the first healthy voice. Returns
// the audio and the voice that produced it.
func (f *TTSFallback) Synthesize(ctx context.Context, text string) ([]byte, tts.VoiceProfile, error) {
	var used tts.VoiceProfile
	audio, err := ExecuteWithResult(ctx, f.group, func(v tts.VoiceProfile) ([]byte, error) {
		out, synthErr := f.synth.Synthesize(ctx, text, v)
		if synthErr == nil {
			used = v
		}
		return out, synthErr
	})
	if err != nil {
		return nil, tts.VoiceProfile{}, err
	}
	return audio, used, nil
}
