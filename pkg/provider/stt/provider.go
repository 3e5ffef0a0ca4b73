// Package stt defines the Transcriber interface for Speech-to-Text backends.
//
// A transcriber wraps a hosted transcription API (e.g. Groq's Whisper
// endpoint) or a local inference engine (whisper.cpp) behind one blocking
// call: audio bytes in, recognised text out. The voice turn pipeline records
// a complete utterance before transcribing, so there is no streaming surface.
//
// Implementations must be safe for concurrent use and must return promptly
// when ctx is cancelled.
package stt

import "context"

// Transcriber is the abstraction over any STT backend.
type Transcriber interface {
	// Transcribe recognises speech in audio and returns the transcription.
	// audio is a complete recorded utterance in a container format the
	// implementation accepts (WAV with 16-bit PCM is supported by all
	// bundled implementations).
	//
	// An empty string with a nil error means the backend heard nothing it
	// could recognise; callers decide how to handle silence.
	Transcribe(ctx context.Context, audio []byte) (string, error)
}
