// Package mock provides a test double for the stt.Transcriber interface.
package mock

import (
	"context"
	"sync"

	"github.com/TestingGuyz/hanuman/pkg/provider/stt"
)

// TranscribeCall records a single invocation of Transcribe.
type TranscribeCall struct {
	// Ctx is the context passed to Transcribe.
	Ctx context.Context
	// Audio is the audio payload passed to Transcribe.
	Audio []byte
}

// Transcriber is a mock implementation of stt.Transcriber.
// Zero values cause Transcribe to return "", nil. Set Err to inject errors.
type Transcriber struct {
	mu sync.Mutex

	// Text is returned by Transcribe.
	Text string

	// Err, if non-nil, is returned as the error from Transcribe.
	Err error

	// TranscribeFunc, if non-nil, is invoked instead of the static fields above.
	TranscribeFunc func(ctx context.Context, audio []byte) (string, error)

	// TranscribeCalls records every invocation of Transcribe in order.
	TranscribeCalls []TranscribeCall
}

// Transcribe records the call and returns the configured response.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	t.mu.Lock()
	cp := make([]byte, len(audio))
	copy(cp, audio)
	t.TranscribeCalls = append(t.TranscribeCalls, TranscribeCall{Ctx: ctx, Audio: cp})
	fn := t.TranscribeFunc
	text, err := t.Text, t.Err
	t.mu.Unlock()

	if fn != nil {
		return fn(ctx, audio)
	}
	return text, err
}

// Reset clears all recorded calls. Thread-safe.
func (t *Transcriber) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.TranscribeCalls = nil
}

// Ensure Transcriber implements stt.Transcriber at compile time.
var _ stt.Transcriber = (*Transcriber)(nil)
