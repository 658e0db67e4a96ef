// Package transcribe defines the speech-to-text collaborator interface. The
// dialogue core only ever sees recognized text; the pipeline that produces it
// lives behind this boundary.
package transcribe

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when transcription is not configured. Callers
// should tell the user voice messages are unsupported rather than fail.
var ErrUnavailable = errors.New("transcription unavailable")

// Transcriber converts a voice message reference into recognized text.
// Implementations own their retry and timeout budget.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaRef string) (string, error)
}

// Disabled is the Transcriber used when no transcription backend is
// configured.
type Disabled struct{}

// Transcribe always reports that transcription is unavailable.
func (Disabled) Transcribe(context.Context, string) (string, error) {
	return "", ErrUnavailable
}
