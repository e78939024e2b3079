package transcriber

import (
	"context"

	"github.com/P0llen/speaker-detector/internal/app/model"
)

// Transcriber converts merged meeting audio into full text plus ordered
// time-coded segments. Implementations fail on provider-side errors; they do
// not label speakers.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*model.Transcript, error)
}
