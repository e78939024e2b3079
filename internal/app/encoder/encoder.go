package encoder

import (
	"context"

	"github.com/P0llen/speaker-detector/internal/app/model"
)

// Encoder converts an audio file into a fixed-length voice fingerprint.
// Implementations must fail on empty or unreadable input.
type Encoder interface {
	// Encode computes the fingerprint for the audio at the given path.
	Encode(ctx context.Context, audioPath string) (model.Fingerprint, error)

	// Info returns metadata about the encoder backend.
	Info() BackendInfo
}

// BackendInfo contains metadata about an encoder backend.
type BackendInfo struct {
	Name      string // backend name (e.g. "speechbrain-http", "mock")
	Model     string // model identifier (e.g. "spkrec-ecapa-voxceleb")
	Dimension int    // fingerprint dimension (e.g. 192 for ECAPA)
}
