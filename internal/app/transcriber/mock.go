package transcriber

import (
	"context"

	"github.com/P0llen/speaker-detector/internal/app/model"
)

// MockTranscriber returns a fixed transcript, or a fixed error, for tests.
type MockTranscriber struct {
	Transcript *model.Transcript
	Err        error

	// Calls records the audio paths the mock was invoked with.
	Calls []string
}

// Transcribe returns the configured transcript or error.
func (m *MockTranscriber) Transcribe(ctx context.Context, audioPath string) (*model.Transcript, error) {
	m.Calls = append(m.Calls, audioPath)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Transcript, nil
}
