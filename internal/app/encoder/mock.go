package encoder

import (
	"context"
	"crypto/sha256"
	"os"

	"github.com/P0llen/speaker-detector/internal/app/apperrors"
	"github.com/P0llen/speaker-detector/internal/app/model"
)

// MockEncoder is a deterministic in-process encoder for tests and offline
// runs. The fingerprint is derived from a SHA256 hash of the audio bytes, so
// bit-identical audio always gets the same fingerprint.
type MockEncoder struct {
	dimension int
}

// NewMockEncoder creates a mock encoder with the specified dimension.
func NewMockEncoder(dimension int) *MockEncoder {
	return &MockEncoder{dimension: dimension}
}

// Encode hashes the file content into a deterministic fingerprint.
func (m *MockEncoder) Encode(ctx context.Context, audioPath string) (model.Fingerprint, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidAudio, "unreadable audio %s: %v", audioPath, err)
	}
	if len(data) == 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidAudio, "empty audio %s", audioPath)
	}

	hash := sha256.Sum256(data)
	fingerprint := make(model.Fingerprint, m.dimension)

	// Map hash bytes to float32 values in range [-1, 1]
	for i := 0; i < m.dimension; i++ {
		byteIndex := i % len(hash)
		fingerprint[i] = (float32(hash[byteIndex])/255.0)*2 - 1
	}

	return fingerprint, nil
}

// Info returns mock backend information.
func (m *MockEncoder) Info() BackendInfo {
	return BackendInfo{
		Name:      "mock",
		Model:     "mock-model",
		Dimension: m.dimension,
	}
}
