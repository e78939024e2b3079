package similarity

import (
	"errors"
	"math"

	"github.com/P0llen/speaker-detector/internal/app/model"
)

// ErrDimensionMismatch is returned when two fingerprints cannot be compared.
var ErrDimensionMismatch = errors.New("fingerprints must have same dimension")

// Cosine computes the cosine similarity between two fingerprints. The result
// is in [-1, 1]; zero vectors compare as 0.
func Cosine(a, b model.Fingerprint) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	if len(a) == 0 {
		return 0, nil
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	// Handle zero vectors
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Round3 rounds a score to 3 decimal places, the precision reported by the
// identification engine.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
