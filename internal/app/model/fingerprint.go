package model

// Fingerprint is a fixed-length voice embedding produced by an encoder
// backend. Fingerprints are never mutated in place, only recomputed.
type Fingerprint []float32

// Dimension returns the vector length.
func (f Fingerprint) Dimension() int {
	return len(f)
}

// Mean computes the element-wise mean of a set of fingerprints. All inputs
// must share the same dimension; the result is nil when the set is empty.
func Mean(fingerprints []Fingerprint) Fingerprint {
	if len(fingerprints) == 0 {
		return nil
	}

	dim := len(fingerprints[0])
	sum := make([]float64, dim)
	for _, fp := range fingerprints {
		for i, v := range fp {
			sum[i] += float64(v)
		}
	}

	mean := make(Fingerprint, dim)
	n := float64(len(fingerprints))
	for i := range sum {
		mean[i] = float32(sum[i] / n)
	}
	return mean
}
