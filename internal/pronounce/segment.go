package pronounce

import "fmt"

// Segment splits samples into n contiguous chunks of len(samples)/n samples.
// The last chunk also takes the remainder. Chunks share the input's backing
// array. n <= 0 yields an *AnalysisError matching ErrDegenerateInput.
func Segment(samples []float64, n int) ([][]float64, error) {
	if n <= 0 {
		return nil, &AnalysisError{Kind: DegenerateInput, Err: fmt.Errorf("cannot split into %d chunks", n)}
	}
	size := len(samples) / n
	chunks := make([][]float64, n)
	for i := 0; i < n; i++ {
		start := i * size
		end := start + size
		if i == n-1 {
			end = len(samples)
		}
		chunks[i] = samples[start:end:end]
	}
	return chunks, nil
}
