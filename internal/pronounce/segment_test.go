package pronounce

import (
	"errors"
	"testing"
)

func TestSegmentEqualChunksWithRemainder(t *testing.T) {
	samples := make([]float64, 10)
	for i := range samples {
		samples[i] = float64(i)
	}
	chunks, err := Segment(samples, 3)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	wantLens := []int{3, 3, 4}
	for i, chunk := range chunks {
		if len(chunk) != wantLens[i] {
			t.Fatalf("expected chunk %d to have %d samples, got %d", i, wantLens[i], len(chunk))
		}
	}
	if chunks[1][0] != 3 || chunks[2][3] != 9 {
		t.Fatalf("chunks are not contiguous: %v", chunks)
	}
}

func TestSegmentCountAndCoverage(t *testing.T) {
	for total := 0; total < 40; total++ {
		samples := make([]float64, total)
		for n := 1; n <= 12; n++ {
			chunks, err := Segment(samples, n)
			if err != nil {
				t.Fatalf("Segment(%d, %d) failed: %v", total, n, err)
			}
			if len(chunks) != n {
				t.Fatalf("Segment(%d, %d): expected %d chunks, got %d", total, n, n, len(chunks))
			}
			sum := 0
			for _, c := range chunks {
				sum += len(c)
			}
			if sum < total-n+1 || sum > total {
				t.Fatalf("Segment(%d, %d): chunk lengths sum to %d", total, n, sum)
			}
		}
	}
}

func TestSegmentZeroIsDegenerate(t *testing.T) {
	chunks, err := Segment(make([]float64, 100), 0)
	if !errors.Is(err, ErrDegenerateInput) {
		t.Fatalf("expected ErrDegenerateInput, got %v", err)
	}
	if chunks != nil {
		t.Fatalf("expected no chunks, got %d", len(chunks))
	}
	var analysisErr *AnalysisError
	if !errors.As(err, &analysisErr) || analysisErr.Kind != DegenerateInput {
		t.Fatalf("expected a DegenerateInput analysis error, got %#v", err)
	}
	if errors.Is(err, ErrAudioLoad) {
		t.Fatalf("degenerate input must not match ErrAudioLoad")
	}
}

func TestSegmentChunksDoNotOverlapOnAppend(t *testing.T) {
	samples := []float64{1, 2, 3, 4}
	chunks, err := Segment(samples, 2)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	_ = append(chunks[0], 99)
	if samples[2] != 3 {
		t.Fatalf("appending to a chunk overwrote the next chunk")
	}
}
