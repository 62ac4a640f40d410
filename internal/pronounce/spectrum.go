package pronounce

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	frameSize = 2048
	hopSize   = 512
	binCount  = frameSize/2 + 1
)

var hannWindow = periodicHann(frameSize)

// spectrogram keeps the per-bin magnitude of a chunk summed over all frames.
// Band means only need these sums, so individual frames are not kept.
type spectrogram struct {
	sampleRate int
	frames     int
	binSums    []float64
	total      float64
}

// newSpectrogram runs a centered short-time Fourier transform over chunk.
// The chunk is zero-padded by half a frame on both sides.
func newSpectrogram(chunk []float64, sampleRate int) *spectrogram {
	s := &spectrogram{
		sampleRate: sampleRate,
		binSums:    make([]float64, binCount),
	}
	if len(chunk) == 0 {
		return s
	}
	padded := make([]float64, len(chunk)+frameSize)
	copy(padded[frameSize/2:], chunk)

	s.frames = 1 + len(chunk)/hopSize
	fft := fourier.NewFFT(frameSize)
	frame := make([]float64, frameSize)
	coeffs := make([]complex128, binCount)
	for f := 0; f < s.frames; f++ {
		start := f * hopSize
		for i := 0; i < frameSize; i++ {
			frame[i] = padded[start+i] * hannWindow[i]
		}
		coeffs = fft.Coefficients(coeffs, frame)
		for k, c := range coeffs {
			s.binSums[k] += cmplx.Abs(c)
		}
	}
	for _, v := range s.binSums {
		s.total += v
	}
	return s
}

// binFrequency returns the center frequency of bin k in Hz.
func (s *spectrogram) binFrequency(k int) float64 {
	return float64(k) * float64(s.sampleRate) / frameSize
}

// searchBin returns the first bin whose frequency is >= hz.
func (s *spectrogram) searchBin(hz float64) int {
	for k := 0; k < binCount; k++ {
		if s.binFrequency(k) >= hz {
			return k
		}
	}
	return binCount
}

// bandRatio returns the mean magnitude inside band divided by the mean
// magnitude over the whole spectrum, capped at 1. ok is false when the ratio
// is undefined: no frames, silence, or no bins inside the band.
func (s *spectrogram) bandRatio(band Band) (ratio float64, ok bool) {
	if s.frames == 0 || s.sampleRate <= 0 || s.total <= 0 {
		return 0, false
	}
	lower := s.searchBin(band.Low)
	upper := s.searchBin(band.High)
	if upper <= lower {
		return 0, false
	}
	var inBand float64
	for k := lower; k < upper; k++ {
		inBand += s.binSums[k]
	}
	bandMean := inBand / float64((upper-lower)*s.frames)
	overallMean := s.total / float64(binCount*s.frames)
	ratio = bandMean / overallMean
	if math.IsNaN(ratio) {
		return 0, false
	}
	return math.Min(1.0, ratio), true
}

func periodicHann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}
