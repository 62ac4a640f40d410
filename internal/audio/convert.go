package audio

import (
	"encoding/binary"
	"math"
)

// Resample converts samples from srcRate to dstRate using linear
// interpolation. Equal or invalid rates return the input unchanged.
func Resample(samples []float64, srcRate, dstRate int) []float64 {
	if srcRate <= 0 || dstRate <= 0 || srcRate == dstRate || len(samples) == 0 {
		return samples
	}
	n := int(int64(len(samples)) * int64(dstRate) / int64(srcRate))
	if n == 0 {
		return nil
	}
	out := make([]float64, n)
	ratio := float64(srcRate) / float64(dstRate)
	for i := range out {
		pos := float64(i) * ratio
		idx := int(pos)
		frac := pos - float64(idx)
		s0 := samples[idx]
		s1 := s0
		if idx+1 < len(samples) {
			s1 = samples[idx+1]
		}
		out[i] = s0*(1-frac) + s1*frac
	}
	return out
}

// PCM16 encodes samples as little-endian signed 16-bit PCM.
func PCM16(samples []float64) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(floatToInt16(s)))
	}
	return out
}

// Float32To64 widens recorder samples for analysis.
func Float32To64(samples []float32) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s)
	}
	return out
}

func floatToInt16(s float64) int16 {
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	return int16(math.Round(s * math.MaxInt16))
}

// Normalize scales samples so the peak magnitude is 1. Silent input is
// returned unchanged.
func Normalize(samples []float64) []float64 {
	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s))
	}
	if peak <= math.SmallestNonzeroFloat64 || math.IsInf(peak, 0) || math.IsNaN(peak) {
		return samples
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s / peak
	}
	return out
}

// Noise gate parameters.
const (
	gateTopDB       = 20.0
	gateFrameLength = 2048
	gateHopLength   = 512
	gateMinInterval = 2048
	gateThreshold   = 1.2
	gateAttenuation = 0.1
)

// ReduceNoise attenuates quiet samples by 10x. The threshold is 1.2 times the
// signed mean of all samples inside non-silent intervals longer than one
// frame. Without such intervals the input is returned unchanged.
func ReduceNoise(samples []float64) []float64 {
	var sum float64
	var count int
	for _, iv := range NonSilentIntervals(samples, gateTopDB, gateFrameLength, gateHopLength) {
		if iv[1]-iv[0] <= gateMinInterval {
			continue
		}
		for _, s := range samples[iv[0]:iv[1]] {
			sum += s
		}
		count += iv[1] - iv[0]
	}
	if count == 0 {
		return samples
	}
	threshold := sum / float64(count) * gateThreshold
	out := make([]float64, len(samples))
	for i, s := range samples {
		if math.Abs(s) > threshold {
			out[i] = s
		} else {
			out[i] = s * gateAttenuation
		}
	}
	return out
}

// NonSilentIntervals returns [start, end) sample ranges whose frame RMS is
// within topDB decibels of the loudest frame. Frames are centered and
// zero-padded by half a frame on both sides.
func NonSilentIntervals(samples []float64, topDB float64, frameLength, hopLength int) [][2]int {
	if len(samples) == 0 || frameLength <= 0 || hopLength <= 0 {
		return nil
	}
	db := frameDecibels(samples, frameLength, hopLength)

	var intervals [][2]int
	start := -1
	for f, v := range db {
		loud := v > -topDB
		switch {
		case loud && start < 0:
			start = f
		case !loud && start >= 0:
			intervals = append(intervals, frameInterval(start, f, hopLength, len(samples)))
			start = -1
		}
	}
	if start >= 0 {
		intervals = append(intervals, frameInterval(start, len(db), hopLength, len(samples)))
	}
	return intervals
}

func frameInterval(startFrame, endFrame, hopLength, n int) [2]int {
	return [2]int{min(startFrame*hopLength, n), min(endFrame*hopLength, n)}
}

// frameDecibels returns each frame's power in dB relative to the loudest
// frame, with power floored at 1e-10.
func frameDecibels(samples []float64, frameLength, hopLength int) []float64 {
	const amin = 1e-10
	padded := make([]float64, len(samples)+frameLength)
	copy(padded[frameLength/2:], samples)
	frames := 1 + len(samples)/hopLength

	power := make([]float64, frames)
	peak := 0.0
	for f := range power {
		start := f * hopLength
		var sq float64
		for _, s := range padded[start : start+frameLength] {
			sq += s * s
		}
		power[f] = sq / float64(frameLength)
		peak = math.Max(peak, power[f])
	}
	ref := 10 * math.Log10(math.Max(amin, peak))
	db := make([]float64, frames)
	for f, p := range power {
		db[f] = 10*math.Log10(math.Max(amin, p)) - ref
	}
	return db
}
