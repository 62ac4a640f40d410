package pronounce

// NeutralScore is used when a phonetic score cannot be computed.
const NeutralScore = 0.5

// PhonemeScore is the band-energy score of one vowel occurrence.
type PhonemeScore struct {
	Symbol rune
	Score  float64
}

// ScorePhonemes scores every profiled vowel of word against chunk, in word
// order. Runes without a profile are skipped. A vowel whose band ratio is
// undefined gets NeutralScore.
func ScorePhonemes(word string, chunk []float64, sampleRate int) []PhonemeScore {
	var scores []PhonemeScore
	var spec *spectrogram
	for _, r := range word {
		profile, ok := LookupPhoneme(r)
		if !ok {
			continue
		}
		if spec == nil {
			spec = newSpectrogram(chunk, sampleRate)
		}
		score, ok := spec.bandRatio(profile.Band)
		if !ok {
			score = NeutralScore
		}
		scores = append(scores, PhonemeScore{Symbol: r, Score: score})
	}
	return scores
}

// PhoneticScore is the mean of ScorePhonemes, or NeutralScore when the word
// has no profiled vowels.
func PhoneticScore(word string, chunk []float64, sampleRate int) float64 {
	return meanPhonemeScore(ScorePhonemes(word, chunk, sampleRate))
}

func meanPhonemeScore(scores []PhonemeScore) float64 {
	if len(scores) == 0 {
		return NeutralScore
	}
	var sum float64
	for _, s := range scores {
		sum += s.Score
	}
	return sum / float64(len(scores))
}
