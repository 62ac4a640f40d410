// Package pronounce scores a spoken Turkish sentence against its target text.
//
// Words are aligned by position: target word i is compared with recognized
// word i and with the i-th equal slice of the recording. No forced alignment
// is performed, so a dropped or inserted word shifts every later pair. This is
// the main accuracy limitation of the analysis.
//
// The phonetic score is a heuristic. For every vowel of a word it measures how
// much of the chunk's spectral magnitude falls inside the vowel's expected
// frequency band relative to the whole spectrum. It is a cheap proxy for
// formant placement, not formant extraction.
package pronounce

// Band is a frequency range in Hz.
type Band struct {
	Low  float64
	High float64
}

// PhonemeProfile describes one Turkish vowel.
type PhonemeProfile struct {
	Symbol     rune
	Band       Band
	Confusable []rune
}

// IsConfusable reports whether r is commonly substituted for the profile's vowel.
func (p PhonemeProfile) IsConfusable(r rune) bool {
	for _, c := range p.Confusable {
		if c == r {
			return true
		}
	}
	return false
}

var phonemeOrder = []rune{'a', 'e', 'i', 'o', 'u', 'ü', 'ö', 'ı'}

var phonemeTable = map[rune]PhonemeProfile{
	'a': {Symbol: 'a', Band: Band{Low: 700, High: 1100}, Confusable: []rune{'e', 'ı'}},
	'e': {Symbol: 'e', Band: Band{Low: 500, High: 700}, Confusable: []rune{'i', 'a'}},
	'i': {Symbol: 'i', Band: Band{Low: 300, High: 500}, Confusable: []rune{'ı', 'e'}},
	'o': {Symbol: 'o', Band: Band{Low: 500, High: 900}, Confusable: []rune{'u', 'ö'}},
	'u': {Symbol: 'u', Band: Band{Low: 300, High: 500}, Confusable: []rune{'ü', 'o'}},
	'ü': {Symbol: 'ü', Band: Band{Low: 200, High: 400}, Confusable: []rune{'u', 'i'}},
	'ö': {Symbol: 'ö', Band: Band{Low: 400, High: 600}, Confusable: []rune{'o', 'u'}},
	'ı': {Symbol: 'ı', Band: Band{Low: 300, High: 500}, Confusable: []rune{'i', 'e'}},
}

// LookupPhoneme returns the profile for r, if r is a known vowel.
func LookupPhoneme(r rune) (PhonemeProfile, bool) {
	p, ok := phonemeTable[r]
	return p, ok
}

// Phonemes returns all profiles in table order. The returned slice is a copy.
func Phonemes() []PhonemeProfile {
	out := make([]PhonemeProfile, 0, len(phonemeOrder))
	for _, r := range phonemeOrder {
		p := phonemeTable[r]
		p.Confusable = append([]rune(nil), p.Confusable...)
		out = append(out, p)
	}
	return out
}

// IsVowel reports whether r has a phoneme profile.
func IsVowel(r rune) bool {
	_, ok := phonemeTable[r]
	return ok
}
