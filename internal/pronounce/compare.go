package pronounce

import (
	"fmt"
	"math"

	"github.com/antzucaro/matchr"
)

// CorrectThreshold is the lexical similarity a word must exceed to count as
// correct. The phonetic score does not take part in this decision.
const CorrectThreshold = 0.8

// ErrorKind classifies why a word was judged incorrect.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorMissing
	ErrorLengthMismatch
	ErrorPhonemeConfusion
	ErrorUndetermined
)

var errorKindNames = map[ErrorKind]string{
	ErrorNone:             "",
	ErrorMissing:          "MISSING",
	ErrorLengthMismatch:   "LENGTH_MISMATCH",
	ErrorPhonemeConfusion: "PHONEME_CONFUSION",
	ErrorUndetermined:     "UNDETERMINED",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Confusion is a target vowel heard as another, similar vowel.
type Confusion struct {
	Target     rune
	Recognized rune
}

// MarshalText encodes the pair as "a>e".
func (c Confusion) MarshalText() ([]byte, error) {
	return []byte(string(c.Target) + ">" + string(c.Recognized)), nil
}

// WordRecord is the analysis of one target word.
type WordRecord struct {
	Target           string         `json:"target"`
	Recognized       string         `json:"recognized"`
	StringSimilarity float64        `json:"string_similarity"`
	PhoneticScore    float64        `json:"phonetic_score"`
	CombinedScore    float64        `json:"combined_score"`
	Correct          bool           `json:"correct"`
	EditDistance     int            `json:"edit_distance"`
	Error            ErrorKind      `json:"error,omitempty"`
	Confusions       []Confusion    `json:"confusions,omitempty"`
	Phonemes         []PhonemeScore `json:"-"`
}

// CompareWord scores target against recognized and against the audio chunk
// assumed to hold the word.
func CompareWord(target, recognized string, chunk []float64, sampleRate int) WordRecord {
	similarity := Similarity(target, recognized)
	phonemes := ScorePhonemes(target, chunk, sampleRate)
	phonetic := meanPhonemeScore(phonemes)

	rec := WordRecord{
		Target:           target,
		Recognized:       recognized,
		StringSimilarity: similarity,
		PhoneticScore:    phonetic,
		CombinedScore:    clampUnit((similarity + phonetic) / 2),
		Correct:          similarity > CorrectThreshold,
		EditDistance:     matchr.Levenshtein(target, recognized),
		Phonemes:         phonemes,
	}
	if !rec.Correct {
		rec.Error, rec.Confusions = ClassifyError(target, recognized)
	}
	return rec
}

// ClassifyError explains a mismatch between target and recognized. It does
// not look at similarity; CompareWord only calls it for incorrect words.
func ClassifyError(target, recognized string) (ErrorKind, []Confusion) {
	if recognized == "" {
		return ErrorMissing, nil
	}
	tr := []rune(target)
	rr := []rune(recognized)
	if len(tr) != len(rr) {
		return ErrorLengthMismatch, nil
	}
	var pairs []Confusion
	for i := range tr {
		if tr[i] == rr[i] {
			continue
		}
		profile, ok := LookupPhoneme(tr[i])
		if ok && profile.IsConfusable(rr[i]) {
			pairs = append(pairs, Confusion{Target: tr[i], Recognized: rr[i]})
		}
	}
	if len(pairs) > 0 {
		return ErrorPhonemeConfusion, pairs
	}
	return ErrorUndetermined, nil
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
