package sentences

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/telaffuz/internal/pronounce"
)

// Picker chooses practice sentences.
type Picker struct {
	rnd  *rand.Rand
	last int
}

// NewPicker returns a Picker seeded with the current time.
func NewPicker() *Picker {
	return NewPickerWithSeed(time.Now().UnixNano())
}

// NewPickerWithSeed returns a deterministic Picker.
func NewPickerWithSeed(seed int64) *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(seed)), last: -1}
}

// Next selects a sentence uniformly, avoiding an immediate repeat when the
// list has more than one entry.
func (p *Picker) Next(list []string) string {
	return p.NextWeighted(list, nil, 0)
}

// NextWeighted selects a sentence with a bias toward sentences containing
// weak vowels. Each weak vowel occurrence adds factor to the sentence weight.
func (p *Picker) NextWeighted(list []string, weakSet map[rune]struct{}, factor float64) string {
	if len(list) == 0 {
		return ""
	}
	if len(list) == 1 {
		p.last = 0
		return list[0]
	}
	weights := Weights(list, weakSet, factor)
	if p.last >= 0 && p.last < len(weights) {
		weights[p.last] = 0
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}

	r := p.rnd.Float64() * total
	acc := 0.0
	idx := -1
	for j, w := range weights {
		if w == 0 {
			continue
		}
		idx = j
		acc += w
		if r < acc {
			break
		}
	}
	p.last = idx
	return list[idx]
}

// Weights returns the selection weight of every sentence.
func Weights(list []string, weakSet map[rune]struct{}, factor float64) []float64 {
	weights := make([]float64, len(list))
	for i, sentence := range list {
		weakCount := 0
		if factor > 0 && len(weakSet) > 0 {
			for _, word := range pronounce.Normalize(sentence) {
				for _, r := range word {
					if _, ok := weakSet[r]; ok {
						weakCount++
					}
				}
			}
		}
		weights[i] = 1.0 + float64(weakCount)*factor
	}
	return weights
}
