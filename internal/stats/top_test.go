package stats

import (
	"testing"

	"github.com/verte-zerg/telaffuz/internal/model"
)

func TestTopPhonemesByFrequency(t *testing.T) {
	aggs := []model.PhonemeAggregate{
		{Vowel: "e", Correct: 3, Incorrect: 1},
		{Vowel: "a", Correct: 2, Incorrect: 2},
		{Vowel: "ü", Correct: 1, Incorrect: 0},
	}
	top := TopPhonemesByFrequency(aggs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 vowels, got %d", len(top))
	}
	if top[0] != "a" || top[1] != "e" {
		t.Fatalf("unexpected order: %v", top)
	}
}
