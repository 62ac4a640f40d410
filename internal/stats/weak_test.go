package stats

import (
	"testing"

	"github.com/verte-zerg/telaffuz/internal/model"
)

func TestSelectWeakPhonemes(t *testing.T) {
	aggs := []model.PhonemeAggregate{
		{Vowel: "a", Correct: 9, Incorrect: 1},
		{Vowel: "ı", Correct: 1, Incorrect: 3},
		{Vowel: "ö", Correct: 2, Incorrect: 2},
		{Vowel: "e", Correct: 5, Incorrect: 0},
	}
	weak := SelectWeakPhonemes(aggs, 2)
	if len(weak) != 2 {
		t.Fatalf("expected 2 weak vowels, got %v", weak)
	}
	for _, r := range []rune{'ı', 'ö'} {
		if _, ok := weak[r]; !ok {
			t.Fatalf("expected %q to be weak, got %v", r, weak)
		}
	}

	all := SelectWeakPhonemes(aggs, 0)
	if _, ok := all['e']; ok {
		t.Fatalf("vowel without mistakes should not be weak")
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 weak vowels, got %v", all)
	}
	if len(SelectWeakPhonemes(nil, 3)) != 0 {
		t.Fatalf("expected empty set for no data")
	}
}
