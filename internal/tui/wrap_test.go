package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/telaffuz/internal/pronounce"
)

func TestBuildTargetRunesHighlightsWeakVowels(t *testing.T) {
	runes := buildTargetRunes([]string{"göz", "el"}, map[rune]struct{}{'ö': {}})
	if len(runes) != 6 {
		t.Fatalf("expected 6 runes, got %d", len(runes))
	}
	if runes[0].s != pendingStyle.Render("g") {
		t.Fatalf("expected pending style for consonant")
	}
	if runes[1].s != weakVowelStyle.Render("ö") {
		t.Fatalf("expected weak vowel style for ö")
	}
	if !runes[3].isSpace || runes[3].s != " " {
		t.Fatalf("expected separator space between words")
	}
	if runes[4].s != pendingStyle.Render("e") {
		t.Fatalf("expected pending style for vowel that is not weak")
	}
}

func TestBuildResultRunesByVerdict(t *testing.T) {
	records := []pronounce.WordRecord{
		{Target: "kedi", Correct: true},
		{Target: "bal", Error: pronounce.ErrorPhonemeConfusion},
		{Target: "su", Error: pronounce.ErrorMissing},
	}
	runes := buildResultRunes(records)
	if runes[0].s != correctStyle.Render("k") {
		t.Fatalf("expected correct style for first word")
	}
	if runes[5].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style for second word")
	}
	if runes[9].s != missingStyle.Render("s") {
		t.Fatalf("expected missing style for third word")
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	runes := buildTargetRunes([]string{"kitap", "defter", "kalem"}, nil)
	out := wrapStyledRunes(runes, 12)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", lines)
	}
	// The break happens at the last space seen before overflowing.
	if lines[0] != renderStyledRunes(runes[:5]) {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if lines[1] != renderStyledRunes(runes[6:]) {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}

func TestWrapStyledRunesSplitsLongWord(t *testing.T) {
	runes := buildTargetRunes([]string{"çekoslovakyalılaştıramadıklarımızdan"}, nil)
	out := wrapStyledRunes(runes, 10)
	for _, line := range strings.Split(out, "\n") {
		if w := len([]rune(line)); w > 10 {
			t.Fatalf("line wider than 10: %q", line)
		}
	}
	if wrapStyledRunes(runes, 0) != renderStyledRunes(runes) {
		t.Fatalf("width 0 should disable wrapping")
	}
}
