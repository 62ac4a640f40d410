package tui

import (
	"strings"
	"testing"
)

func TestRenderFooterFormats(t *testing.T) {
	m := &Model{
		hasLast:   true,
		lastScore: 0.724,
		allScore:  0.681,
		allCount:  12,
		weakSet:   map[rune]struct{}{'ı': {}, 'ö': {}},
	}
	out := m.renderFooter()
	if !containsAll(out, []string{"Last 72.4%", "All-time 68.1% · 12 takes", "Focus öı", "enter record"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRenderFooterWithoutHistory(t *testing.T) {
	m := &Model{}
	out := m.renderFooter()
	if strings.Contains(out, "Last") || strings.Contains(out, "All-time") {
		t.Fatalf("unexpected history in footer: %s", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
