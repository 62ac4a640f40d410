package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/telaffuz/internal/pronounce"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildTargetRunes renders the sentence to read, highlighting weak vowels.
func buildTargetRunes(words []string, weakSet map[rune]struct{}) []styledRune {
	return buildWordRunes(words, func(_ int, r rune) lipgloss.Style {
		if _, ok := weakSet[r]; ok {
			return weakVowelStyle
		}
		return pendingStyle
	})
}

// buildResultRunes renders the analyzed words colored by their verdict.
func buildResultRunes(records []pronounce.WordRecord) []styledRune {
	words := make([]string, len(records))
	for i, rec := range records {
		words[i] = rec.Target
	}
	return buildWordRunes(words, func(i int, _ rune) lipgloss.Style {
		rec := records[i]
		switch {
		case rec.Correct:
			return correctStyle
		case rec.Error == pronounce.ErrorMissing:
			return missingStyle
		default:
			return incorrectStyle
		}
	})
}

func buildWordRunes(words []string, styleFor func(word int, r rune) lipgloss.Style) []styledRune {
	out := []styledRune{}
	for i, word := range words {
		if i > 0 {
			out = append(out, styledRune{s: " ", width: 1, isSpace: true})
		}
		for _, r := range word {
			out = append(out, styledRune{
				s:     styleFor(i, r).Render(string(r)),
				width: runewidth.RuneWidth(r),
			})
		}
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
