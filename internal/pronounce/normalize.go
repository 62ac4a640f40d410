package pronounce

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize lowercases text with Turkish casing rules, drops every rune that is
// neither a letter, a number nor whitespace, and splits the rest into words.
func Normalize(text string) []string {
	if text == "" {
		return nil
	}
	lowered := cases.Lower(language.Turkish).String(text)
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, lowered)
	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return nil
	}
	return words
}
