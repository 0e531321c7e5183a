// Package textutil provides text processing utilities for bag-of-words vectorization.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var tokenizeRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// MinTokenRunes is the shortest token kept by Words.
const MinTokenRunes = 2

// Tokenize extracts word tokens from text (Unicode-aware, matching Python's (?u)\b\w+\b).
func Tokenize(text string) []string {
	return tokenizeRe.FindAllString(text, -1)
}

// Fold lower-cases text for vocabulary lookup.
func Fold(text string) string {
	// cases.Caser is stateful, so a fresh one is made per call.
	return cases.Lower(language.Und).String(text)
}

// IsWord reports whether a folded token is long enough and contains a letter.
func IsWord(token string) bool {
	if utf8.RuneCountInString(token) < MinTokenRunes {
		return false
	}
	for _, r := range token {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// Words tokenizes and folds text, keeping tokens that pass IsWord and are not in stop.
func Words(text string, stop map[string]bool) []string {
	tokens := Tokenize(Fold(text))
	words := tokens[:0]
	for _, t := range tokens {
		if !IsWord(t) || stop[t] {
			continue
		}
		words = append(words, t)
	}
	return words
}

var (
	newlineRe    = regexp.MustCompile(`[\n\r]`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// NormalizeWhitespaces replaces newlines and multiple whitespace with a single space.
func NormalizeWhitespaces(text string) string {
	text = newlineRe.ReplaceAllString(text, " ")
	return multiSpaceRe.ReplaceAllString(text, " ")
}

// NormalizeWord prepares a queried word for vocabulary lookup.
func NormalizeWord(word string) string {
	return Fold(strings.TrimSpace(word))
}
