// Package kana maps katakana to hiragana so that listing text stored in either
// script matches a query typed in the other.
package kana

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	katakanaFirst = 'ァ' // U+30A1
	katakanaLast  = 'ン' // U+30F3
	hiraganaShift = 0x60
)

// toHiragana shifts the katakana block ァ..ン onto its hiragana counterpart.
// Prolonged sound marks, ヴ and small ヵ/ヶ fall outside the range and are kept.
var toHiragana = runes.Map(func(r rune) rune {
	if r >= katakanaFirst && r <= katakanaLast {
		return r - hiraganaShift
	}
	return r
})

// Transformer returns a transformer that applies the katakana-to-hiragana mapping.
// It can be chained with other x/text transformers.
func Transformer() transform.Transformer {
	return toHiragana
}

// ToHiragana converts every katakana rune in s to hiragana.
func ToHiragana(s string) string {
	if s == "" {
		return ""
	}
	out, _, err := transform.String(toHiragana, s)
	if err != nil {
		return s
	}
	return out
}

// Contains reports whether query occurs in field once both are normalized.
func Contains(field, query string) bool {
	return strings.Contains(ToHiragana(field), ToHiragana(query))
}
