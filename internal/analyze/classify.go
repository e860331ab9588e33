package analyze

import (
	"unicode"
	"unicode/utf8"
)

// primaryMinRunes is the minimum rune length for a plain word to count as primary.
const primaryMinRunes = 3

// TokenClass tiers tokens by search signal.
type TokenClass int

const (
	// Primary tokens (numerics, brand/model keywords, longer words) form the
	// mandatory part of a product match.
	Primary TokenClass = iota
	// Secondary tokens (short filler) only narrow an already-matching result.
	Secondary
)

// Classify returns the class of a normalized token. A token is primary when it
// is purely numeric, a brand/model keyword, or at least three runes long and
// not a stop word; everything else is secondary.
func (a *Analyzer) Classify(token string) TokenClass {
	if isNumeric(token) {
		return Primary
	}
	if a.words.IsBrandKeyword(token) {
		return Primary
	}
	if utf8.RuneCountInString(token) >= primaryMinRunes && !a.words.IsStopWord(token) {
		return Primary
	}
	return Secondary
}

// Split partitions tokens into primary and secondary sets, preserving order.
func (a *Analyzer) Split(tokens []string) (primary, secondary []string) {
	for _, token := range tokens {
		if a.Classify(token) == Primary {
			primary = append(primary, token)
		} else {
			secondary = append(secondary, token)
		}
	}
	return primary, secondary
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
