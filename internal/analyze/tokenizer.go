package analyze

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minTokenRunes is the minimum rune length for a fragment to become a token.
const minTokenRunes = 2

var nonAlnumRuns = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Analyzer tokenizes and classifies query text against a set of wordlists.
type Analyzer struct {
	words *Wordlists
}

// NewAnalyzer returns an analyzer backed by the given wordlists.
func NewAnalyzer(words *Wordlists) *Analyzer {
	return &Analyzer{words: words}
}

// Wordlists returns the analyzer's wordlists, for runtime replacement.
func (a *Analyzer) Wordlists() *Wordlists {
	return a.words
}

// Tokenize splits raw input into normalized tokens: runs of non-letter/digit
// characters become separators, fragments are lower-cased, fragments shorter
// than two runes or on the stop-word list are dropped, and duplicates are
// removed preserving first-seen order. Empty input yields nil.
func (a *Analyzer) Tokenize(raw string) []string {
	sanitized := nonAlnumRuns.ReplaceAllString(raw, " ")

	var tokens []string
	seen := make(map[string]bool)
	for _, part := range strings.Fields(sanitized) {
		token := strings.ToLower(part)
		if utf8.RuneCountInString(token) < minTokenRunes {
			continue
		}
		if a.words.IsStopWord(token) {
			continue
		}
		if seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}
	return tokens
}
