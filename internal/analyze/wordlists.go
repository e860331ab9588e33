// Package analyze turns raw query text into normalized, classified tokens and
// their spelling variants.
package analyze

import (
	"strings"
	"sync"
)

// defaultStopWords is the built-in German stop-word list: prepositions, color
// names, and generic product words that carry no search signal.
var defaultStopWords = []string{
	"für", "fuer", "der", "die", "das", "und", "oder", "im", "in", "an", "am", "auf", "aus",
	"mit", "ohne", "von", "vom", "zum", "zur", "ab", "bis", "bj", "baujahr", "premium",
	"set", "komplettset", "schonbezüge", "schonbezuege", "farbe", "farben", "braun",
	"beige", "schwarz", "grau", "rot", "blau", "weiß", "weiss", "inkl", "kpl", "paket",
}

// defaultBrandKeywords is the built-in brand/model keyword list. Matching
// tokens are always classified as primary regardless of length.
var defaultBrandKeywords = []string{
	"bmw", "audi", "mercedes", "vw", "volkswagen", "i5", "i3", "e81", "fs5", "ot404", "ot405",
}

// Wordlists holds the stop-word and brand-keyword sets. Both can be replaced at
// runtime (config reload); reads and swaps are safe for concurrent use.
type Wordlists struct {
	mu       sync.RWMutex
	stop     map[string]bool
	keywords map[string]bool
}

// NewWordlists returns wordlists populated with the built-in defaults.
// Non-empty overrides replace the corresponding built-in list.
func NewWordlists(stopWords, brandKeywords []string) *Wordlists {
	w := &Wordlists{}
	w.Replace(stopWords, brandKeywords)
	return w
}

// Replace swaps in new lists. An empty or nil list restores the built-in default.
func (w *Wordlists) Replace(stopWords, brandKeywords []string) {
	if len(stopWords) == 0 {
		stopWords = defaultStopWords
	}
	if len(brandKeywords) == 0 {
		brandKeywords = defaultBrandKeywords
	}
	stop := make(map[string]bool, len(stopWords))
	for _, word := range stopWords {
		stop[strings.ToLower(word)] = true
	}
	keywords := make(map[string]bool, len(brandKeywords))
	for _, word := range brandKeywords {
		keywords[strings.ToLower(word)] = true
	}

	w.mu.Lock()
	w.stop = stop
	w.keywords = keywords
	w.mu.Unlock()
}

// IsStopWord reports whether the lower-cased token is a stop word.
func (w *Wordlists) IsStopWord(token string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stop[token]
}

// IsBrandKeyword reports whether the lower-cased token is a brand/model keyword.
func (w *Wordlists) IsBrandKeyword(token string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.keywords[token]
}
