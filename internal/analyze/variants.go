package analyze

import (
	"strings"
	"unicode/utf8"
)

var transliterator = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")

// Variants returns the spelling variants to match for a token: the trimmed
// token itself plus its ASCII transliteration (ä→ae, ö→oe, ü→ue, ß→ss) when it
// differs. Variants whose wildcard-stripped length is under two runes are
// filtered out; an empty or whitespace-only token yields nil and callers must
// fall back to the bare token.
func Variants(token string) []string {
	base := strings.TrimSpace(token)
	if base == "" {
		return nil
	}

	candidates := []string{base}
	if folded := transliterator.Replace(base); folded != base {
		candidates = append(candidates, folded)
	}

	var variants []string
	seen := make(map[string]bool)
	for _, v := range candidates {
		if seen[v] {
			continue
		}
		seen[v] = true
		clean := strings.NewReplacer("%", "", "_", "").Replace(v)
		if utf8.RuneCountInString(clean) < minTokenRunes {
			continue
		}
		variants = append(variants, v)
	}
	return variants
}
