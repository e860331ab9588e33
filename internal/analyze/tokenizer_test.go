package analyze

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(NewWordlists(nil, nil))
}

func TestTokenize(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"stop words and fragments removed", "Schonbezüge für BMW i3", []string{"bmw", "i3"}},
		{"punctuation becomes separators", "bmw-i3, (sitzbezug)!", []string{"bmw", "i3", "sitzbezug"}},
		{"duplicates removed preserving order", "golf Golf GOLF polo", []string{"golf", "polo"}},
		{"short fragments dropped", "a b sitzbezug", []string{"sitzbezug"}},
		{"empty input", "", nil},
		{"only stop words", "für und oder", nil},
		{"umlauts preserved", "Kofferraumwanne Grün", []string{"kofferraumwanne", "grün"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeInvariants(t *testing.T) {
	a := newTestAnalyzer()
	inputs := []string{
		"BMW i3 Sitzbezug Set", "für für für", "123 ab-cd  ef", "ä ö ü ß", "Schonbezüge, Premium!",
	}
	for _, input := range inputs {
		tokens := a.Tokenize(input)
		seen := make(map[string]bool)
		for _, token := range tokens {
			if utf8.RuneCountInString(token) < 2 {
				t.Errorf("token %q shorter than 2 runes (input %q)", token, input)
			}
			if token != strings.ToLower(token) {
				t.Errorf("token %q not lower-case (input %q)", token, input)
			}
			if a.words.IsStopWord(token) {
				t.Errorf("stop word %q survived (input %q)", token, input)
			}
			if seen[token] {
				t.Errorf("duplicate token %q (input %q)", token, input)
			}
			seen[token] = true
		}
	}
}

func TestTokenizeWordlistOverride(t *testing.T) {
	a := NewAnalyzer(NewWordlists([]string{"sitzbezug"}, nil))
	got := a.Tokenize("bmw sitzbezug für")
	// "für" is no longer a stop word once the list is overridden.
	want := []string{"bmw", "für"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize with override = %v, want %v", got, want)
	}
}
