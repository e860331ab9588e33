package search

import (
	"testing"

	"github.com/iamerkut/search/internal/models"
)

func TestEntityURL(t *testing.T) {
	tests := []struct {
		name string
		kind models.Kind
		id   int64
		slug string
		want string
	}{
		{"product slug", models.KindProduct, 1, "bmw-i3-sitzbezug-set", "/bmw-i3-sitzbezug-set"},
		{"slug with leading slash", models.KindProduct, 1, "/bmw-i3", "/bmw-i3"},
		{"product fallback", models.KindProduct, 42, "", "/index.php?a=42"},
		{"category fallback", models.KindCategory, 7, "", "/kategorie.php?k=7"},
		{"manufacturer fallback", models.KindManufacturer, 9, "", "/hersteller.php?h=9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entityURL(tt.kind, tt.id, tt.slug); got != tt.want {
				t.Errorf("entityURL(%s, %d, %q) = %q, want %q", tt.kind, tt.id, tt.slug, got, tt.want)
			}
		})
	}
}
