// Package e2e provides end-to-end tests over a seeded shop catalog.
package e2e

import (
	"github.com/iamerkut/search/internal/models"
)

// QueryTestCase defines a query and the result labels it must return, in order.
type QueryTestCase struct {
	Query          string
	ExpectedLabels []string
	Description    string
}

// Corpus holds catalog records and query test cases for the end-to-end suite.
type Corpus struct {
	Products      []models.ProductRecord
	Categories    []models.CategoryRecord
	Manufacturers []models.ManufacturerRecord
	TestCases     []QueryTestCase
}

// BuildCorpus returns a small shop catalog with German names, umlauts,
// slugged and slugless records, plus query cases asserting exact result sets.
func BuildCorpus() *Corpus {
	return &Corpus{
		Products: []models.ProductRecord{
			{Name: "BMW i3 Sitzbezug Set", ArticleNumber: "OT404", SearchKeywords: "schonbezuege sitzbezuege", Slug: "bmw-i3-sitzbezug-set"},
			{Name: "BMW E81 Fußmatten Velours", ArticleNumber: "OT405", SearchKeywords: "fussmatten matten", Slug: "bmw-e81-fussmatten-velours"},
			{Name: "Audi A4 Kofferraumwanne", ArticleNumber: "AU100", SearchKeywords: "wanne laderaum", Slug: "audi-a4-kofferraumwanne"},
			{Name: "Mercedes Sprinter Sitzbezug", ArticleNumber: "MB200", SearchKeywords: "schonbezuege"},
			{Name: "Universal Fußmatten Gummi", ArticleNumber: "UN300", Slug: "universal-fussmatten-gummi"},
		},
		Categories: []models.CategoryRecord{
			{Name: "Sitzbezüge", Slug: "sitzbezuege"},
			{Name: "Fußmatten", Slug: "fussmatten"},
		},
		Manufacturers: []models.ManufacturerRecord{
			{Name: "BMW", Slug: "bmw"},
			{Name: "Audi", Slug: "audi"},
			{Name: "Mercedes"},
		},
		TestCases: []QueryTestCase{
			{
				Query:          "bmw i3 sitzbezug",
				ExpectedLabels: []string{"BMW i3 Sitzbezug Set"},
				Description:    "all tokens must match the same product",
			},
			{
				Query:          "fußmatten",
				ExpectedLabels: []string{"BMW E81 Fußmatten Velours", "Universal Fußmatten Gummi", "Fußmatten"},
				Description:    "umlaut token matches names directly and keywords through its variant",
			},
			{
				Query:          "sitzbezüge",
				ExpectedLabels: []string{"BMW i3 Sitzbezug Set", "Sitzbezüge"},
				Description:    "transliterated variant reaches keyword-only products",
			},
			{
				Query:          "sprinter",
				ExpectedLabels: []string{"Mercedes Sprinter Sitzbezug"},
				Description:    "single token product match without a slug",
			},
			{
				Query:          "bmw",
				ExpectedLabels: []string{"BMW E81 Fußmatten Velours", "BMW i3 Sitzbezug Set", "BMW"},
				Description:    "brand token returns products then the manufacturer",
			},
		},
	}
}
