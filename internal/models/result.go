// Package models defines the wire and domain types for storefront search.
package models

// Kind identifies the entity kind of a search result.
type Kind string

const (
	KindProduct      Kind = "product"
	KindCategory     Kind = "category"
	KindManufacturer Kind = "manufacturer"
)

// Kinds lists all entity kinds in response priority order.
var Kinds = []Kind{KindProduct, KindCategory, KindManufacturer}

// EntityRow is a raw store row for one entity, before URL assembly.
type EntityRow struct {
	ID    int64
	Label string
}

// SearchResult is one typed hit in the autocomplete response.
type SearchResult struct {
	Type  Kind   `json:"type"`
	ID    int64  `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Counts holds per-kind result counts for the response meta block.
type Counts struct {
	Product      int `json:"product"`
	Category     int `json:"category"`
	Manufacturer int `json:"manufacturer"`
}

// Meta is the response meta block.
type Meta struct {
	Counts    Counts `json:"counts"`
	Timestamp int64  `json:"timestamp"`
}

// SearchResponse is the response for a search request. Results are grouped by
// kind in priority order (product, category, manufacturer) and each group is
// ordered alphabetically by label.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Meta    *Meta          `json:"meta,omitempty"`
}

// Total returns the number of results across all kinds.
func (c Counts) Total() int {
	return c.Product + c.Category + c.Manufacturer
}
