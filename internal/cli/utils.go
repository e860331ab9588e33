// Package cli provides CLI output helpers for storesearch.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/iamerkut/search/internal/models"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d results for %q\n\n", len(response.Results), response.Query)
	if response.Meta != nil {
		fmt.Fprintf(w, "Products: %d | Categories: %d | Manufacturers: %d\n\n",
			response.Meta.Counts.Product, response.Meta.Counts.Category, response.Meta.Counts.Manufacturer)
	}
	for _, result := range response.Results {
		fmt.Fprintf(w, "[%-12s] #%-6d %s\n", result.Type, result.ID, result.Label)
		fmt.Fprintf(w, "               %s\n", result.URL)
	}
	fmt.Fprintln(w)
}

// WritePopularQueries writes the popular query ranking to w.
func WritePopularQueries(w io.Writer, popular []models.PopularQuery, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(popular)
	default:
		if len(popular) == 0 {
			fmt.Fprintln(w, "No logged queries yet")
			return nil
		}
		for i, entry := range popular {
			fmt.Fprintf(w, "%2d. %-30s %5d hits  last %s\n", i+1, entry.Query, entry.Hits, entry.LastSearch)
		}
		return nil
	}
}

// PrintSearchResults prints search results to stdout in text format (backward compatible).
func PrintSearchResults(response *models.SearchResponse) {
	_ = WriteSearchResults(os.Stdout, response, OutputText)
}
