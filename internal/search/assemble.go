package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/iamerkut/search/internal/models"
)

// assemble maps raw store rows to typed results, resolving friendly slugs for
// all ids of the kind in one lookup. Row order is preserved.
func (e *Engine) assemble(ctx context.Context, rows []models.EntityRow, kind models.Kind) ([]models.SearchResult, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	slugs, err := e.store.SlugsByID(ctx, kind, ids)
	if err != nil {
		return nil, fmt.Errorf("slug lookup for %s: %w", kind, err)
	}

	results := make([]models.SearchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, models.SearchResult{
			Type:  kind,
			ID:    row.ID,
			Label: row.Label,
			URL:   entityURL(kind, row.ID, slugs[row.ID]),
		})
	}
	return results, nil
}

// entityURL prefers the friendly slug; otherwise falls back to the fixed
// per-kind path scheme. The slug's own leading slash is stripped first so the
// result never starts with "//".
func entityURL(kind models.Kind, id int64, slug string) string {
	if slug != "" {
		return "/" + strings.TrimLeft(slug, "/")
	}
	switch kind {
	case models.KindCategory:
		return fmt.Sprintf("/kategorie.php?k=%d", id)
	case models.KindManufacturer:
		return fmt.Sprintf("/hersteller.php?h=%d", id)
	default:
		return fmt.Sprintf("/index.php?a=%d", id)
	}
}
