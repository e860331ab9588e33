// Package storage defines the persistence interface for catalog entities and
// the query log.
package storage

import (
	"context"

	"github.com/iamerkut/search/internal/match"
	"github.com/iamerkut/search/internal/models"
)

// Store defines catalog search, slug resolution, catalog import, and query-log
// operations.
type Store interface {
	// Entity searches. Each returns DISTINCT rows ordered alphabetically by
	// label, capped at limit.
	SearchProducts(ctx context.Context, cond match.Condition, limit int) ([]models.EntityRow, error)
	SearchCategories(ctx context.Context, cond match.Condition, limit int) ([]models.EntityRow, error)
	SearchManufacturers(ctx context.Context, cond match.Condition, limit int) ([]models.EntityRow, error)

	// SlugsByID resolves friendly slugs for all ids of one kind in a single
	// query. Entities without a slug are absent from the result map.
	SlugsByID(ctx context.Context, kind models.Kind, ids []int64) (map[int64]string, error)

	// Catalog import
	BatchInsertProducts(ctx context.Context, records []models.ProductRecord) (int, error)
	BatchInsertCategories(ctx context.Context, records []models.CategoryRecord) (int, error)
	BatchInsertManufacturers(ctx context.Context, records []models.ManufacturerRecord) (int, error)

	// Query log
	LogQuery(ctx context.Context, displayQuery string, results int, status models.QueryStatus) error
	PopularQueries(ctx context.Context, limit int) ([]models.PopularQuery, error)
	SuggestQueries(ctx context.Context, prefix string, limit int) ([]models.Suggestion, error)

	Close() error
}
