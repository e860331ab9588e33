package storage

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iamerkut/search/internal/models"
	"github.com/iamerkut/search/pkg/utils"
)

// maxLoggedQueryRunes caps both the normalized key and the display text.
const maxLoggedQueryRunes = 255

// LogQuery upserts one query-log row keyed by the lower-cased, length-capped
// query text. First occurrence creates the row with hits=1; repeats increment
// hits atomically and overwrite results, status, last_search, and the display
// text. Empty queries are ignored.
func (s *SQLiteStore) LogQuery(ctx context.Context, displayQuery string, results int, status models.QueryStatus) error {
	if displayQuery == "" {
		return nil
	}

	normalized := utils.CapRunes(strings.ToLower(displayQuery), maxLoggedQueryRunes)
	display := utils.CapRunes(displayQuery, maxLoggedQueryRunes)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO search_log (query, display_query, hits, results, last_search, status)
		 VALUES (:query, :display, 1, :results, :now, :status)
		 ON CONFLICT(query) DO UPDATE SET
		   hits = hits + 1,
		   results = :results,
		   last_search = :now,
		   status = :status,
		   display_query = :display`,
		sql.Named("query", normalized),
		sql.Named("display", display),
		sql.Named("results", results),
		sql.Named("now", time.Now().UTC()),
		sql.Named("status", string(status)),
	)
	return err
}

// PopularQueries returns the most searched queries, most hits first, ties
// broken by recency.
func (s *SQLiteStore) PopularQueries(ctx context.Context, limit int) ([]models.PopularQuery, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT display_query, hits, last_search
		 FROM search_log
		 ORDER BY hits DESC, last_search DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var popular []models.PopularQuery
	for rows.Next() {
		var entry models.PopularQuery
		var lastSearch time.Time
		if err := rows.Scan(&entry.Query, &entry.Hits, &lastSearch); err != nil {
			return nil, err
		}
		entry.LastSearch = lastSearch.UTC().Format(time.RFC3339)
		popular = append(popular, entry)
	}
	return popular, rows.Err()
}

// SuggestQueries returns logged queries whose normalized text starts with
// prefix, most hits first. The caller is expected to lower-case the prefix.
func (s *SQLiteStore) SuggestQueries(ctx context.Context, prefix string, limit int) ([]models.Suggestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT display_query, hits
		 FROM search_log
		 WHERE query LIKE ?
		 ORDER BY hits DESC
		 LIMIT ?`, prefix+"%", limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suggestions []models.Suggestion
	for rows.Next() {
		var entry models.Suggestion
		if err := rows.Scan(&entry.Query, &entry.Hits); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, entry)
	}
	return suggestions, rows.Err()
}
