// Package search orchestrates the per-kind entity searches and assembles the
// typed, ranked result set.
package search

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/iamerkut/search/internal/analyze"
	"github.com/iamerkut/search/internal/config"
	"github.com/iamerkut/search/internal/match"
	"github.com/iamerkut/search/internal/models"
	"github.com/iamerkut/search/internal/storage"
)

const (
	defaultPopularLimit = 8
	defaultSuggestLimit = 5
	maxReadLimit        = 50
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// Engine runs searches against the store. Settings can be swapped at runtime
// via ApplySettings; each request works on a consistent snapshot.
type Engine struct {
	store    storage.Store
	analyzer *analyze.Analyzer
	logger   *zap.Logger

	mu       sync.RWMutex
	settings config.SearchConfig
}

// NewEngine creates an engine with the given dependencies.
func NewEngine(store storage.Store, analyzer *analyze.Analyzer, settings config.SearchConfig, logger *zap.Logger) *Engine {
	return &Engine{
		store:    store,
		analyzer: analyzer,
		settings: settings,
		logger:   logger,
	}
}

// ApplySettings replaces the search settings. Called on config reload.
func (e *Engine) ApplySettings(settings config.SearchConfig) {
	e.mu.Lock()
	e.settings = settings
	e.mu.Unlock()
}

func (e *Engine) snapshot() config.SearchConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.settings
}

// Search runs the autocomplete search for raw query text. Queries below the
// minimum length are logged with status "short" and return an empty result
// set, not an error. Store failures are logged with status "error" and
// returned. The query-log write itself is best-effort and never fails the
// search.
func (e *Engine) Search(ctx context.Context, raw string) (*models.SearchResponse, error) {
	query := strings.TrimSpace(whitespaceRuns.ReplaceAllString(raw, " "))
	response := &models.SearchResponse{Query: query, Results: []models.SearchResult{}}

	settings := e.snapshot()
	if query == "" || utf8.RuneCountInString(query) < settings.MinQueryLength {
		e.logOutcome(ctx, query, 0, models.StatusShort)
		return response, nil
	}

	tokens := e.analyzer.Tokenize(query)
	var counts models.Counts

	if settings.ProductsEnabledOrDefault() {
		rows, err := e.searchProducts(ctx, tokens, query, settings)
		if err != nil {
			e.logOutcome(ctx, query, 0, models.StatusError)
			return nil, err
		}
		assembled, err := e.assemble(ctx, rows, models.KindProduct)
		if err != nil {
			e.logOutcome(ctx, query, 0, models.StatusError)
			return nil, err
		}
		response.Results = append(response.Results, assembled...)
		counts.Product = len(assembled)
	}

	if settings.CategoriesEnabledOrDefault() {
		cond := match.Build(tokens, storage.CategoryFields, "cat")
		rows, err := e.store.SearchCategories(ctx, cond, settings.CategoryLimit)
		if err != nil {
			e.logOutcome(ctx, query, 0, models.StatusError)
			return nil, fmt.Errorf("category search: %w", err)
		}
		assembled, err := e.assemble(ctx, rows, models.KindCategory)
		if err != nil {
			e.logOutcome(ctx, query, 0, models.StatusError)
			return nil, err
		}
		response.Results = append(response.Results, assembled...)
		counts.Category = len(assembled)
	}

	if settings.ManufacturersEnabledOrDefault() {
		cond := match.Build(tokens, storage.ManufacturerFields, "man")
		rows, err := e.store.SearchManufacturers(ctx, cond, settings.ManufacturerLimit)
		if err != nil {
			e.logOutcome(ctx, query, 0, models.StatusError)
			return nil, fmt.Errorf("manufacturer search: %w", err)
		}
		assembled, err := e.assemble(ctx, rows, models.KindManufacturer)
		if err != nil {
			e.logOutcome(ctx, query, 0, models.StatusError)
			return nil, err
		}
		response.Results = append(response.Results, assembled...)
		counts.Manufacturer = len(assembled)
	}

	status := models.StatusOK
	if counts.Total() == 0 {
		status = models.StatusEmpty
	}
	e.logOutcome(ctx, query, counts.Total(), status)

	response.Meta = &models.Meta{Counts: counts, Timestamp: time.Now().Unix()}
	return response, nil
}

// searchProducts runs the strict tiered product query and, when it matches
// nothing, the broad name-substring fallback on the whole query string.
func (e *Engine) searchProducts(ctx context.Context, tokens []string, query string, settings config.SearchConfig) ([]models.EntityRow, error) {
	primary, secondary := e.analyzer.Split(tokens)
	cond := match.BuildProduct(primary, secondary, query, storage.ProductFields, "p_")
	rows, err := e.store.SearchProducts(ctx, cond, settings.ProductLimit)
	if err != nil {
		return nil, fmt.Errorf("product search: %w", err)
	}
	if len(rows) > 0 {
		return rows, nil
	}

	// BuildProduct with no tokens degenerates to the single name-substring
	// condition on the raw query.
	fallback := match.BuildProduct(nil, nil, query, storage.ProductFields, "pf_")
	rows, err = e.store.SearchProducts(ctx, fallback, settings.FallbackLimit)
	if err != nil {
		return nil, fmt.Errorf("product fallback search: %w", err)
	}
	return rows, nil
}

// Popular returns the most searched queries. limit defaults to 8 and is
// clamped to [1,50].
func (e *Engine) Popular(ctx context.Context, limit int) ([]models.PopularQuery, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	if limit > maxReadLimit {
		limit = maxReadLimit
	}
	return e.store.PopularQueries(ctx, limit)
}

// Suggest returns logged queries starting with prefix. An empty prefix yields
// an empty list without querying the store. limit defaults to 5 and is
// clamped to [1,50].
func (e *Engine) Suggest(ctx context.Context, prefix string, limit int) ([]models.Suggestion, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []models.Suggestion{}, nil
	}
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	if limit > maxReadLimit {
		limit = maxReadLimit
	}
	return e.store.SuggestQueries(ctx, strings.ToLower(prefix), limit)
}

// logOutcome records the search outcome in the query log. Failures are logged
// and swallowed so they never turn a successful search into an error.
func (e *Engine) logOutcome(ctx context.Context, query string, results int, status models.QueryStatus) {
	if query == "" {
		return
	}
	if err := e.store.LogQuery(ctx, query, results, status); err != nil {
		e.logger.Warn("query log write failed",
			zap.String("query", query),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}
