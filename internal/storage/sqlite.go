// Package storage provides the SQLite implementation of the Store interface.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/iamerkut/search/internal/match"
	"github.com/iamerkut/search/internal/models"
)

// Match-field expressions per entity kind, aliased to the search queries below.
// Name and keyword fields match by substring, article number and slug by prefix.
var (
	ProductFields = match.ProductFields{
		Name:          "p.name",
		Keywords:      "IFNULL(p.search_keywords, '')",
		ArticleNumber: "IFNULL(p.article_number, '')",
		Slug:          "IFNULL(s.slug, '')",
	}
	CategoryFields = []match.Field{
		{Expr: "k.name", Mode: match.Substring},
		{Expr: "IFNULL(s.slug, '')", Mode: match.Substring},
	}
	ManufacturerFields = []match.Field{
		{Expr: "h.name", Mode: match.Substring},
		{Expr: "IFNULL(s.slug, '')", Mode: match.Substring},
	}
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		article_number TEXT,
		search_keywords TEXT
	);

	CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS manufacturers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS slugs (
		kind TEXT NOT NULL,
		entity_id INTEGER NOT NULL,
		slug TEXT NOT NULL,
		PRIMARY KEY (kind, entity_id)
	);

	CREATE TABLE IF NOT EXISTS search_log (
		query TEXT PRIMARY KEY,
		display_query TEXT NOT NULL,
		hits INTEGER NOT NULL DEFAULT 1,
		results INTEGER NOT NULL DEFAULT 0,
		last_search TIMESTAMP NOT NULL,
		status TEXT NOT NULL DEFAULT 'ok'
	);

	CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);
	CREATE INDEX IF NOT EXISTS idx_search_log_hits ON search_log(hits);
	CREATE INDEX IF NOT EXISTS idx_search_log_last_search ON search_log(last_search);
	`
	_, err := db.Exec(schema)
	return err
}

// SearchProducts runs the compiled product condition against the products
// table joined with product slugs.
func (s *SQLiteStore) SearchProducts(ctx context.Context, cond match.Condition, limit int) ([]models.EntityRow, error) {
	query := fmt.Sprintf(
		`SELECT DISTINCT p.id, p.name
		 FROM products p
		 LEFT JOIN slugs s ON s.kind = 'product' AND s.entity_id = p.id
		 WHERE %s
		 ORDER BY p.name COLLATE NOCASE ASC
		 LIMIT :search_limit`, cond.Clause)
	return s.searchEntities(ctx, query, cond.Args, limit)
}

// SearchCategories runs the compiled condition against the categories table
// joined with category slugs.
func (s *SQLiteStore) SearchCategories(ctx context.Context, cond match.Condition, limit int) ([]models.EntityRow, error) {
	query := fmt.Sprintf(
		`SELECT DISTINCT k.id, k.name
		 FROM categories k
		 LEFT JOIN slugs s ON s.kind = 'category' AND s.entity_id = k.id
		 WHERE %s
		 ORDER BY k.name COLLATE NOCASE ASC
		 LIMIT :search_limit`, cond.Clause)
	return s.searchEntities(ctx, query, cond.Args, limit)
}

// SearchManufacturers runs the compiled condition against the manufacturers
// table joined with manufacturer slugs.
func (s *SQLiteStore) SearchManufacturers(ctx context.Context, cond match.Condition, limit int) ([]models.EntityRow, error) {
	query := fmt.Sprintf(
		`SELECT DISTINCT h.id, h.name
		 FROM manufacturers h
		 LEFT JOIN slugs s ON s.kind = 'manufacturer' AND s.entity_id = h.id
		 WHERE %s
		 ORDER BY h.name COLLATE NOCASE ASC
		 LIMIT :search_limit`, cond.Clause)
	return s.searchEntities(ctx, query, cond.Args, limit)
}

func (s *SQLiteStore) searchEntities(ctx context.Context, query string, condArgs []any, limit int) ([]models.EntityRow, error) {
	args := append(append([]any{}, condArgs...), sql.Named("search_limit", limit))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []models.EntityRow
	for rows.Next() {
		var row models.EntityRow
		if err := rows.Scan(&row.ID, &row.Label); err != nil {
			return nil, err
		}
		entities = append(entities, row)
	}
	return entities, rows.Err()
}

// SlugsByID resolves friendly slugs for all ids of one kind in a single query.
func (s *SQLiteStore) SlugsByID(ctx context.Context, kind models.Kind, ids []int64) (map[int64]string, error) {
	slugs := make(map[int64]string)
	if len(ids) == 0 {
		return slugs, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(ids)+1)
	args = append(args, string(kind))
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT entity_id, slug FROM slugs WHERE kind = ? AND entity_id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var slug string
		if err := rows.Scan(&id, &slug); err != nil {
			return nil, err
		}
		slugs[id] = slug
	}
	return slugs, rows.Err()
}

// BatchInsertProducts inserts products and their slugs in one transaction.
// Returns the number of products inserted.
func (s *SQLiteStore) BatchInsertProducts(ctx context.Context, records []models.ProductRecord) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO products (name, article_number, search_keywords) VALUES (?, ?, ?)`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for _, record := range records {
		if record.Name == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, record.Name, nullable(record.ArticleNumber), nullable(record.SearchKeywords))
		if err != nil {
			return 0, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		if err := upsertSlug(ctx, tx, models.KindProduct, id, record.Slug); err != nil {
			return 0, err
		}
		count++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// BatchInsertCategories inserts categories and their slugs in one transaction.
func (s *SQLiteStore) BatchInsertCategories(ctx context.Context, records []models.CategoryRecord) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	count := 0
	for _, record := range records {
		if record.Name == "" {
			continue
		}
		res, err := tx.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, record.Name)
		if err != nil {
			return 0, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		if err := upsertSlug(ctx, tx, models.KindCategory, id, record.Slug); err != nil {
			return 0, err
		}
		count++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// BatchInsertManufacturers inserts manufacturers and their slugs in one transaction.
func (s *SQLiteStore) BatchInsertManufacturers(ctx context.Context, records []models.ManufacturerRecord) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	count := 0
	for _, record := range records {
		if record.Name == "" {
			continue
		}
		res, err := tx.ExecContext(ctx, `INSERT INTO manufacturers (name) VALUES (?)`, record.Name)
		if err != nil {
			return 0, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		if err := upsertSlug(ctx, tx, models.KindManufacturer, id, record.Slug); err != nil {
			return 0, err
		}
		count++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

func upsertSlug(ctx context.Context, tx *sql.Tx, kind models.Kind, id int64, slug string) error {
	if slug == "" {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO slugs (kind, entity_id, slug) VALUES (?, ?, ?)
		 ON CONFLICT(kind, entity_id) DO UPDATE SET slug = excluded.slug`,
		string(kind), id, slug,
	)
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
