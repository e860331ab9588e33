// Package config provides configuration loading and structs for the storesearch server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Search    SearchConfig    `yaml:"search"`
	Wordlists WordlistsConfig `yaml:"wordlists"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// AllowedReferers is the allow-list for the legacy /suggest endpoint.
	// A request with an empty Referer header always passes.
	AllowedReferers []string `yaml:"allowed_referers"`
}

// StorageConfig holds the database path.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// SearchConfig holds query validation and per-kind result limit settings.
// The enable flags are tri-state: unset means enabled.
type SearchConfig struct {
	MinQueryLength       int   `yaml:"min_query_length"`
	ProductLimit         int   `yaml:"product_limit"`
	CategoryLimit        int   `yaml:"category_limit"`
	ManufacturerLimit    int   `yaml:"manufacturer_limit"`
	FallbackLimit        int   `yaml:"fallback_limit"`
	ProductsEnabled      *bool `yaml:"products_enabled"`
	CategoriesEnabled    *bool `yaml:"categories_enabled"`
	ManufacturersEnabled *bool `yaml:"manufacturers_enabled"`
}

// ProductsEnabledOrDefault returns whether product search is enabled; defaults to true when unset.
func (s *SearchConfig) ProductsEnabledOrDefault() bool {
	if s.ProductsEnabled != nil {
		return *s.ProductsEnabled
	}
	return true
}

// CategoriesEnabledOrDefault returns whether category search is enabled; defaults to true when unset.
func (s *SearchConfig) CategoriesEnabledOrDefault() bool {
	if s.CategoriesEnabled != nil {
		return *s.CategoriesEnabled
	}
	return true
}

// ManufacturersEnabledOrDefault returns whether manufacturer search is enabled; defaults to true when unset.
func (s *SearchConfig) ManufacturersEnabledOrDefault() bool {
	if s.ManufacturersEnabled != nil {
		return *s.ManufacturersEnabled
	}
	return true
}

// WordlistsConfig overrides the built-in stop-word and brand-keyword lists.
// An empty list keeps the built-in default.
type WordlistsConfig struct {
	StopWords     []string `yaml:"stop_words"`
	BrandKeywords []string `yaml:"brand_keywords"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
