package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("debug: true\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.Debug {
		t.Error("debug not parsed")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Search.MinQueryLength != 3 {
		t.Errorf("default min query length: got %d", cfg.Search.MinQueryLength)
	}
	if cfg.Search.ProductLimit != 5 || cfg.Search.CategoryLimit != 3 || cfg.Search.ManufacturerLimit != 3 {
		t.Errorf("default limits: got %d/%d/%d", cfg.Search.ProductLimit, cfg.Search.CategoryLimit, cfg.Search.ManufacturerLimit)
	}
	if !cfg.Search.ProductsEnabledOrDefault() || !cfg.Search.CategoriesEnabledOrDefault() || !cfg.Search.ManufacturersEnabledOrDefault() {
		t.Error("kinds should be enabled by default")
	}
}

func TestLoadExplicitValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9090
  allowed_referers: ["shop.example.com"]
search:
  min_query_length: 2
  product_limit: 8
  manufacturers_enabled: false
wordlists:
  stop_words: ["und", "oder"]
`
	if err := os.WriteFile(path, []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
	if len(cfg.Server.AllowedReferers) != 1 {
		t.Errorf("allowed referers: got %v", cfg.Server.AllowedReferers)
	}
	if cfg.Search.MinQueryLength != 2 || cfg.Search.ProductLimit != 8 {
		t.Errorf("search settings: got %d/%d", cfg.Search.MinQueryLength, cfg.Search.ProductLimit)
	}
	if cfg.Search.ManufacturersEnabledOrDefault() {
		t.Error("manufacturers_enabled: false not honored")
	}
	if cfg.Search.CategoriesEnabledOrDefault() != true {
		t.Error("categories should stay enabled when unset")
	}
	if len(cfg.Wordlists.StopWords) != 2 {
		t.Errorf("stop words override: got %v", cfg.Wordlists.StopWords)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Server.Port = 9999

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Server.Port != 9999 {
		t.Errorf("round trip port: got %d", loaded.Server.Port)
	}
}
