package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/iamerkut/search/internal/analyze"
	"github.com/iamerkut/search/internal/config"
	"github.com/iamerkut/search/internal/models"
	"github.com/iamerkut/search/internal/search"
	"github.com/iamerkut/search/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "shop.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	if _, err := store.BatchInsertProducts(ctx, []models.ProductRecord{
		{Name: "BMW i3 Sitzbezug Set", ArticleNumber: "OT404", Slug: "bmw-i3-sitzbezug-set"},
	}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Config{}
	config.ApplyDefaults(&cfg)
	cfg.Server.AllowedReferers = []string{"shop.example.com"}

	analyzer := analyze.NewAnalyzer(analyze.NewWordlists(nil, nil))
	engine := search.NewEngine(store, analyzer, cfg.Search, zap.NewNop())
	return NewServer(engine, &cfg.Server, zap.NewNop())
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHandleSearch(t *testing.T) {
	srv := newTestServer(t)
	r := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=bmw+i3", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-store, no-cache, must-revalidate, max-age=0" {
		t.Errorf("cache control = %q", cc)
	}

	var response models.SearchResponse
	decode(t, w, &response)
	if response.Query != "bmw i3" {
		t.Errorf("query = %q", response.Query)
	}
	if len(response.Results) != 1 || response.Results[0].Type != models.KindProduct {
		t.Errorf("results = %+v", response.Results)
	}
	if response.Results[0].URL != "/bmw-i3-sitzbezug-set" {
		t.Errorf("url = %q", response.Results[0].URL)
	}
}

func TestHandleSearchShortQuery(t *testing.T) {
	srv := newTestServer(t)
	r := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=a", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var response struct {
		Query   string            `json:"query"`
		Results []json.RawMessage `json:"results"`
	}
	decode(t, w, &response)
	if response.Query != "a" || len(response.Results) != 0 {
		t.Errorf("response = %+v", response)
	}
}

func TestHandlePopularAndSuggestions(t *testing.T) {
	srv := newTestServer(t)

	// Two searches feed the log.
	for _, q := range []string{"bmw+i3", "bmw+i3", "audi+a4"} {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/search?q="+q, nil)
		srv.Router().ServeHTTP(httptest.NewRecorder(), r)
	}

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/popular?limit=2", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("popular status = %d", w.Code)
	}
	var popular struct {
		Popular []models.PopularQuery `json:"popular"`
	}
	decode(t, w, &popular)
	if len(popular.Popular) != 2 || popular.Popular[0].Query != "bmw i3" || popular.Popular[0].Hits != 2 {
		t.Errorf("popular = %+v", popular.Popular)
	}

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/suggestions?prefix=bmw", nil))
	var suggestions struct {
		Suggestions []models.Suggestion `json:"suggestions"`
	}
	decode(t, w, &suggestions)
	if len(suggestions.Suggestions) != 1 || suggestions.Suggestions[0].Query != "bmw i3" {
		t.Errorf("suggestions = %+v", suggestions.Suggestions)
	}
}

func TestHandleSuggestionsEmptyPrefix(t *testing.T) {
	srv := newTestServer(t)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/suggestions", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var response struct {
		Suggestions []models.Suggestion `json:"suggestions"`
	}
	decode(t, w, &response)
	if response.Suggestions == nil || len(response.Suggestions) != 0 {
		t.Errorf("expected empty array, got %+v", response.Suggestions)
	}
}

func TestLegacySuggestRefererCheck(t *testing.T) {
	srv := newTestServer(t)

	t.Run("empty referer allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/suggest?q=bmw+i3", nil))
		if w.Code != http.StatusOK {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("allow-listed referer", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/suggest?q=bmw+i3", nil)
		r.Header.Set("Referer", "https://shop.example.com/startseite")
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("foreign referer rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/suggest?q=bmw+i3", nil)
		r.Header.Set("Referer", "https://evil.example.net/")
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, r)
		if w.Code != http.StatusForbidden {
			t.Fatalf("status = %d", w.Code)
		}
		var body struct {
			Error   bool   `json:"error"`
			Message string `json:"message"`
		}
		decode(t, w, &body)
		if !body.Error || body.Message != "Access denied" {
			t.Errorf("body = %+v", body)
		}
	})
}

func TestLegacySuggestUnknownAction(t *testing.T) {
	srv := newTestServer(t)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/suggest?action=frobnicate", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	decode(t, w, &body)
	if !body.Error || body.Message != "Unknown action" {
		t.Errorf("body = %+v", body)
	}
}

func TestLegacySuggestActions(t *testing.T) {
	srv := newTestServer(t)
	srv.Router().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/suggest?q=bmw+i3", nil))

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/suggest?action=popular", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("popular status = %d", w.Code)
	}
	var popular struct {
		Popular []models.PopularQuery `json:"popular"`
	}
	decode(t, w, &popular)
	if len(popular.Popular) != 1 {
		t.Errorf("popular = %+v", popular.Popular)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}
