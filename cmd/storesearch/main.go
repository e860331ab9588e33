// Package main is the storesearch CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/iamerkut/search/internal/analyze"
	"github.com/iamerkut/search/internal/catalog"
	"github.com/iamerkut/search/internal/cli"
	"github.com/iamerkut/search/internal/config"
	"github.com/iamerkut/search/internal/models"
	"github.com/iamerkut/search/internal/search"
	"github.com/iamerkut/search/internal/server"
	"github.com/iamerkut/search/internal/storage"
	"github.com/iamerkut/search/internal/watcher"
	"github.com/iamerkut/search/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/storesearch/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "storesearch server" from the project dir uses the project's config.
// Returns the config and the path that was actually loaded (for watching, etc.).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "popular":
		runPopular()
	case "import":
		runImport()
	case "version", "--version", "-v":
		fmt.Printf("storesearch version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (query analysis, config reloads, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	analyzer := components.Analyzer
	engine := components.Engine
	configWatch := watcher.NewConfigWatcher(resolvedConfigPath, func(path string) {
		reloaded, loadErr := config.Load(path)
		if loadErr != nil {
			logger.Warn("config reload failed, keeping previous settings",
				zap.String("path", path), zap.Error(loadErr))
			return
		}
		analyzer.Wordlists().Replace(reloaded.Wordlists.StopWords, reloaded.Wordlists.BrandKeywords)
		engine.ApplySettings(reloaded.Search)
		logger.Info("config reloaded", zap.String("path", path))
	}, logger)
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if err := configWatch.Start(watchCtx); err != nil {
		logger.Fatal("Failed to start config watcher", zap.Error(err))
	}
	defer configWatch.Stop()

	srv := server.NewServer(engine, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// printSearchUsage prints search subcommand usage.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: storesearch search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  storesearch search bmw i3 sitzbezug
  storesearch search "bmw i3 sitzbezug"       # same as above
  storesearch search --output json fussmatten
  storesearch search --server "" fussmatten   # query the database directly
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument, so "storesearch search \"query\" -output json"
// would otherwise leave -output unparsed.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func outputFormat(name string) (cli.OutputFormat, error) {
	switch name {
	case "json":
		return cli.OutputJSON, nil
	case "text":
		return cli.OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", name)
	}
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = query the database directly)")
	format := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}
	outFormat, err := outputFormat(*format)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if *serverURL != "" {
		// Use the HTTP API when the server is running (avoids SQLite lock conflicts).
		response, err := searchViaHTTP(*serverURL, queryStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteSearchResults(os.Stdout, response, outFormat); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	response, err := components.Engine.Search(context.Background(), queryStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, outFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL, query string) (*models.SearchResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/search?q=" + url.QueryEscape(query))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runPopular() {
	fs := flag.NewFlagSet("popular", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = query the database directly)")
	limit := fs.Int("limit", 0, "number of entries (0 = server default)")
	format := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	outFormat, err := outputFormat(*format)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var popular []models.PopularQuery
	if *serverURL != "" {
		popular, err = popularViaHTTP(*serverURL, *limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Popular failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg, _, loadErr := loadConfig(*configPath)
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", loadErr)
			os.Exit(1)
		}
		logger, logErr := utils.NewLogger(cfg.Debug)
		if logErr != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", logErr)
			os.Exit(1)
		}
		defer logger.Sync()

		components, initErr := initializeComponents(cfg, logger)
		if initErr != nil {
			logger.Fatal("Failed to initialize", zap.Error(initErr))
		}
		defer components.Close()

		popular, err = components.Engine.Popular(context.Background(), *limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Popular failed: %v\n", err)
			os.Exit(1)
		}
	}

	if err := cli.WritePopularQueries(os.Stdout, popular, outFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func popularViaHTTP(serverURL string, limit int) ([]models.PopularQuery, error) {
	endpoint := serverURL + "/api/v1/popular"
	if limit > 0 {
		endpoint += fmt.Sprintf("?limit=%d", limit)
	}
	resp, err := http.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var out struct {
		Popular []models.PopularQuery `json:"popular"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Popular, nil
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: storesearch import [flags] <workbook.xlsx>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	importer := catalog.NewImporter(components.Store, logger)
	summary, err := importer.ImportWorkbook(context.Background(), path)
	if err != nil {
		fmt.Printf("Import failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d product(s), %d categorie(s), %d manufacturer(s) [job %s]\n",
		summary.Products, summary.Categories, summary.Manufacturers, summary.JobID)
}

// Components holds initialized services.
type Components struct {
	Store    storage.Store
	Analyzer *analyze.Analyzer
	Engine   *search.Engine
}

func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	words := analyze.NewWordlists(cfg.Wordlists.StopWords, cfg.Wordlists.BrandKeywords)
	analyzer := analyze.NewAnalyzer(words)
	engine := search.NewEngine(store, analyzer, cfg.Search, logger)

	return &Components{
		Store:    store,
		Analyzer: analyzer,
		Engine:   engine,
	}, nil
}

func printUsage() {
	fmt.Println(`storesearch - Storefront autocomplete search service

Usage:
  storesearch server [flags]            Start the HTTP server
  storesearch search [flags] <query>    Run a search
  storesearch popular [flags]           Show the most searched queries
  storesearch import [flags] <xlsx>     Import a catalog workbook
  storesearch version                   Show version
  storesearch help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/storesearch/config.yaml)
  --debug            Enable debug logging (query analysis, config reloads, etc.)

Search Flags:
  --config string    Config file path (for direct database mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to query the database directly.
  --output string    Output format: text or json (default: text)

Popular Flags:
  --config string    Config file path (for direct database mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to query the database directly.
  --limit int        Number of entries (default: server default)
  --output string    Output format: text or json (default: text)

Import Flags:
  --config string    Config file path

Examples:
  storesearch server
  storesearch search bmw i3 sitzbezug
  storesearch search --output json fussmatten
  storesearch popular --limit 10
  storesearch import catalog.xlsx`)
}
