package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/myreads/internal/adapter"
	"github.com/mmcdole/myreads/internal/adapter/catalog"
	"github.com/mmcdole/myreads/internal/domain"
	"github.com/mmcdole/myreads/internal/library"
	"github.com/mmcdole/myreads/internal/metrics"
	"github.com/mmcdole/myreads/internal/search"
	"github.com/mmcdole/myreads/internal/store"
	"github.com/mmcdole/myreads/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		listOnly    bool
		clearCache  bool
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&listOnly, "list", false, "print your shelves and exit")
	flag.BoolVar(&clearCache, "clear-cache", false, "remove cached search results and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("myreads %s\n", Version)
		return
	}

	if err := run(listOnly, clearCache); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(listOnly, clearCache bool) error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if clearCache {
		if err := adapter.ClearCache(cfg); err != nil {
			return err
		}
		fmt.Println("Cache cleared.")
		return nil
	}

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, closer = adapter.NullLogger(), io.NopCloser(nil)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	logger.Info("starting myreads", "version", Version)

	// The Books API keys shelves by token, so the first run mints one and keeps it.
	if cfg.EnsureToken() {
		if err := adapter.SaveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		logger.Info("generated new library token")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var m *metrics.Metrics
	if cfg.Metrics.Listen != "" {
		m = metrics.New()
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Listen, adapter.Component(logger, "metrics")); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	client, err := catalog.NewClient(catalog.Config{
		URL:               cfg.Server.URL,
		Token:             cfg.Server.Token,
		MaxResults:        cfg.Server.MaxResults,
		Timeout:           cfg.Server.Timeout,
		RequestsPerSecond: cfg.Server.RequestsPerSecond,
		MaxRetries:        cfg.Server.MaxRetries,
	}, m, adapter.Component(logger, "catalog"))
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	cache, err := store.NewSearchStore(cfg.Cache.Dir, cfg.Server.URL)
	if err != nil {
		// Search still works without a cache
		logger.Warn("search cache unavailable", "error", err)
		cache, _ = store.NewSearchStore("", cfg.Server.URL)
	}
	defer cache.Close()

	svc := store.NewCachedCatalog(client, cache, cfg.Cache.SearchTTL, adapter.Component(logger, "cache"))

	syncCh := make(chan domain.ShelfSync, 64)
	lib := library.NewStore(svc, library.Options{
		Observer:    tui.NewChannelObserver(syncCh),
		Metrics:     m,
		SyncTimeout: cfg.Sync.Timeout,
	}, adapter.Component(logger, "library"))
	defer lib.Close()

	coord := search.NewCoordinator(svc, search.Options{
		Rank:    cfg.Search.RankResults,
		Metrics: m,
	}, adapter.Component(logger, "search"))

	if listOnly || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printShelves(ctx, lib, os.Stdout)
	}

	model := tui.NewModel(lib, coord, syncCh, cfg.Server.URL, adapter.Component(logger, "tui"))
	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// printShelves writes the library as plain text for pipes and scripts
func printShelves(ctx context.Context, lib *library.Store, w io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := lib.Initialize(ctx); err != nil {
		return err
	}

	for _, shelf := range domain.Shelves() {
		entries := lib.OnShelf(shelf)
		fmt.Fprintf(w, "%s (%d)\n", shelf, len(entries))
		for _, e := range entries {
			if authors := e.AuthorLine(); authors != "" {
				fmt.Fprintf(w, "  %s - %s\n", e.Title, authors)
			} else {
				fmt.Fprintf(w, "  %s\n", e.Title)
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}
