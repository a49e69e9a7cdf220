package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/bruschetta/internal/adapter"
	"github.com/mmcdole/bruschetta/internal/adapter/source"
	"github.com/mmcdole/bruschetta/internal/domain"
	"github.com/mmcdole/bruschetta/internal/service"
	"github.com/mmcdole/bruschetta/internal/store"
	"github.com/mmcdole/bruschetta/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

// errSearchFailed signals a failure the plain renderer already reported
var errSearchFailed = errors.New("search failed")

func main() {
	var (
		showVersion bool
		configPath  string
		plain       bool
		writeConfig bool
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.BoolVar(&plain, "plain", false, "print results as lines instead of starting the TUI")
	flag.BoolVar(&writeConfig, "write-config", false, "write the effective config to disk and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bruschetta [flags] [query]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("bruschetta %s\n", Version)
		return
	}

	query := strings.Join(flag.Args(), " ")
	if !plain && !term.IsTerminal(int(os.Stdout.Fd())) {
		plain = true
	}

	err := run(configPath, query, plain, writeConfig)
	switch {
	case err == nil:
	case errors.Is(err, errSearchFailed):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, query string, plain, writeConfig bool) error {
	// Load configuration
	cfg, err := adapter.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if writeConfig {
		path, err := adapter.SaveConfig(cfg, configPath)
		if err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", path)
		return nil
	}

	// Setup logger. Stderr logging would draw over the TUI.
	logger, closeLog, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil || (!plain && cfg.Logging.File == "-") {
		logger = adapter.NullLogger()
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("starting bruschetta", "version", Version, "server", cfg.Server.URL, "plain", plain)

	client, err := source.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	if plain {
		return runPlain(cfg, client, query, logger)
	}
	return runTUI(cfg, client, query, logger)
}

func newController(cfg *adapter.Config, client source.Catalog, observer domain.Observer, logger *slog.Logger) *service.SearchController {
	results := store.NewResultStore()
	results.Subscribe(func(c domain.StoreChange) {
		logger.Debug("result store changed", "kind", c.Kind, "key", c.Key, "version", c.Version)
	})
	return service.NewSearchController(client, client, results,
		service.WithObserver(observer),
		service.WithLogger(logger),
		service.WithFavorableThreshold(cfg.Rating.FavorableThreshold),
		service.WithRequestTimeout(cfg.Server.Timeout),
	)
}

func runTUI(cfg *adapter.Config, client source.Catalog, query string, logger *slog.Logger) error {
	view := tui.NewViewObserver()
	ctrl := newController(cfg, client, view, logger)

	p := tea.NewProgram(
		tui.NewModel(ctrl, view, query),
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

func runPlain(cfg *adapter.Config, client source.Catalog, query string, logger *slog.Logger) error {
	if strings.TrimSpace(query) == "" {
		flag.Usage()
		return errors.New("a query is required when output is not a terminal")
	}

	out := tui.NewPlainObserver(os.Stdout, os.Stderr)
	ctrl := newController(cfg, client, out, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := service.Run(ctx, ctrl, ctrl.Search(query)); err != nil {
		return err
	}
	if out.Failed() != "" {
		return errSearchFailed
	}
	return nil
}
