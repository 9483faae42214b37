// easybuy is the terminal client for the EasyBuy Tracker backend.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/easybuy-tracker/internal/api"
	"github.com/spec-kit/easybuy-tracker/internal/cache"
	"github.com/spec-kit/easybuy-tracker/internal/config"
	"github.com/spec-kit/easybuy-tracker/internal/guard"
	"github.com/spec-kit/easybuy-tracker/internal/loading"
	"github.com/spec-kit/easybuy-tracker/internal/localstore"
	"github.com/spec-kit/easybuy-tracker/internal/notify"
	"github.com/spec-kit/easybuy-tracker/internal/observability"
	"github.com/spec-kit/easybuy-tracker/internal/session"
	"github.com/spec-kit/easybuy-tracker/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "easybuy:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		baseURL  string
		mode     string
		stateDir string
	)
	pflag.StringVar(&baseURL, "base-url", "", "backend base URL (overrides --mode)")
	pflag.StringVar(&mode, "mode", "", "backend selection: local or online")
	pflag.StringVar(&stateDir, "state-dir", "", "directory for session and log files")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if baseURL != "" {
		cfg.Backend.BaseURL = baseURL
	}
	if mode != "" {
		cfg.Backend.Mode = mode
	}
	if stateDir != "" {
		cfg.App.StateDir = stateDir
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	values, err := localstore.Open(cfg.App.StateDir)
	if err != nil {
		return fmt.Errorf("opening local store: %w", err)
	}

	sessionStore := session.NewStore(values)
	counter := loading.NewCounter()
	notifier := notify.NewInMemoryNotifier()
	metrics := observability.NewMetrics()

	client := api.New(cfg.Backend.ResolveBaseURL(), cfg.Backend.RequestTimeout(), api.Dependencies{
		Session:  sessionStore,
		Loading:  counter,
		Notifier: notifier,
		Metrics:  metrics,
		Logger:   logger,
	})

	cacheStore := cache.NewStore(logger)
	services := ui.Services{
		Logger:    logger,
		Values:    values,
		Session:   sessionStore,
		Loading:   counter,
		Notifier:  notifier,
		Client:    client,
		Cache:     cacheStore,
		Queries:   cache.NewQueries(client, cacheStore),
		Mutations: cache.NewMutations(client, cacheStore),
		Guard:     guard.New(sessionStore, client, logger),
	}

	logger.Info("starting",
		zap.String("version", cfg.App.Version),
		zap.String("backend", cfg.Backend.ResolveBaseURL()),
	)

	program := tea.NewProgram(ui.NewApp(services), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
