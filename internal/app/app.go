// Package app wires configuration, storage, events, and services into one
// shared core used by cmd/centavo-server.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/centavo/internal/common"
	"github.com/bobmcallan/centavo/internal/events"
	"github.com/bobmcallan/centavo/internal/events/kafka"
	"github.com/bobmcallan/centavo/internal/interfaces"
	"github.com/bobmcallan/centavo/internal/services/account"
	"github.com/bobmcallan/centavo/internal/services/dashboard"
	"github.com/bobmcallan/centavo/internal/services/ledger"
	"github.com/bobmcallan/centavo/internal/storage"
)

// App holds all initialized services and shared infrastructure.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Store            interfaces.LedgerStore
	Events           interfaces.EventPublisher
	LedgerService    interfaces.LedgerService
	AccountService   interfaces.AccountService
	DashboardService interfaces.DashboardService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, storage, the event publisher,
// and all services. configPath may be empty, in which case the default
// resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Load configuration - provided path, CENTAVO_CONFIG, binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("CENTAVO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "centavo.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/centavo.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	store, err := storage.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var publisher interfaces.EventPublisher
	if len(config.Events.Brokers) > 0 {
		publisher = kafka.NewPublisher(config.Events, logger)
	} else {
		publisher = events.NewNoopPublisher()
		logger.Debug().Msg("No event brokers configured - events disabled")
	}

	a := &App{
		Config:           config,
		Logger:           logger,
		Store:            store,
		Events:           publisher,
		LedgerService:    ledger.NewService(store, publisher, config.Ledger, logger),
		AccountService:   account.NewService(store, logger),
		DashboardService: dashboard.NewService(store, logger),
		StartupTime:      startupStart,
	}

	logger.Info().
		Str("version", common.GetVersion()).
		Str("environment", config.Environment).
		Dur("startup", time.Since(startupStart)).
		Msg("Application initialized")
	return a, nil
}

// Close shuts down storage and the event publisher.
func (a *App) Close() error {
	if a.Events != nil {
		if err := a.Events.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close event publisher")
		}
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
