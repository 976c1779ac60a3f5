package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/split-engine/internal/adapters/driven/archive/zippack"
	"github.com/custodia-labs/split-engine/internal/adapters/driven/config/envstore"
	"github.com/custodia-labs/split-engine/internal/adapters/driven/config/file"
	"github.com/custodia-labs/split-engine/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/split-engine/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/split-engine/internal/adapters/driving/cli"
	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/ports/driven"
	"github.com/custodia-labs/split-engine/internal/core/services"
	"github.com/custodia-labs/split-engine/internal/extractors"
	"github.com/custodia-labs/split-engine/internal/logger"
)

// envFile is loaded from the working directory when present.
const envFile = ".env"

// bootstrap wires configuration, storage and services for one command.
func bootstrap(opts cli.GlobalOptions) (*cli.Services, error) {
	logger.SetVerbose(opts.Verbose)

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config directory: %w", err)
		}
		configDir = dir
	}

	fileStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	store, err := envstore.New(fileStore)
	if err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	settingsService := services.NewSettingsService(store)

	settings, err := settingsService.Get()
	if err != nil {
		// Keep the CLI usable so `config set` can repair the file.
		logger.Warn("%v; using defaults", err)
		defaults := settingsService.GetDefaults()
		settings = &defaults
	}
	if settings.Logging.Verbose {
		logger.SetVerbose(true)
	}

	registry, closeRegistry, err := openRegistry(settings.Registry, configDir)
	if err != nil {
		return nil, err
	}

	extractorRegistry := extractors.NewDefaultRegistry(settings.Extractors.Disabled)
	logger.Debug("extractors: %v (unavailable: %v)", extractorRegistry.Extensions(), extractorRegistry.Unavailable())

	packer := zippack.NewPacker()
	return &cli.Services{
		Ingest: services.NewIngestService(registry, extractorRegistry),
		Split: services.NewSplitService(registry, packer,
			services.WithThresholdPolicy(services.NewThresholdPolicy(settings.Split))),
		Archive:  services.NewArchiveService(zippack.NewReader(zippack.DefaultMaxUnpacked)),
		Settings: settingsService,
		Source:   store,
		Close:    closeRegistry,
	}, nil
}

// openRegistry selects the document registry backend.
func openRegistry(cfg domain.RegistrySettings, configDir string) (driven.DocumentRegistry, func() error, error) {
	switch cfg.Backend {
	case domain.RegistrySQLite:
		dataDir := cfg.DataDir
		if dataDir == "" {
			dataDir = filepath.Join(configDir, "data")
		}
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening registry: %w", err)
		}
		logger.Debug("registry: sqlite at %s", store.Path())
		return store.Registry(), store.Close, nil
	default:
		logger.Debug("registry: memory")
		return memory.NewRegistry(), func() error { return nil }, nil
	}
}
