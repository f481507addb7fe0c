// Package main is the entry point for the ncosearch CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driven/api"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driven/config"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driven/voice/command"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/ncosearch-cli/internal/core/services"
	"github.com/custodia-labs/ncosearch-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// buildServices wires the config layers, the HTTP client and the core
// services for one run.
func buildServices(opts cli.Options) (*cli.Services, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	dir, err := file.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("locate config directory: %w", err)
	}

	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	effective := config.NewEnvOverlay(store, nil)

	settings, err := services.NewSettingsService(effective).Get()
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if opts.APIURL != "" {
		settings.API.BaseURL = strings.TrimRight(strings.TrimSpace(opts.APIURL), "/")
	}
	if !settings.API.IsConfigured() {
		return nil, fmt.Errorf("api base URL %q is not an absolute http(s) URL", settings.API.BaseURL)
	}

	logger.Debug("Using search service at %s (%s)", settings.API.BaseURL, settings.API.SearchMethod)

	cfg := api.ConfigFromSettings(settings.API)
	cfg.UserAgent = "ncosearch/" + version
	client := api.NewClient(cfg)

	return &cli.Services{
		Search:    services.NewSearchSession(client),
		Voice:     services.NewVoiceInput(command.New(settings.Voice)),
		Admin:     services.NewAdminService(client),
		SearchLog: services.NewSearchLogService(client),
		Settings:  services.NewSettingsService(store),
		Config:    effective,
		LogPath:   filepath.Join(dir, "debug.log"),
	}, nil
}
