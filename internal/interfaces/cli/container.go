// Package cli exposes the zxpman command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/zxpstudio/zxpman/internal/application/services"
	"github.com/zxpstudio/zxpman/internal/config"
	"github.com/zxpstudio/zxpman/internal/infrastructure/discovery"
	"github.com/zxpstudio/zxpman/internal/infrastructure/installer"
	"github.com/zxpstudio/zxpman/internal/infrastructure/logging"
	"github.com/zxpstudio/zxpman/internal/infrastructure/manifest"
	"github.com/zxpstudio/zxpman/internal/infrastructure/ownership"
	"github.com/zxpstudio/zxpman/internal/infrastructure/paths"
	"github.com/zxpstudio/zxpman/internal/infrastructure/removal"
)

// CLIContainer holds the wired dependencies for all commands
type CLIContainer struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Resolver *paths.Resolver
	Manager  *services.ManagerService
}

// NewContainer loads configuration and wires the lifecycle components.
// configPath may be empty, in which case the conventional location is
// used; verbose forces debug-level logging regardless of config.
func NewContainer(configPath string, verbose bool) (*CLIContainer, error) {
	if configPath == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		configPath = defaultPath
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger := logging.New(os.Stderr, level)

	var resolverOpts []paths.Option
	if cfg.SystemRoot != "" {
		resolverOpts = append(resolverOpts, paths.WithSystemRoot(cfg.SystemRoot))
	}
	if cfg.UserRoot != "" {
		resolverOpts = append(resolverOpts, paths.WithUserRoot(cfg.UserRoot))
	}
	resolver := paths.NewResolver(resolverOpts...)

	parser := manifest.NewParser()
	scanner := discovery.NewFileSystemScanner(resolver, parser, ownership.NewClassifier(), logger)
	zxpInstaller := installer.NewZXPInstaller(resolver, parser, logger)
	remover := removal.NewTieredRemover(removal.NewOSElevator(logger), logger)

	return &CLIContainer{
		Config:   cfg,
		Logger:   logger,
		Resolver: resolver,
		Manager:  services.NewManagerService(scanner, zxpInstaller, remover, logger),
	}, nil
}
