package cmd

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ziadkadry99/malabomap/internal/boot"
	"github.com/ziadkadry99/malabomap/internal/config"
	"github.com/ziadkadry99/malabomap/internal/logging"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `malabomap init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger from the --verbose flag.
func newLogger() (*zap.Logger, error) {
	logger, err := logging.New(verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}

// newSequence describes the startup run for cfg.
func newSequence(cfg *config.Config, logger *zap.Logger) *boot.Sequence {
	return &boot.Sequence{
		Fetcher:           boot.NewSourceFetcher(),
		Assets:            boot.FSAssets{FS: os.DirFS(cfg.AssetsDir)},
		DataSource:        cfg.DataSource,
		ParticlesSource:   cfg.ParticlesSource,
		CoreAssets:        cfg.Assets.Core,
		EnhancementAssets: cfg.Assets.Enhancement,
		MapOptions:        cfg.MapOptions(),
		Logger:            logger,
		OnCoreReady: func() {
			logger.Debug("core bundles ready", zap.Strings("assets", cfg.Assets.Core))
		},
	}
}

// runBoot executes the startup sequence, logging a failure at Error.
func runBoot(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*boot.Result, error) {
	res, err := newSequence(cfg, logger).Run(ctx)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return nil, err
	}
	return res, nil
}
