package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Yamashou/scalegen/config"
	"github.com/Yamashou/scalegen/plugins"
)

func run(ctx context.Context, cfgFile string, logger *zap.Logger) error {
	if cfgFile == "" {
		found, err := config.FindConfigFile(".", config.DefaultConfigFilenames)
		if err != nil {
			return fmt.Errorf("failed to find config file: %w", err)
		}
		cfgFile = found
	}
	logger.Debug("using config file", zap.String("config", cfgFile))

	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	if err := plugins.GenerateCode(ctx, cfg, logger); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	return nil
}
