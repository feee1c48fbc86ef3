package plugins

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Yamashou/scalegen/config"
	"github.com/Yamashou/scalegen/plugins/typegen"
)

func GenerateCode(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	registry, err := cfg.LoadRegistry(ctx)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	logger.Debug("loaded registry", zap.Int("types", registry.Len()))

	// typegen
	typeGen := typegen.New(cfg, registry, logger)
	if err := typeGen.Generate(); err != nil {
		return fmt.Errorf("%s failed: %w", typeGen.Name(), err)
	}

	return nil
}
