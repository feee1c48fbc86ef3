package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
)

const version = "0.1.0"

var (
	versionOption = flag.Bool("version", false, "scalegen version")
	configOption  = flag.String("config", "", "config file (default: search .scalegen.yml, scalegen.yml, .scalegen.yaml, scalegen.yaml upward from the current directory)")
	verboseOption = flag.Bool("verbose", false, "print progress logs")
)

func main() {
	flag.Parse()

	if *versionOption {
		fmt.Printf("scalegen v%s", version)

		return
	}

	logger, err := newLogger(*verboseOption)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	if err := run(ctx, *configOption, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
