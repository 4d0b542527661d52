package main

import (
	"flag"
	"os"

	"github.com/aristath/benchcompare/internal/config"
	"github.com/aristath/benchcompare/internal/di"
	"github.com/aristath/benchcompare/pkg/logger"
	"github.com/rs/zerolog"
)

var verbose = flag.Bool("v", false, "Log progress to stderr")

// openContainer loads configuration, applies overrides and wires the dependencies.
func openContainer(override func(*config.Config)) (*di.Container, zerolog.Logger, error) {
	level := "warn"
	if *verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Level: level, Pretty: true, Output: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		return nil, log, err
	}
	if override != nil {
		override(cfg)
	}

	container, err := di.Wire(cfg, log)
	if err != nil {
		return nil, log, err
	}
	return container, log, nil
}
