package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/arena"
	"github.com/vovakirdan/tui-bomber/internal/games/arena/maps"
)

var (
	logger  = log.New(io.Discard)
	logFile *os.File
	watcher *maps.Watcher
	stopMap context.CancelFunc
)

// setup wires the global flags into logging, the arena settings and the
// map pool. It runs before every subcommand.
func setup() error {
	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.DateTime,
		})
		if level, err := log.ParseLevel(flagLogLevel); err == nil {
			logger.SetLevel(level)
		}
	}

	if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
		return err
	}
	arena.SetLogger(logger.WithPrefix("arena"))
	arena.SetConfigPath(flagConfig)
	arena.SetDifficultyPreset(flagDifficulty)

	if flagMapsDir == "" {
		if flagWatch {
			return errors.New("--watch needs --maps")
		}
		return nil
	}

	size, err := mapSize()
	if err != nil {
		return err
	}
	pool, rejected, err := maps.Load(flagMapsDir, size)
	if err != nil {
		return err
	}
	for _, r := range rejected {
		logger.Warn("map rejected", "err", r)
	}
	arena.SetMapPool(pool)

	if flagWatch {
		w, err := maps.NewWatcher(flagMapsDir)
		if err != nil {
			return fmt.Errorf("watch maps: %w", err)
		}
		watcher = w
		ctx, cancel := context.WithCancel(context.Background())
		stopMap = cancel
		go pool.Follow(ctx, w, flagMapsDir, size, logger.WithPrefix("maps"))
	}
	return nil
}

// teardown releases what setup opened.
func teardown() error {
	if stopMap != nil {
		stopMap()
	}
	var errs []error
	if watcher != nil {
		errs = append(errs, watcher.Close())
	}
	if logFile != nil {
		errs = append(errs, logFile.Close())
	}
	return errors.Join(errs...)
}

// mapSize is the grid size maps must match under the active config.
func mapSize() (maps.Size, error) {
	cfg, err := config.LoadArena(flagConfig)
	if err != nil {
		return maps.Size{}, err
	}
	return maps.Size{Cols: cfg.Grid.Cols, Rows: cfg.Grid.Rows}, nil
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
