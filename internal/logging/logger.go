// Package logging provides category-scoped zap loggers for the engine.
// Before Init is called every category returns a nop logger, so library
// consumers that never configure logging pay nothing and never panic.
// Validation passes do not log: they are pure functions.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mayalint/internal/config"
)

var (
	mu   sync.RWMutex
	root = zap.NewNop()
)

// Init builds the process logger from config. Safe to call more than once;
// the last call wins.
func Init(cfg config.LoggingConfig) error {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}
	zcfg := zap.NewProductionConfig()
	if cfg.Dev {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	mu.Lock()
	root = logger
	mu.Unlock()
	return nil
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}

func named(category string) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.Named(category)
}

// Analysis logs aggregator and session activity.
func Analysis() *zap.Logger { return named("analysis") }

// Patch logs fix relocation and application.
func Patch() *zap.Logger { return named("patch") }

// Knowledge logs knowledge-base construction.
func Knowledge() *zap.Logger { return named("knowledge") }

// Watch logs file-watching activity in the CLI.
func Watch() *zap.Logger { return named("watch") }
