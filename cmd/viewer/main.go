package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strikeup/internal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
)

type Config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" default:"./data/strikeup"`
	DebugPort      int    `envconfig:"DEBUG_PORT" default:"8081"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"INFO"`
}

func main() {
	// 1. Load config
	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Open Badger in Read-Only mode
	// BypassLockGuard allows opening while the CLI holds the lock
	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	stats, err := internal.ProcessStats(logger, map[string]any{
		"Status": "Viewer Mode (Read-Only)",
		"Path":   config.BadgerFilepath,
	})
	if err != nil {
		log.Fatalf("Failed to inspect own process: %v", err)
	}

	// 3. Serve until interrupted
	server := internal.StartDebugServer(db, logger, config.DebugPort, "/inspect", stats)
	fmt.Printf("🎳 Viewer started at http://localhost:%d/inspect\n", config.DebugPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	logger.Info("Viewer stopped")
}
