// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/shahakanksha-tamu/SummarizeME/pkg/adapters/http"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/core/api"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/core/config"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/core/engine"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/core/model"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/filestore"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/hub"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/observability/logging"

	// Register artifact store backends.
	_ "github.com/shahakanksha-tamu/SummarizeME/pkg/filestore/filesystem"
	_ "github.com/shahakanksha-tamu/SummarizeME/pkg/filestore/memory"
	_ "github.com/shahakanksha-tamu/SummarizeME/pkg/filestore/s3"
)

var (
	// Version is set via ldflags during build
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	port := flag.Int("port", 0, "HTTP port to listen on (overrides config)")
	preload := flag.Bool("preload", false, "Load the model before accepting requests")
	version := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	// Print version
	if *version {
		fmt.Printf("SummarizeME Server\nVersion: %s\nBuild Time: %s\n", Version, BuildTime)
		os.Exit(0)
	}

	// Load configuration
	cfg, cfgErr := config.Load(*configPath)
	if cfgErr != nil && !errors.Is(cfgErr, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load config: %v\n", cfgErr)
		os.Exit(1)
	}
	if cfgErr != nil {
		cfg = config.Default()
		if err := config.ApplyEnv(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "invalid environment: %v\n", err)
			os.Exit(1)
		}
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *preload {
		cfg.Model.Preload = true
	}

	// Initialize logger
	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	logger.Info("Starting SummarizeME Server",
		"version", Version,
		"build_time", BuildTime)
	if cfgErr != nil {
		logger.Info("No config file, using defaults and environment", "path", *configPath)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	initCtx := context.Background()

	// Initialize artifact store
	artifacts, err := filestore.Providers.New(initCtx, cfg.ArtifactStore.Type, cfg.ArtifactStore.Params())
	if err != nil {
		logger.Error("Failed to initialize artifact store", "type", cfg.ArtifactStore.Type, "error", err)
		os.Exit(1)
	}
	defer artifacts.Close(context.Background())
	logger.Info("Initialized artifact store", "type", cfg.ArtifactStore.Type)

	hubClient := hub.NewClient(hub.Options{
		Endpoint: cfg.Model.HubEndpoint,
		Token:    cfg.Model.Token,
		Store:    artifacts,
		Logger:   logger,
	})

	// Initialize generation client
	var generator api.GenerationClient
	if cfg.Generation.Endpoint != "" {
		generator = api.NewOpenAIGenerationClient(cfg.Generation.Endpoint, cfg.Generation.APIKey, cfg.Generation.Timeout)
		logger.Info("Initialized generation client", "endpoint", cfg.Generation.Endpoint)
	} else {
		logger.Warn("No generation endpoint configured (set GENERATION_ENDPOINT); summarization requests will fail")
	}

	holder := model.NewHolder(cfg.Model.ID, model.NewLoader(model.LoaderConfig{
		ModelID:        cfg.Model.ID,
		DeviceOverride: cfg.Model.Device,
		Hub:            hubClient,
		Generator:      generator,
		Logger:         logger,
	}), logger)

	eng, err := engine.New(holder, logger)
	if err != nil {
		logger.Error("Failed to initialize engine", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized engine", "model", cfg.Model.ID)

	if cfg.Model.Preload {
		if _, err := holder.Get(initCtx); err != nil {
			logger.Error("Failed to preload model", "error", err)
			os.Exit(1)
		}
	}

	// Initialize HTTP adapter
	handler := httpAdapter.New(eng, logger, httpAdapter.Options{
		AllowOrigins: cfg.CORS.AllowOrigins,
	})
	logger.Info("Initialized HTTP adapter", "cors_origins", cfg.CORS.AllowOrigins)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	go func() {
		logger.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	logger.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
