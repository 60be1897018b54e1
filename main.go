package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/clarityhq/clarity/pkg/config"
	"github.com/clarityhq/clarity/pkg/utils"
)

// main starts the Clarity API server and blocks until interrupted.
func main() {
	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	utils.InitLogger()
	logger := utils.GetLogger()

	if _, err := config.EnsureDefaultConfig(); err != nil {
		logger.Warn("Failed to write default config", "error", err)
	}

	cfg, configFile, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Info("Loaded config", "path", configFile)

	if cfg.GeminiAPIKey() == "" {
		logger.Warn("GEMINI_API_KEY is not set; ask requests will fail until it is configured")
	}

	server, err := NewServer(cfg)
	if err != nil {
		logger.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Error("Failed to start server", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Shutting down")
}
