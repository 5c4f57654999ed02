package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/websetgate/websetgate/internal/api"
	"github.com/websetgate/websetgate/internal/config"
	"github.com/websetgate/websetgate/internal/exa"
	"github.com/websetgate/websetgate/internal/webset"
)

func main() {
	loadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if cfg.ExaAPIKey == "" {
		logger.Warn("EXA_API_KEY not set, status polls will return 503")
	}

	client := exa.NewClient(cfg.ExaBaseURL, cfg.ExaAPIKey, cfg.ExaTimeout)
	poller := webset.NewPoller(client, cfg.ExaAPIKey, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := api.NewHandler(poller, cfg, logger)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      h.Router(ctx),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.ExaTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	logger.Info("websetgate listening", "addr", cfg.ListenAddr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// loadDotEnv loads the nearest .env file walking up from the working
// directory. Variables already set in the environment win.
func loadDotEnv() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
