package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recallify/internal/api"
	"recallify/internal/config"
	"recallify/internal/extractor"
	"recallify/internal/generate"
	"recallify/internal/ingest"
	"recallify/internal/session"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize extraction.
	registry := extractor.NewRegistry(cfg.OCRLanguage, func(fraction float64) {
		log.Debug("ocr progress", "fraction", fraction)
	})
	coordinator := ingest.NewCoordinator(registry, log)

	// Initialize generation.
	gemini := generate.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GenerateTimeout)
	generator := generate.NewService(gemini, log, cfg.LegacyHighlightCount)

	// Initialize session state.
	sessions := session.NewStore(cfg.SessionTTL)
	stopCleanup := make(chan struct{})
	sessions.StartCleanup(cfg.CleanupInterval, stopCleanup)

	// Initialize HTTP server.
	srv := api.NewServer(coordinator, generator, sessions, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		close(stopCleanup)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		gemini.Close()
	}()

	log.Info("starting recallify", "port", cfg.Port, "model", cfg.GeminiModel)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
