package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/suavecitoo1998-ship-it/Santa/internal/api"
	"github.com/suavecitoo1998-ship-it/Santa/internal/config"
	"github.com/suavecitoo1998-ship-it/Santa/internal/elf"
	"github.com/suavecitoo1998-ship-it/Santa/internal/service"
	"github.com/suavecitoo1998-ship-it/Santa/internal/storage"
	"github.com/suavecitoo1998-ship-it/Santa/pkg/logger"
)

func main() {
	// Load the environment variables; a missing .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.LogLevel)
	l.Info("Starting Santa wishlist...")

	// Database
	db, err := storage.Open(cfg.DatabasePath, l)
	if err != nil {
		l.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate("migrations"); err != nil {
		l.Fatalf("Failed to run migrations: %v", err)
	}

	// Store, enrichment client and the wishlist engine
	store := storage.NewStore(db.DB, l)
	elfClient := elf.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, l)
	svc := service.New(store, elfClient, l)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		l.Info("Received shutdown signal...")
		cancel()
	}()

	// HTTP server for the API and web UI
	apiServer := api.NewServer(svc, l)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: apiServer.Handler(),
	}

	go func() {
		l.Infof("HTTP server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Errorf("HTTP server error: %v", err)
		}
	}()

	l.Info("Santa wishlist started successfully")

	<-ctx.Done()

	l.Info("Shutting down HTTP server...")
	httpServer.Close()

	// Flush the last state so it survives the restart.
	if err := svc.Close(); err != nil {
		l.Errorf("Failed to save wishlist on shutdown: %v", err)
	}

	l.Info("Santa wishlist stopped")
}
