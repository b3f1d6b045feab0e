package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newtab-go/pkg/api"
	"newtab-go/pkg/config"
	"newtab-go/pkg/db"
	"newtab-go/pkg/shortcuts"

	"github.com/spf13/afero"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	presets, err := shortcuts.LoadPresetsFile(afero.NewOsFs(), cfg.Shortcuts.PresetsFile)
	if err != nil {
		log.Fatalf("failed to load presets: %v", err)
	}

	ctx := context.Background()

	// Initialize storage
	backend, err := db.Open(ctx, cfg.Storage.Driver, cfg.Storage.URL)
	if err != nil {
		log.Fatalf("failed to open %s storage: %v", cfg.Storage.Driver, err)
	}
	defer backend.Close()
	log.Printf("using %s storage", cfg.Storage.Driver)

	// Initialize router
	router := api.NewRouter(backend, cfg, presets)

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("API server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
