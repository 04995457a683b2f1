/*
Package main is the entry point for the picnicbox lobby service.

It loads configuration, initializes the global logging system, connects the
document store, wires the room directory, broadcaster hub, and membership
coordinator together, and runs the HTTP server with graceful shutdown on
operating system interrupt signals (SIGINT, SIGTERM).
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"picnicbox/internal/app/db"
	"picnicbox/internal/app/lobby"
	"picnicbox/internal/app/pack"
	"picnicbox/internal/app/room"
	"picnicbox/internal/configs"
	"picnicbox/internal/handler"
	"picnicbox/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect the document store and apply migrations
	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to initialize document store")
	}
	defer pool.Close()

	// Wire the room directory, broadcaster, and membership coordinator
	directory := room.NewDirectory(room.NewPGStore(pool))
	hub := lobby.NewHub()
	coordinator := lobby.NewCoordinator(directory, hub)

	catalog, err := pack.LoadCatalog()
	if err != nil {
		logx.Fatal(err, "Failed to load content pack catalog")
	}

	// Setup HTTP server and routes
	router := handler.Router(&handler.AppDeps{
		Config:      cfg,
		Directory:   directory,
		Coordinator: coordinator,
		Packs:       catalog,
	})

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("picnicbox server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	hub.Shutdown()

	logx.Info("Server gracefully stopped.")
}
