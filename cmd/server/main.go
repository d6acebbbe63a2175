// cmd/server/main.go
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

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vapeshop/vapeshop-backend/internal/config"
	"github.com/vapeshop/vapeshop-backend/internal/kvstore"
	"github.com/vapeshop/vapeshop-backend/internal/repository"
	"github.com/vapeshop/vapeshop-backend/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Initialize the key-value store
	store, err := kvstore.Initialize(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to initialize store:", err)
	}
	defer store.Close()

	// Seed starter catalog on first run
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	alloc := repository.NewAllocator(store)
	if err := repository.SeedProducts(seedCtx, repository.NewProductRepository(store, alloc)); err != nil {
		log.Fatal("Failed to seed products:", err)
	}
	cancelSeed()

	// Initialize router
	r := router.Initialize(store, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
