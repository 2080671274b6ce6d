package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-storefront/internal/checkout"
	"travel-storefront/internal/config"
	"travel-storefront/internal/middleware"
	"travel-storefront/internal/server"
	"travel-storefront/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := services.NewAPIClient(cfg.API)

	store, err := middleware.NewSessionStore(cfg.Session)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}

	// Proof storage
	storageFactory := services.NewStorageFactory(cfg, api)
	proofs, err := storageFactory.CreateProofUploader(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize proof storage: %v", err)
	}

	controller := checkout.NewController(api, proofs, checkout.RetryPolicy{
		Attempts:   cfg.Checkout.CartAttempts,
		Delay:      cfg.Checkout.CartRetryDelay,
		Multiplier: cfg.Checkout.RetryMultiplier,
	})

	// 5 login attempts per 15 minutes per IP
	rateLimiter := middleware.NewLoginRateLimiter(5, 15*time.Minute)
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rateLimiter.Cleanup()
			}
		}
	}()

	router := server.NewRouter(server.Deps{
		Config:      cfg,
		API:         api,
		Store:       store,
		Checkout:    controller,
		RateLimiter: rateLimiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on %s (Environment: %s, API: %s, proofs: %s)",
			cfg.Addr(), cfg.Server.Env, api.BaseURL(), cfg.Upload.Storage)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Printf("Shutdown complete")
}
