// Package server assembles the storefront HTTP router.
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"travel-storefront/internal/checkout"
	"travel-storefront/internal/config"
	"travel-storefront/internal/handlers"
	"travel-storefront/internal/middleware"
	"travel-storefront/internal/services"
)

// Deps is everything the router needs
type Deps struct {
	Config      *config.Config
	API         services.StorefrontAPI
	Store       sessions.Store
	Checkout    *checkout.Controller
	RateLimiter *middleware.LoginRateLimiter
}

// NewRouter wires the middleware stack and all storefront routes
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config

	authMiddleware := middleware.NewAuthMiddleware(deps.API, deps.Store)
	csrfMiddleware := middleware.NewCSRFMiddleware(deps.Store)

	authHandler := handlers.NewAuthHandler(deps.API, deps.Store, deps.RateLimiter)
	catalogHandler := handlers.NewCatalogHandler(deps.API)
	cartHandler := handlers.NewCartHandler(deps.API, deps.Store)
	checkoutHandler := handlers.NewCheckoutHandler(deps.Checkout, deps.Store, cfg.Upload.MaxBytes)
	transactionHandler := handlers.NewTransactionHandler(deps.API, deps.Store)
	notificationHandler := handlers.NewNotificationHandler(deps.Store)

	r := chi.NewRouter()

	if cfg.Server.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.RequestIDMiddleware)
	if cfg.IsDevelopment() {
		r.Use(chimiddleware.Logger)
	}
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.ErrorHandlingMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig(cfg.CORS)))
	r.Use(middleware.SecureHeaders)
	r.Use(authMiddleware.LoadUser)
	r.Use(csrfMiddleware.EnsureCSRFToken)

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	// Catalog
	r.Get("/activities", catalogHandler.Activities)
	r.Get("/activities/{id}", catalogHandler.Activity)
	r.Get("/categories", catalogHandler.Categories)
	r.Get("/categories/{id}/activities", catalogHandler.CategoryActivities)
	r.Get("/promos", catalogHandler.Promos)
	r.Get("/banners", catalogHandler.Banners)

	// Authentication
	r.Get("/login", authHandler.LoginPage)
	r.Group(func(r chi.Router) {
		r.Use(middleware.LoginRateLimit(deps.RateLimiter))
		r.Use(csrfMiddleware.CSRFProtection)
		r.Post("/login", authHandler.LoginSubmit)
		r.Post("/register", authHandler.RegisterSubmit)
	})

	r.Get("/notifications", notificationHandler.List)

	// Signed-in routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Use(csrfMiddleware.CSRFProtection)

		r.Get("/user", authHandler.CurrentUser)
		r.Post("/logout", authHandler.Logout)

		r.Get("/cart", cartHandler.ViewCart)
		r.Post("/cart", cartHandler.AddToCart)
		r.Post("/cart/{id}", cartHandler.UpdateCartItem)
		r.Delete("/cart/{id}", cartHandler.RemoveCartItem)
		r.Post("/book-now", cartHandler.BookNow)

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", checkoutHandler.Show)
			r.Post("/payment-method", checkoutHandler.SelectPaymentMethod)
			r.Post("/transaction", checkoutHandler.CreateTransaction)
			r.Post("/proof", checkoutHandler.UploadProof)
			r.Post("/back", checkoutHandler.Back)
		})

		r.Get("/my-transactions", transactionHandler.MyTransactions)
		r.Get("/transactions/{id}", transactionHandler.Transaction)
		r.Post("/transactions/{id}/cancel", transactionHandler.Cancel)

		// Locally stored proofs
		if strings.EqualFold(cfg.Upload.Storage, services.ProofStorageLocal) && cfg.Upload.Dir != "" {
			r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Upload.Dir))))
		}
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"service": "travel-storefront",
			"proofs":  cfg.Upload.Storage,
		})
	})

	return r
}
