package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"travel-storefront/internal/config"
	"travel-storefront/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client := services.NewAPIClient(cfg.API)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ctx = services.ContextWithRequestID(ctx, uuid.NewString())

	fmt.Printf("Checking travel API at %s\n", client.BaseURL())
	if cfg.API.Key == "" {
		fmt.Println("  Warning: API_KEY is not set")
	}

	failed := false

	methods := client.GetPaymentMethods(ctx)
	if err := methods.Err(); err != nil {
		fmt.Printf("  Payment methods: FAILED (%v)\n", err)
		failed = true
	} else {
		fmt.Printf("  Payment methods: %d\n", len(methods.Data))
		for _, m := range methods.Data {
			fmt.Printf("    - %s (%s)\n", m.Name, m.ID)
		}
	}

	activities := client.GetActivities(ctx)
	if err := activities.Err(); err != nil {
		fmt.Printf("  Activities: FAILED (%v)\n", err)
		failed = true
	} else {
		fmt.Printf("  Activities: %d\n", len(activities.Data))
	}

	categories := client.GetCategories(ctx)
	if err := categories.Err(); err != nil {
		fmt.Printf("  Categories: FAILED (%v)\n", err)
		failed = true
	} else {
		fmt.Printf("  Categories: %d\n", len(categories.Data))
	}

	if failed {
		os.Exit(1)
	}
	fmt.Println("Travel API is reachable")
}
