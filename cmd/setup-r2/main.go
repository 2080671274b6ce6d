package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"travel-storefront/internal/config"
	"travel-storefront/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// The api uploader is not needed to manage the bucket
	factory := services.NewStorageFactory(cfg, nil)

	if err := factory.ValidateR2Configuration(); err != nil {
		log.Fatalf("R2 configuration validation failed: %v", err)
	}
	fmt.Println("R2 configuration is valid")

	info := factory.GetStorageInfo(ctx)
	fmt.Printf("Proof storage:\n")
	fmt.Printf("  Backend: %v\n", info["backend"])
	fmt.Printf("  R2 Configured: %v\n", info["r2_configured"])
	fmt.Printf("  R2 Available: %v\n", info["r2_available"])
	fmt.Printf("  Bucket Name: %v\n", info["bucket_name"])
	fmt.Printf("  Public URL: %v\n", info["public_url"])
	fmt.Printf("  Local Path: %v\n", info["local_path"])

	if len(os.Args) > 1 && os.Args[1] == "setup" {
		fmt.Println("\nSetting up R2 proof bucket...")
		if err := factory.SetupR2Bucket(ctx); err != nil {
			log.Fatalf("Failed to set up R2 bucket: %v", err)
		}
		fmt.Println("R2 bucket setup completed successfully!")
	} else {
		fmt.Println("\nTo set up the R2 bucket, run: go run ./cmd/setup-r2 setup")
	}
}
