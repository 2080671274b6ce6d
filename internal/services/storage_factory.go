package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"travel-storefront/internal/config"
)

// Proof storage backends
const (
	ProofStorageAPI   = "api"
	ProofStorageR2    = "r2"
	ProofStorageLocal = "local"
)

// StorageFactory builds the configured proof uploader
type StorageFactory struct {
	config *config.Config
	api    ImageUploader
}

// NewStorageFactory creates a new storage factory. api is only used by the
// "api" backend.
func NewStorageFactory(cfg *config.Config, api ImageUploader) *StorageFactory {
	return &StorageFactory{config: cfg, api: api}
}

// ImageService returns a proof image service with the configured limits
func (f *StorageFactory) ImageService() *ProofImageService {
	return NewProofImageService(f.config.Upload.MaxBytes, f.config.Upload.MaxDimension)
}

// CreateProofUploader returns the uploader selected by PROOF_STORAGE
func (f *StorageFactory) CreateProofUploader(ctx context.Context) (ProofUploader, error) {
	images := f.ImageService()

	switch strings.ToLower(f.config.Upload.Storage) {
	case ProofStorageAPI, "":
		if f.api == nil {
			return nil, errors.New("api proof storage requires an API client")
		}
		return NewAPIProofUploader(f.api, images), nil
	case ProofStorageLocal:
		local, err := f.localStorage()
		if err != nil {
			return nil, err
		}
		return NewStorageProofUploader(local, images), nil
	case ProofStorageR2:
		storage, err := f.CreateStorageService(ctx)
		if err != nil {
			return nil, err
		}
		return NewStorageProofUploader(storage, images), nil
	default:
		return nil, fmt.Errorf("unknown PROOF_STORAGE %q (want api, r2 or local)", f.config.Upload.Storage)
	}
}

// CreateStorageService creates R2 storage with local fallback, or local only
// when R2 is unreachable
func (f *StorageFactory) CreateStorageService(ctx context.Context) (StorageService, error) {
	local, err := f.localStorage()
	if err != nil {
		return nil, err
	}

	r2Service, err := NewR2Service(ctx, f.config.R2)
	if err != nil {
		log.Printf("Warning: R2 service unavailable, using local proof storage only: %v", err)
		return local, nil
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := r2Service.HealthCheck(checkCtx); err != nil {
		log.Printf("Warning: R2 health check failed, using local proof storage only: %v", err)
		return local, nil
	}

	log.Printf("R2 proof storage initialized (bucket %s)", f.config.R2.BucketName)
	return NewStorageServiceWithFallback(r2Service, local), nil
}

func (f *StorageFactory) localStorage() (*LocalStorageService, error) {
	return NewLocalStorageService(f.config.Upload.Dir, f.config.Upload.BaseURL)
}

// SetupR2Bucket creates the proof bucket and applies CORS for the storefront origins
func (f *StorageFactory) SetupR2Bucket(ctx context.Context) error {
	if err := f.ValidateR2Configuration(); err != nil {
		return err
	}

	r2Service, err := NewR2Service(ctx, f.config.R2)
	if err != nil {
		return fmt.Errorf("failed to create R2 service: %w", err)
	}

	if err := r2Service.CreateBucket(ctx); err != nil {
		return fmt.Errorf("failed to create R2 bucket: %w", err)
	}
	if err := r2Service.SetBucketCORS(ctx, f.config.CORS.AllowedOrigins); err != nil {
		return fmt.Errorf("failed to set R2 bucket CORS: %w", err)
	}

	log.Printf("R2 bucket '%s' configured successfully", f.config.R2.BucketName)
	return nil
}

// ValidateR2Configuration validates the R2 configuration
func (f *StorageFactory) ValidateR2Configuration() error {
	cfg := f.config.R2

	var missing []string
	if cfg.AccountID == "" && cfg.Endpoint == "" {
		missing = append(missing, "R2_ACCOUNT_ID")
	}
	if cfg.AccessKeyID == "" {
		missing = append(missing, "R2_ACCESS_KEY_ID")
	}
	if cfg.SecretAccessKey == "" {
		missing = append(missing, "R2_SECRET_ACCESS_KEY")
	}
	if cfg.BucketName == "" {
		missing = append(missing, "R2_BUCKET_NAME")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing R2 configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// GetStorageInfo describes the configured proof storage
func (f *StorageFactory) GetStorageInfo(ctx context.Context) map[string]interface{} {
	r2Configured := f.config.R2.AccessKeyID != "" && f.config.R2.SecretAccessKey != ""
	info := map[string]interface{}{
		"backend":       f.config.Upload.Storage,
		"r2_configured": r2Configured,
		"bucket_name":   f.config.R2.BucketName,
		"public_url":    f.config.R2.PublicURL,
		"local_path":    f.config.Upload.Dir,
		"r2_available":  false,
	}

	if r2Configured {
		if r2Service, err := NewR2Service(ctx, f.config.R2); err == nil {
			checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			info["r2_available"] = r2Service.HealthCheck(checkCtx) == nil
		}
	}

	return info
}
