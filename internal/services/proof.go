package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"time"

	"travel-storefront/internal/models"
)

// proofErrorMessage turns a normalisation failure into a user-facing message
func proofErrorMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrNoProofFile):
		return "Please choose a proof of payment image"
	case errors.Is(err, models.ErrInvalidImage):
		return "Proof of payment must be a JPEG, PNG or WebP image within the size limit"
	default:
		return "Failed to process proof of payment"
	}
}

// APIProofUploader normalises the image and sends it to the travel API's
// upload endpoint
type APIProofUploader struct {
	api    ImageUploader
	images *ProofImageService
}

// NewAPIProofUploader creates an uploader backed by POST /upload-image
func NewAPIProofUploader(api ImageUploader, images *ProofImageService) *APIProofUploader {
	return &APIProofUploader{api: api, images: images}
}

func (u *APIProofUploader) UploadProof(ctx context.Context, filename string, reader io.Reader) Result[models.UploadResult] {
	img, err := u.images.Normalize(reader)
	if err != nil {
		return Result[models.UploadResult]{Error: proofErrorMessage(err)}
	}
	return u.api.UploadImage(ctx, generateProofKey(filename, time.Now()), img.ContentType, bytes.NewReader(img.Data))
}

// StorageProofUploader normalises the image and writes it to a StorageService
type StorageProofUploader struct {
	storage StorageService
	images  *ProofImageService
	now     func() time.Time
}

// NewStorageProofUploader creates an uploader backed by R2 or local disk
func NewStorageProofUploader(storage StorageService, images *ProofImageService) *StorageProofUploader {
	return &StorageProofUploader{storage: storage, images: images, now: time.Now}
}

func (u *StorageProofUploader) UploadProof(ctx context.Context, filename string, reader io.Reader) Result[models.UploadResult] {
	img, err := u.images.Normalize(reader)
	if err != nil {
		return Result[models.UploadResult]{Error: proofErrorMessage(err)}
	}

	key := generateProofKey(filename, u.now())
	url, err := u.storage.Upload(ctx, key, bytes.NewReader(img.Data), img.ContentType, img.Size())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Result[models.UploadResult]{Error: "Request was cancelled"}
		}
		log.Printf("Failed to store payment proof %s: %v", key, err)
		return Result[models.UploadResult]{Error: "Failed to upload image"}
	}

	return Result[models.UploadResult]{
		Success: true,
		Data:    models.UploadResult{URL: url},
	}
}

var (
	_ ProofUploader = (*APIProofUploader)(nil)
	_ ProofUploader = (*StorageProofUploader)(nil)
)
