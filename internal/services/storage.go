package services

import (
	"context"
	"io"
	"time"
)

// StorageService defines the interface for proof file storage
type StorageService interface {
	// Upload stores the object and returns its public URL
	Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error)

	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for a key
	GetURL(key string) string

	Exists(ctx context.Context, key string) (bool, error)
}

// ProofImage is a proof of payment after validation and normalisation
type ProofImage struct {
	Data           []byte
	ContentType    string
	OriginalFormat string
	Width          int
	Height         int
	ProcessedAt    time.Time
}

// Size returns the encoded size in bytes
func (p *ProofImage) Size() int64 {
	return int64(len(p.Data))
}
