package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorageService keeps proof images on local disk. It serves as the
// "local" backend and as the fallback when R2 is unavailable.
type LocalStorageService struct {
	basePath string
	baseURL  string
}

// NewLocalStorageService creates a local storage service rooted at basePath
func NewLocalStorageService(basePath, baseURL string) (*LocalStorageService, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &LocalStorageService{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// resolve maps a key to a path inside basePath, rejecting traversal
func (f *LocalStorageService) resolve(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	fullPath := filepath.Join(f.basePath, filepath.FromSlash(key))
	rel, err := filepath.Rel(f.basePath, fullPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return fullPath, nil
}

// Upload writes the object to disk
func (f *LocalStorageService) Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error) {
	fullPath, err := f.resolve(key)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}
	defer file.Close()

	written, err := io.Copy(file, reader)
	if err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}
	if size >= 0 && written != size {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("size mismatch: expected %d bytes, wrote %d bytes", size, written)
	}

	log.Printf("Stored payment proof %s at %s", key, fullPath)
	return f.GetURL(key), nil
}

// Delete removes a file and prunes empty parent directories
func (f *LocalStorageService) Delete(ctx context.Context, key string) error {
	fullPath, err := f.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}

	f.cleanupEmptyDirs(filepath.Dir(fullPath))
	return nil
}

// GetURL returns the public URL for a key
func (f *LocalStorageService) GetURL(key string) string {
	return f.baseURL + "/" + strings.TrimPrefix(key, "/")
}

// Exists checks if a file exists on disk
func (f *LocalStorageService) Exists(ctx context.Context, key string) (bool, error) {
	fullPath, err := f.resolve(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check if file exists: %w", err)
	}
	return true, nil
}

func (f *LocalStorageService) cleanupEmptyDirs(dir string) {
	if dir == f.basePath || dir == "." || dir == "/" || !strings.HasPrefix(dir, f.basePath) {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}

	if err := os.Remove(dir); err == nil {
		f.cleanupEmptyDirs(filepath.Dir(dir))
	}
}

// StorageServiceWithFallback writes to primary and falls back on error
type StorageServiceWithFallback struct {
	primary  StorageService
	fallback StorageService
}

// NewStorageServiceWithFallback creates a storage service with fallback capability
func NewStorageServiceWithFallback(primary, fallback StorageService) *StorageServiceWithFallback {
	return &StorageServiceWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// Upload tries primary storage first. The reader must be an io.Seeker for the
// fallback to receive the full content.
func (s *StorageServiceWithFallback) Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error) {
	url, err := s.primary.Upload(ctx, key, reader, contentType, size)
	if err == nil {
		return url, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	log.Printf("Primary proof storage failed, using fallback: %v", err)

	seeker, ok := reader.(io.Seeker)
	if !ok {
		return "", fmt.Errorf("primary storage failed and cannot reset reader for fallback: %w", err)
	}
	if _, seekErr := seeker.Seek(0, io.SeekStart); seekErr != nil {
		return "", fmt.Errorf("primary storage failed and reader could not be rewound: %w", err)
	}
	return s.fallback.Upload(ctx, key, reader, contentType, size)
}

// Delete removes the key from both storages
func (s *StorageServiceWithFallback) Delete(ctx context.Context, key string) error {
	primaryErr := s.primary.Delete(ctx, key)
	fallbackErr := s.fallback.Delete(ctx, key)

	if primaryErr != nil && fallbackErr != nil {
		return fmt.Errorf("both storages failed - primary: %v, fallback: %v", primaryErr, fallbackErr)
	}
	return nil
}

// GetURL returns the URL from primary storage
func (s *StorageServiceWithFallback) GetURL(key string) string {
	return s.primary.GetURL(key)
}

// Exists checks primary first, then fallback
func (s *StorageServiceWithFallback) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := s.primary.Exists(ctx, key)
	if err == nil && exists {
		return true, nil
	}
	return s.fallback.Exists(ctx, key)
}

var (
	_ StorageService = (*R2Service)(nil)
	_ StorageService = (*LocalStorageService)(nil)
	_ StorageService = (*StorageServiceWithFallback)(nil)
)
