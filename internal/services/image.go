package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"travel-storefront/internal/models"
)

const (
	defaultProofMaxBytes     = 5 * 1024 * 1024
	defaultProofMaxDimension = 1600
	proofJPEGQuality         = 85
)

// ProofImageService validates and normalises proof of payment images before
// they are handed to a storage backend
type ProofImageService struct {
	maxBytes     int64
	maxDimension int
}

// NewProofImageService creates a new proof image service. Non-positive limits
// fall back to the defaults.
func NewProofImageService(maxBytes int64, maxDimension int) *ProofImageService {
	if maxBytes <= 0 {
		maxBytes = defaultProofMaxBytes
	}
	if maxDimension <= 0 {
		maxDimension = defaultProofMaxDimension
	}
	return &ProofImageService{
		maxBytes:     maxBytes,
		maxDimension: maxDimension,
	}
}

// MaxBytes returns the largest accepted upload
func (s *ProofImageService) MaxBytes() int64 {
	return s.maxBytes
}

// Normalize reads, validates, orients and downsizes the image, then re-encodes
// it as JPEG
func (s *ProofImageService) Normalize(reader io.Reader) (*ProofImage, error) {
	data, err := s.readLimited(reader)
	if err != nil {
		return nil, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidImage, err)
	}
	if !isValidImageFormat(format) {
		return nil, fmt.Errorf("%w: unsupported format %s", models.ErrInvalidImage, format)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("%w: empty image", models.ErrInvalidImage)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidImage, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > s.maxDimension || bounds.Dy() > s.maxDimension {
		img = imaging.Fit(img, s.maxDimension, s.maxDimension, imaging.Lanczos)
	}

	// JPEG has no alpha; flatten transparent proofs onto white
	flat := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), image.White)
	flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: proofJPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}

	return &ProofImage{
		Data:           buf.Bytes(),
		ContentType:    getContentType("jpeg"),
		OriginalFormat: format,
		Width:          flat.Bounds().Dx(),
		Height:         flat.Bounds().Dy(),
		ProcessedAt:    time.Now(),
	}, nil
}

// ValidateImage checks size and format without re-encoding
func (s *ProofImageService) ValidateImage(reader io.Reader) error {
	data, err := s.readLimited(reader)
	if err != nil {
		return err
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidImage, err)
	}
	if !isValidImageFormat(format) {
		return fmt.Errorf("%w: unsupported format %s", models.ErrInvalidImage, format)
	}
	return nil
}

func (s *ProofImageService) readLimited(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, models.ErrNoProofFile
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: image exceeds maximum allowed size of %d bytes", models.ErrInvalidImage, s.maxBytes)
	}
	return data, nil
}

// generateProofKey generates a unique storage key for a proof image
func generateProofKey(filename string, now time.Time) string {
	id := uuid.New().String()

	baseName := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	baseName = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(baseName), " ", "-"))
	baseName = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, baseName)
	if baseName == "" || baseName == "." {
		baseName = "proof"
	}

	return fmt.Sprintf("proofs/%s/%s-%s.jpg", now.Format("2006/01/02"), baseName, id[:8])
}

// isValidImageFormat checks if the image format is supported
func isValidImageFormat(format string) bool {
	switch format {
	case "jpeg", "jpg", "png", "webp":
		return true
	default:
		return false
	}
}

// getContentType returns the MIME type for the image format
func getContentType(format string) string {
	switch format {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
