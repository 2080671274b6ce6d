package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"

	"travel-storefront/internal/models"
)

// UploadImage posts one image as multipart form field "image"
func (c *APIClient) UploadImage(ctx context.Context, filename, contentType string, reader io.Reader) Result[models.UploadResult] {
	const fallback = "Failed to upload image"

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filepath.Base(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		log.Printf("travel API POST /upload-image: failed to create form part: %v", err)
		return Result[models.UploadResult]{Error: fallback}
	}
	if _, err := io.Copy(part, reader); err != nil {
		log.Printf("travel API POST /upload-image: failed to copy file: %v", err)
		return Result[models.UploadResult]{Error: fallback}
	}
	if err := writer.Close(); err != nil {
		return Result[models.UploadResult]{Error: fallback}
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload-image", &buf, writer.FormDataContentType())
	if err != nil {
		log.Printf("travel API POST /upload-image: failed to create request: %v", err)
		return Result[models.UploadResult]{Error: fallback}
	}

	env, status, errMsg := c.send(req, fallback)
	if env == nil {
		return Result[models.UploadResult]{Error: errMsg, Status: status}
	}

	// The URL may come at the top level or inside data
	result := decodeData[models.UploadResult](env, status, fallback)
	if !result.Success {
		return result
	}
	if result.Data.URL == "" {
		result.Data.URL = env.URL
	}
	if result.Data.URL == "" {
		return Result[models.UploadResult]{Error: "Upload response did not include a URL", Status: status}
	}
	return result
}
