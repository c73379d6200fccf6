package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryService: provider alternatif. Gambar → resource "image", PDF → "raw".
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryServiceFromEnv() (*CloudinaryService, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if raw := strings.TrimSpace(os.Getenv("CLOUDINARY_URL")); raw != "" {
		cld, err = cloudinary.NewFromURL(raw)
	} else {
		cld, err = cloudinary.NewFromParams(
			os.Getenv("CLOUDINARY_CLOUD_NAME"),
			os.Getenv("CLOUDINARY_API_KEY"),
			os.Getenv("CLOUDINARY_API_SECRET"),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %w", err)
	}
	return &CloudinaryService{cld: cld}, nil
}

func resourceTypeFor(contentType string) string {
	if strings.HasPrefix(contentType, "image/") {
		return "image"
	}
	return "raw"
}

func (s *CloudinaryService) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	rt := resourceTypeFor(contentType)
	publicID := key
	if rt == "image" {
		// untuk image, cloudinary menambahkan ekstensi sendiri
		publicID = strings.TrimSuffix(key, path.Ext(key))
	}

	resp, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: rt,
	})
	if err != nil {
		return "", fmt.Errorf("upload error: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("upload error: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (s *CloudinaryService) DeleteByURL(ctx context.Context, publicURL string) error {
	publicID, rt, err := extractPublicID(publicURL)
	if err != nil {
		return fmt.Errorf("could not extract public ID: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: rt,
	}); err != nil {
		return fmt.Errorf("delete error: %w", err)
	}
	return nil
}

// Cloudinary tidak punya prefix trash di sini, langsung hapus.
func (s *CloudinaryService) MoveToTrash(ctx context.Context, publicURL string) error {
	return s.DeleteByURL(ctx, publicURL)
}

// extractPublicID dari URL penuh, contoh:
// https://res.cloudinary.com/demo/image/upload/v1234567890/events/abc123.webp → events/abc123 (image)
// https://res.cloudinary.com/demo/raw/upload/v1234567890/proposals/x.pdf   → proposals/x.pdf (raw)
func extractPublicID(assetURL string) (string, string, error) {
	parsed, err := url.Parse(assetURL)
	if err != nil {
		return "", "", err
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	// [cloud, resource_type, "upload", (vNNN), ...]
	if len(parts) < 4 || parts[2] != "upload" {
		return "", "", fmt.Errorf("invalid cloudinary URL format")
	}
	rt := parts[1]
	rest := parts[3:]
	if len(rest) > 1 && strings.HasPrefix(rest[0], "v") {
		rest = rest[1:]
	}
	publicID := path.Join(rest...)
	if rt == "image" {
		publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	}
	return publicID, rt, nil
}
