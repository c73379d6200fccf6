package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

/*
BlobService adalah facade upload/hapus yang seragam untuk controller.
Implementasi: Aliyun OSS, Cloudinary, Memory (test/dev), Disabled.
Konversi gambar → WebP & validasi PDF ada di uploads.go, provider cukup simpan bytes.
*/
type BlobService interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (publicURL string, err error)
	DeleteByURL(ctx context.Context, publicURL string) error
	// MoveToTrash: pindah ke prefix trash (dibersihkan reaper); provider tanpa trash → hapus langsung
	MoveToTrash(ctx context.Context, publicURL string) error
}

// NewBlobServiceFromEnv memilih provider dari STORAGE_PROVIDER (oss|cloudinary|memory|none).
// Kosong → auto-detect dari ENV yang tersedia.
func NewBlobServiceFromEnv() BlobService {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_PROVIDER")))
	if provider == "" {
		switch {
		case os.Getenv("ALI_OSS_BUCKET") != "":
			provider = "oss"
		case os.Getenv("CLOUDINARY_URL") != "" || os.Getenv("CLOUDINARY_CLOUD_NAME") != "":
			provider = "cloudinary"
		default:
			provider = "none"
		}
	}

	switch provider {
	case "oss":
		svc, err := NewOSSServiceFromEnv(os.Getenv("ALI_OSS_PREFIX"))
		if err != nil {
			log.Error().Err(err).Msg("[STORAGE] OSS init gagal, upload dinonaktifkan")
			return Disabled{}
		}
		log.Info().Str("bucket", svc.BucketName).Msg("[STORAGE] provider=oss")
		return svc
	case "cloudinary":
		svc, err := NewCloudinaryServiceFromEnv()
		if err != nil {
			log.Error().Err(err).Msg("[STORAGE] Cloudinary init gagal, upload dinonaktifkan")
			return Disabled{}
		}
		log.Info().Msg("[STORAGE] provider=cloudinary")
		return svc
	case "memory":
		log.Warn().Msg("[STORAGE] provider=memory (data hilang saat restart)")
		return NewMemoryBlobService()
	default:
		log.Warn().Msg("[STORAGE] provider=none, semua upload ditolak")
		return Disabled{}
	}
}

/* =======================================================================
   Disabled provider
======================================================================= */

type Disabled struct{}

func (Disabled) Put(context.Context, string, []byte, string) (string, error) {
	return "", fiber.NewError(fiber.StatusServiceUnavailable, "Storage belum dikonfigurasi")
}

func (Disabled) DeleteByURL(context.Context, string) error { return nil }

func (Disabled) MoveToTrash(context.Context, string) error { return nil }

/* =======================================================================
   Key utils
======================================================================= */

// BuildObjectKey: folder/20060102_150405_<rand>_<slug>.ext
func BuildObjectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	ts := time.Now().UTC().Format("20060102_150405")

	key := fmt.Sprintf("%s_%s_%s%s", ts, randHex(3), slugify(base), ext)
	if f := strings.Trim(folder, "/"); f != "" {
		key = f + "/" + key
	}
	return key
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	r := strings.NewReplacer(" ", "-", "_", "-", "—", "-", "–", "-")
	s = r.Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return "file"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
