package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"sponsorku_backend/internals/constants"
)

// Folder standar
const (
	FolderProposals = "proposals"
	FolderEvents    = "events"
	FolderProfiles  = "profiles"
)

var pdfMagic = []byte("%PDF-")

// readAll membaca file multipart dengan batas ukuran (413 kalau lewat)
func readAll(fh *multipart.FileHeader, max int64) ([]byte, error) {
	if fh == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	if fh.Size > max {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, fmt.Sprintf("Ukuran file maksimal %d MB", max/(1024*1024)))
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, max+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > max {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, fmt.Sprintf("Ukuran file maksimal %d MB", max/(1024*1024)))
	}
	return data, nil
}

// ReadProposalPDF: hanya PDF (ekstensi/content-type + magic header), maks 5MB
func ReadProposalPDF(fh *multipart.FileHeader) ([]byte, error) {
	data, err := readAll(fh, constants.MaxProposalPDFSize)
	if err != nil {
		return nil, err
	}
	ct := strings.ToLower(fh.Header.Get("Content-Type"))
	isPDFName := constants.DetectFileTypeFromExt(fh.Filename) == constants.FileKindPDF
	if ct != "application/pdf" && !isPDFName {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Hanya file PDF yang diperbolehkan")
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File bukan PDF yang valid")
	}
	return data, nil
}

// UploadProposalPDF: validasi lalu simpan ke proposals/
func UploadProposalPDF(ctx context.Context, svc BlobService, fh *multipart.FileHeader) (string, error) {
	data, err := ReadProposalPDF(fh)
	if err != nil {
		return "", err
	}
	name := fh.Filename
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	return svc.Put(ctx, BuildObjectKey(FolderProposals, name), data, "application/pdf")
}

// UploadImageAsWebP: re-encode gambar ke WebP lalu upload ke folder
func UploadImageAsWebP(ctx context.Context, svc BlobService, folder string, fh *multipart.FileHeader) (string, error) {
	data, err := readAll(fh, constants.MaxImageSize)
	if err != nil {
		return "", err
	}
	webpData, err := ConvertToWebP(data, DefaultWebPOptionsFromEnv())
	if err != nil {
		if errors.Is(err, ErrUnsupportedImage) {
			return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Unsupported image format (pakai jpg/png/webp)")
		}
		return "", fiber.NewError(fiber.StatusBadRequest, "Gambar tidak dapat diproses")
	}
	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	return svc.Put(ctx, BuildObjectKey(folder, base+".webp"), webpData, "image/webp")
}

// SniffContentType: content-type dari 512 byte pertama
func SniffContentType(data []byte) string {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return http.DetectContentType(head)
}

// Cleanup: kompensasi upload saat langkah DB gagal (best-effort, hanya log)
func Cleanup(ctx context.Context, svc BlobService, urls ...string) {
	for _, u := range urls {
		if strings.TrimSpace(u) == "" {
			continue
		}
		if err := svc.DeleteByURL(ctx, u); err != nil {
			log.Warn().Err(err).Str("url", u).Msg("[STORAGE] gagal hapus object kompensasi")
		}
	}
}

// Trash: pindahkan file lama ke trash (best-effort, hanya log)
func Trash(ctx context.Context, svc BlobService, urls ...string) {
	for _, u := range urls {
		if strings.TrimSpace(u) == "" {
			continue
		}
		if err := svc.MoveToTrash(ctx, u); err != nil {
			log.Warn().Err(err).Str("url", u).Msg("[STORAGE] gagal pindah ke trash")
		}
	}
}
