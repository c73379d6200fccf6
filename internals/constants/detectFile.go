package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileKindUnknown = 99
	FileKindPDF     = 4
	FileKindImage   = 6
)

// Batas ukuran upload (bytes)
const (
	MaxProposalPDFSize = 5 * 1024 * 1024
	MaxImageSize       = 5 * 1024 * 1024
)

func DetectFileTypeFromExt(filename string) int {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".pdf":
		return FileKindPDF
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileKindImage
	default:
		return FileKindUnknown
	}
}
