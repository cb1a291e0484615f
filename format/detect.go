// Package format provides input format detection for the veridoc library.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported certificate input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document that must be rasterized before OCR.
	PDF
	// PNG indicates a PNG raster image.
	PNG
	// JPEG indicates a JPEG raster image.
	JPEG
	// WebP indicates a WebP raster image.
	WebP
	// HOCR indicates an hOCR file carrying an already-extracted text layer.
	HOCR
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case WebP:
		return "WebP"
	case HOCR:
		return "hOCR"
	default:
		return "Unknown"
	}
}

// IsImage reports whether the format is a raster image suitable for OCR.
func (f Format) IsImage() bool {
	return f == PNG || f == JPEG || f == WebP
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".webp":
		return WebP
	case ".hocr":
		return HOCR
	case ".html", ".htm", ".xml":
		// hOCR is commonly saved with an HTML extension; confirm via content.
		return HOCR
	default:
		return Unknown
	}
}

// DetectFromMagic checks file magic bytes to determine format.
// This provides more reliable detection than extension-based detection.
// Returns Unknown if the format cannot be determined from magic bytes alone.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// PDF magic: %PDF
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return PDF
	}

	// PNG magic: \x89PNG
	if bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}) {
		return PNG
	}

	// JPEG magic: \xFF\xD8\xFF
	if bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}) {
		return JPEG
	}

	// WebP: RIFF....WEBP
	if len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return WebP
	}

	if detectHOCRMagic(data) {
		return HOCR
	}

	return Unknown
}

// detectHOCRMagic checks if the data looks like an hOCR document.
func detectHOCRMagic(data []byte) bool {
	// Trim leading whitespace
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}
	data = data[start:]

	upper := strings.ToUpper(string(data[:min(2048, len(data))]))
	if !strings.HasPrefix(upper, "<!DOCTYPE") && !strings.HasPrefix(upper, "<HTML") && !strings.HasPrefix(upper, "<?XML") {
		return false
	}

	// hOCR documents carry ocr_page class markers in the body.
	return strings.Contains(upper, "OCR_PAGE") || strings.Contains(upper, "OCR-SYSTEM")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
