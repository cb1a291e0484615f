// Package loader turns an input file into analyzable content: either a
// raster image to be OCRed, or pre-extracted word boxes from an hOCR file.
//
// PNG, JPEG and WebP images decode natively. PDFs are rasterized through
// the pdftoppm tool from poppler-utils, which must be installed on the
// system. hOCR files bypass rasterization entirely.
package loader

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/image/webp"

	"github.com/veridoc/veridoc/format"
	"github.com/veridoc/veridoc/model"
	"github.com/veridoc/veridoc/ocr"
)

// LoadError describes a failure to turn a file into analyzable content.
// It wraps the underlying cause for errors.Is/As inspection.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// DefaultPDFRenderDPI is the rasterization resolution for PDF inputs.
// 200 DPI keeps small certificate text legible to the OCR engine without
// producing images past the ELA downscale limit for A4 pages.
const DefaultPDFRenderDPI = 200

// Content is what the loader produced from one input file. Exactly one of
// Image and Words is populated, per Kind.
type Content struct {
	Format format.Format

	// Image is the rasterized page, set for image and PDF inputs.
	Image image.Image

	// Words and Page are the pre-extracted word boxes, set for hOCR inputs.
	Words []model.Word
	Page  model.PageSize
}

// HasWords reports whether the content carries pre-extracted words and can
// skip the OCR stage.
func (c *Content) HasWords() bool {
	return len(c.Words) > 0
}

// Loader reads certificate files from disk.
type Loader struct {
	// PDFRenderDPI overrides the PDF rasterization resolution.
	// Zero means DefaultPDFRenderDPI.
	PDFRenderDPI int
}

// New creates a loader with default settings
func New() *Loader {
	return &Loader{}
}

// Load reads the file at path and decodes it according to its detected
// format. Detection prefers file content over the extension; an extension
// lying about the content is itself reported, since format confusion is a
// common trait of manipulated files. Failures come back as a *LoadError.
func (l *Loader) Load(path string) (*Content, error) {
	content, err := l.load(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return content, nil
}

func (l *Loader) load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	detected := format.DetectFromMagic(data)
	if detected == format.Unknown {
		detected = format.Detect(path)
	}

	switch detected {
	case format.HOCR:
		words, page, err := ocr.ParseHOCR(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return &Content{Format: detected, Words: words, Page: page}, nil

	case format.PNG, format.JPEG:
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		return &Content{Format: detected, Image: img}, nil

	case format.WebP:
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode webp: %w", err)
		}
		return &Content{Format: detected, Image: img}, nil

	case format.PDF:
		img, err := l.renderPDF(path)
		if err != nil {
			return nil, err
		}
		return &Content{Format: detected, Image: img}, nil

	default:
		return nil, fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
	}
}

// MismatchIssue reports a format mismatch between the file extension and
// the detected content, or empty when they agree. A PDF renamed to .png
// or a JPEG posing as .pdf is worth a deduction on its own.
func MismatchIssue(path string, detected format.Format) string {
	claimed := format.Detect(path)
	if claimed == format.Unknown || detected == format.Unknown || claimed == detected {
		return ""
	}
	return fmt.Sprintf("File extension '%s' does not match content type '%s'",
		filepath.Ext(path), detected)
}

// renderPDF rasterizes the first page of a PDF via pdftoppm.
func (l *Loader) renderPDF(path string) (image.Image, error) {
	dpi := l.PDFRenderDPI
	if dpi == 0 {
		dpi = DefaultPDFRenderDPI
	}

	dir, err := os.MkdirTemp("", "veridoc-pdf-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	prefix := filepath.Join(dir, "page")
	cmd := exec.Command("pdftoppm", "-png", "-singlefile",
		"-f", "1", "-l", "1", "-r", fmt.Sprint(dpi), path, prefix)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("pdftoppm failed: %s", bytes.TrimSpace(stderr.Bytes()))
		}
		return nil, fmt.Errorf("pdftoppm failed: %w", err)
	}

	out, err := os.Open(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm produced no output: %w", err)
	}
	defer out.Close()

	img, _, err := image.Decode(out)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rendered page: %w", err)
	}
	return img, nil
}
