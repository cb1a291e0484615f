//go:build ocr

// Package ocr extracts positioned words from certificate images.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Word geometry drives the downstream layout analysis, so the client
// returns word-level bounding boxes rather than plain text.
package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/veridoc/veridoc/model"
)

// Client wraps Tesseract for word-level OCR.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Words performs OCR on image data (PNG, TIFF, JPEG, etc.) and returns
// every recognized word with its bounding box and confidence. Blank
// recognitions are dropped; low-confidence words are kept, since the
// individual analyzers apply their own confidence floors.
func (c *Client) Words(imageData []byte) ([]model.Word, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, &RecognitionError{Err: err}
	}

	words := make([]model.Word, 0, len(boxes))
	for _, box := range boxes {
		word := model.NewWord(box.Word, box.Confidence,
			box.Box.Min.X, box.Box.Min.Y, box.Box.Dx(), box.Box.Dy())
		if word.IsBlank() {
			continue
		}
		words = append(words, word)
	}

	return words, nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
// Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}
