package model

import "strings"

// Word is a single OCR or text-layer token with its pixel bounding box.
// Confidence is the recognition confidence in [0,100]; it is a quality
// signal, not a correctness guarantee.
type Word struct {
	Text       string
	Confidence float64
	BBox       BBox
}

// NewWord creates a word from its text, confidence, and box coordinates.
func NewWord(text string, confidence float64, x, y, width, height int) Word {
	return Word{
		Text:       text,
		Confidence: confidence,
		BBox:       NewBBox(x, y, width, height),
	}
}

// IsBlank returns true if the word has no visible text.
func (w Word) IsBlank() bool {
	return strings.TrimSpace(w.Text) == ""
}

// JoinWords concatenates word texts with single spaces, in slice order.
func JoinWords(words []Word) string {
	if len(words) == 0 {
		return ""
	}
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " ")
}

// PageSize holds the pixel dimensions of a rasterized page.
type PageSize struct {
	Width  int
	Height int
}

// IsZero returns true when no page dimensions are known.
func (p PageSize) IsZero() bool {
	return p.Width == 0 && p.Height == 0
}
