// Package veridoc provides a fluent API for scoring certificate documents
// for signs of forgery.
//
// Basic usage:
//
//	report := veridoc.Open("certificate.pdf").Analyze()
//	if report.Status == model.StatusForgerySuspected {
//	    log.Println("Issues:", report.Issues)
//	}
//
// With a known-authentic reference of the same template:
//
//	report := veridoc.Open("certificate.png").
//	    WithReference("authentic.png").
//	    Analyze()
//
// Analyze never fails with an error; a document that cannot be processed
// yields a report with StatusAnalysisFailed, a zero score, and the cause
// in the issue list. For pre-extracted word boxes (a text layer, a prior
// OCR run), use FromWords and skip the OCR stage entirely.
package veridoc

import (
	"github.com/veridoc/veridoc/model"
)

// Open prepares an analysis of the file at filename. Supported formats are
// PDF, PNG, JPEG, WebP and hOCR; the format is detected from content, not
// the extension.
//
// Example:
//
//	report := veridoc.Open("certificate.pdf").Analyze()
func Open(filename string) *Analyzer {
	return &Analyzer{
		source:  source{filename: filename},
		options: defaultOptions(),
	}
}

// FromWords prepares an analysis of already-extracted word boxes. The page
// size is needed for margin computation; image-level checks (compression
// residuals, format validation) are skipped since there is no image.
//
// Example:
//
//	report := veridoc.FromWords(words, model.PageSize{Width: 800, Height: 1100}).Analyze()
func FromWords(words []model.Word, page model.PageSize) *Analyzer {
	return &Analyzer{
		source:  source{words: words, page: page, resolved: true},
		options: defaultOptions(),
	}
}
