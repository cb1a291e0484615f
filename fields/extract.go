// Package fields mines named certificate fields out of the OCR word stream
// and validates their formats and cross-field plausibility.
package fields

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/veridoc/veridoc/model"
)

// Extraction rules, applied independently to the space-joined text blob.
// First match wins; a rule that does not match leaves its field unset.
// The patterns tolerate OCR noise by design and must never cause Extract
// to fail.
var (
	nameRe     = regexp.MustCompile(`Name\s+([A-Z\s]+?)(?:Roll|$)`)
	rollRe     = regexp.MustCompile(`Roll Number\s+(\d+)`)
	appNoRe    = regexp.MustCompile(`Application No\s+(\d+)`)
	dobRe      = regexp.MustCompile(`Date of Birth\s+(\d{2}-\d{2}-\d{4})`)
	totalRe    = regexp.MustCompile(`Total\s*:\s*([\d.]+)`)
	meritRe    = regexp.MustCompile(`Merit rank.*?(\d+)\s+(\d+)`)
	downloadRe = regexp.MustCompile(`Downloading Date:\s*(\S+)`)
)

// Extract pulls the known certificate fields out of the word stream.
// The words are joined into one blob in stream order, normalized, and
// mined with the fixed rule set. Missing fields stay unset; extraction
// is pure best effort and never returns an error.
func Extract(words []model.Word) model.CertificateFields {
	text := Normalize(model.JoinWords(words))

	var fields model.CertificateFields

	if m := nameRe.FindStringSubmatch(text); m != nil {
		fields.Name = strings.TrimSpace(m[1])
	}
	if m := rollRe.FindStringSubmatch(text); m != nil {
		fields.RollNumber = m[1]
	}
	if m := appNoRe.FindStringSubmatch(text); m != nil {
		fields.ApplicationNo = m[1]
	}
	if m := dobRe.FindStringSubmatch(text); m != nil {
		fields.DateOfBirth = m[1]
	}
	if m := totalRe.FindStringSubmatch(text); m != nil {
		if score, err := strconv.ParseFloat(m[1], 64); err == nil {
			fields.TotalScore = &score
		}
	}
	if m := meritRe.FindStringSubmatch(text); m != nil {
		if eng, err := strconv.Atoi(m[1]); err == nil {
			fields.MeritRankEngineering = &eng
		}
		if pharm, err := strconv.Atoi(m[2]); err == nil {
			fields.MeritRankPharmacy = &pharm
		}
	}
	if m := downloadRe.FindStringSubmatch(text); m != nil {
		fields.DownloadingDate = m[1]
	}

	return fields
}

// HasRepeatedNameWord reports whether the extracted name contains the same
// word twice, a pattern seen in sloppy copy-paste edits.
func HasRepeatedNameWord(fields model.CertificateFields) bool {
	if fields.Name == "" {
		return false
	}
	parts := strings.Fields(fields.Name)
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		if _, dup := seen[p]; dup {
			return true
		}
		seen[p] = struct{}{}
	}
	return false
}
