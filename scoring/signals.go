package scoring

import (
	"github.com/veridoc/veridoc/ela"
	"github.com/veridoc/veridoc/layout"
	"github.com/veridoc/veridoc/model"
)

// Signals collects everything the analyzers learned about one document.
// It is assembled once per analysis call and read-only afterwards.
type Signals struct {
	AlignmentIssues []model.AlignmentIssue
	LabelMismatches []model.LabelValueMismatch
	Layout          model.LayoutProfile
	Font            layout.FontCheck
	FontMetrics     model.FontMetrics
	FontMetricsOK   bool
	Quality         model.QualityMetrics
	MetadataIssues  []string
	ELA             map[int]ela.Stats
	Fields          model.CertificateFields

	// Reference holds the differential findings against a known-authentic
	// document, or nil when no reference was supplied.
	Reference *ReferenceFindings
}

// IssueCount is the combined number of alignment and label-value findings,
// the quantity the reference comparison is based on.
func (s *Signals) IssueCount() int {
	return len(s.AlignmentIssues) + len(s.LabelMismatches)
}

// ReferenceFindings are the flags raised by comparing a test document
// against its reference. Absence of a reference skips the comparison
// entirely; a zero value means the comparison ran clean.
type ReferenceFindings struct {
	// ExcessIssues is set when the test document carries noticeably more
	// alignment and label-value findings than the reference.
	ExcessIssues bool
	TestCount    int
	RefCount     int

	// MarginDrift reports the first margin that moved too far from the
	// reference; further drifted margins are not double-counted.
	MarginDrift bool
	DriftedSide string
	DriftAmount int

	// VarianceInflated is set when the test X-position variance exceeds
	// the reference variance by the configured ratio.
	VarianceInflated bool

	// IdenticalScoreRank is set when both documents carry the same total
	// score and engineering rank, which across two distinct certificates
	// implies template reuse.
	IdenticalScoreRank bool

	// HeightDrift reports mean glyph heights too far apart.
	HeightDrift bool
	HeightDiff  float64
}
