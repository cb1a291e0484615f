package model

// Margins holds the whitespace between the text extents and the page edges.
type Margins struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// TextArea is the page area covered by text once margins are removed.
type TextArea struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LayoutProfile is a document's spatial fingerprint: margins, text extents,
// the dominant column/row grid positions, and raw position variances.
// It is built once per analysis run and never mutated afterwards.
// A zero-valued profile (Empty() == true) means the document had no
// qualifying words.
type LayoutProfile struct {
	Margins  Margins  `json:"margins"`
	TextArea TextArea `json:"text_area"`

	// CommonXPositions are the most frequent X positions rounded to the
	// nearest 10px, most frequent first.
	CommonXPositions []int `json:"common_x_positions"`

	// CommonYPositions are the most frequent Y positions rounded to the
	// nearest 5px, most frequent first.
	CommonYPositions []int `json:"common_y_positions"`

	// XVariance and YVariance are the variances of the unrounded positions.
	XVariance float64 `json:"x_position_variance"`
	YVariance float64 `json:"y_position_variance"`

	populated bool
}

// NewLayoutProfile marks a profile as populated. The zero value stays Empty.
func NewLayoutProfile(margins Margins, area TextArea, commonX, commonY []int, xVar, yVar float64) LayoutProfile {
	return LayoutProfile{
		Margins:          margins,
		TextArea:         area,
		CommonXPositions: commonX,
		CommonYPositions: commonY,
		XVariance:        xVar,
		YVariance:        yVar,
		populated:        true,
	}
}

// Empty reports whether the profile was built from a degenerate document
// with no qualifying words.
func (p LayoutProfile) Empty() bool {
	return !p.populated
}

// CertificateFields holds the values mined from the word stream. A nil
// pointer means the field was not found; extraction never fails outright.
type CertificateFields struct {
	Name                 string   `json:"name,omitempty"`
	RollNumber           string   `json:"roll_number,omitempty"`
	ApplicationNo        string   `json:"application_no,omitempty"`
	DateOfBirth          string   `json:"date_of_birth,omitempty"`
	TotalScore           *float64 `json:"total_score,omitempty"`
	MeritRankEngineering *int     `json:"merit_rank_engineering,omitempty"`
	MeritRankPharmacy    *int     `json:"merit_rank_pharmacy,omitempty"`
	DownloadingDate      string   `json:"downloading_date,omitempty"`
}

// HasScoreAndRank reports whether both the total score and the engineering
// merit rank were extracted.
func (f CertificateFields) HasScoreAndRank() bool {
	return f.TotalScore != nil && f.MeritRankEngineering != nil
}

// QualityMetrics summarizes the OCR confidence distribution of a document.
type QualityMetrics struct {
	AvgConfidence float64 `json:"avg_confidence"`
	LowConfRatio  float64 `json:"low_conf_ratio"`
	TotalWords    int     `json:"total_words"`
}

// FontMetrics summarizes glyph geometry across all non-blank words.
type FontMetrics struct {
	AvgHeight      float64 `json:"avg_height"`
	StdHeight      float64 `json:"std_height"`
	LeftVariance   float64 `json:"left_variance"`
	AvgLineSpacing float64 `json:"avg_line_spacing"`
}

// Status is the verdict of an analysis run.
type Status int

const (
	// StatusValid means no strong forgery signal was found (score >= 70).
	StatusValid Status = iota
	// StatusForgerySuspected means the deductions pushed the score below 70.
	StatusForgerySuspected
	// StatusAnalysisFailed means the pipeline could not complete (load or
	// recognition fault); the score is 0 and the cause is in Issues.
	StatusAnalysisFailed
)

// String returns the human-readable verdict
func (s Status) String() string {
	switch s {
	case StatusValid:
		return "Valid"
	case StatusForgerySuspected:
		return "Forgery Suspected"
	case StatusAnalysisFailed:
		return "Analysis Failed"
	default:
		return "Unknown"
	}
}

// MarshalJSON renders the status as its verdict string.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// AnalysisSummary carries the per-signal counts and the layout fingerprint
// alongside the final score, for report rendering.
type AnalysisSummary struct {
	TextAlignmentIssues     int           `json:"text_alignment_issues"`
	LabelValueMisalignments int           `json:"label_value_misalignments"`
	Layout                  LayoutProfile `json:"layout_structure"`
}

// ScoreReport is the terminal artifact of one analysis call.
type ScoreReport struct {
	Status  Status            `json:"status"`
	Score   int               `json:"validity_score"`
	Issues  []string          `json:"issues"`
	Fields  CertificateFields `json:"certificate_data"`
	Quality QualityMetrics    `json:"quality_metrics"`
	Summary AnalysisSummary   `json:"alignment_analysis"`
}
