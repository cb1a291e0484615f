package scoring

import (
	"fmt"
	"strings"

	"github.com/veridoc/veridoc/fields"
	"github.com/veridoc/veridoc/model"
)

// Policy converts analysis signals into a validity score and issue list.
// Implementations must clamp the score to [0,100] and never return an
// empty issue list; a clean document gets the sentinel message.
type Policy interface {
	Score(signals *Signals) (int, []string)
}

// NoAnomaliesMessage is the sentinel issue reported when nothing was found.
const NoAnomaliesMessage = "No significant anomalies detected"

// maxReportedFindings caps how many alignment and label-value findings are
// verbalized; deductions still use the full counts.
const maxReportedFindings = 3

// DeductionConfig holds the per-signal deduction amounts and caps of the
// reference policy.
type DeductionConfig struct {
	AlignmentPerIssue int // per alignment issue (default: 8)
	AlignmentCap      int // ceiling for alignment deductions (default: 30)
	LabelPerIssue     int // per label-value mismatch (default: 6)
	LabelCap          int // ceiling for label-value deductions (default: 20)

	AsymmetricMarginGap int // |left-right| beyond this deducts (default: 50)
	AsymmetricMargin    int // deduction for asymmetric margins (default: 10)
	SmallMarginFloor    int // margins under this deduct (default: 10)
	SmallMargin         int // deduction for small margins (default: 8)

	FontInconsistency int     // deduction for inconsistent glyph heights (default: 20)
	MinAvgConfidence  float64 // average OCR confidence floor (default: 70)
	LowConfidence     int     // deduction for low average confidence (default: 15)
	MaxLowConfRatio   float64 // tolerated poorly-recognized ratio (default: 0.3)
	PoorRecognition   int     // deduction for a high low-confidence ratio (default: 15)

	PerMetadataIssue int // per metadata/format finding (default: 10)

	ELAQuality      int     // quality level whose mean is thresholded (default: 90)
	ELAMeanFloor    float64 // suspicious residual mean (default: 50)
	ELASignature    int     // deduction for a suspicious residual (default: 25)

	RefExcessIssues   int // deduction for excess findings vs reference (default: 15)
	RefMarginDrift    int // deduction for one drifted margin (default: 8)
	RefVariance       int // deduction for inflated X variance (default: 12)
	RefIdenticalScore int // deduction for identical score and rank (default: 40)
	RefHeightDrift    int // deduction for mean glyph-height drift (default: 10)

	RepeatedNameWord int // deduction for a repeated word in the name (default: 15)
}

// DefaultDeductionConfig returns the reference deduction table.
func DefaultDeductionConfig() DeductionConfig {
	return DeductionConfig{
		AlignmentPerIssue:   8,
		AlignmentCap:        30,
		LabelPerIssue:       6,
		LabelCap:            20,
		AsymmetricMarginGap: 50,
		AsymmetricMargin:    10,
		SmallMarginFloor:    10,
		SmallMargin:         8,
		FontInconsistency:   20,
		MinAvgConfidence:    70,
		LowConfidence:       15,
		MaxLowConfRatio:     0.3,
		PoorRecognition:     15,
		PerMetadataIssue:    10,
		ELAQuality:          90,
		ELAMeanFloor:        50,
		ELASignature:        25,
		RefExcessIssues:     15,
		RefMarginDrift:      8,
		RefVariance:         12,
		RefIdenticalScore:   40,
		RefHeightDrift:      10,
		RepeatedNameWord:    15,
	}
}

// DeductionPolicy is the reference scoring policy: flat deductions per
// finding, independently capped per signal, summed, and clamped to [0,100].
type DeductionPolicy struct {
	config DeductionConfig
}

// NewDeductionPolicy creates the reference policy with default deductions
func NewDeductionPolicy() *DeductionPolicy {
	return &DeductionPolicy{config: DefaultDeductionConfig()}
}

// NewDeductionPolicyWithConfig creates the reference policy with a custom table
func NewDeductionPolicyWithConfig(config DeductionConfig) *DeductionPolicy {
	return &DeductionPolicy{config: config}
}

// Score applies the deduction table to the signals.
func (p *DeductionPolicy) Score(signals *Signals) (int, []string) {
	score := 100
	var issues []string

	score -= p.alignmentDeduction(signals, &issues)
	score -= p.labelDeduction(signals, &issues)
	score -= p.marginDeduction(signals, &issues)

	if !signals.Font.Consistent {
		score -= p.config.FontInconsistency
		issues = append(issues, signals.Font.Message)
	}

	if signals.Quality.AvgConfidence < p.config.MinAvgConfidence {
		score -= p.config.LowConfidence
		issues = append(issues, fmt.Sprintf("Low OCR confidence: %.1f%%", signals.Quality.AvgConfidence))
	}
	if signals.Quality.LowConfRatio > p.config.MaxLowConfRatio {
		score -= p.config.PoorRecognition
		issues = append(issues, fmt.Sprintf("High ratio of poorly recognized text: %.2f", signals.Quality.LowConfRatio))
	}

	score -= p.config.PerMetadataIssue * len(signals.MetadataIssues)
	issues = append(issues, signals.MetadataIssues...)

	if stats, ok := signals.ELA[p.config.ELAQuality]; ok && stats.Mean > p.config.ELAMeanFloor {
		score -= p.config.ELASignature
		issues = append(issues, fmt.Sprintf("Suspicious ELA signature detected (mean: %.2f)", stats.Mean))
	}

	score -= p.referenceDeduction(signals.Reference, &issues)

	if fields.HasRepeatedNameWord(signals.Fields) {
		score -= p.config.RepeatedNameWord
		issues = append(issues, "Suspicious name pattern detected")
	}

	return clampScore(score), issues
}

func (p *DeductionPolicy) alignmentDeduction(signals *Signals, issues *[]string) int {
	count := len(signals.AlignmentIssues)
	if count == 0 {
		return 0
	}

	for i, issue := range signals.AlignmentIssues {
		if i == maxReportedFindings {
			break
		}
		switch issue.Type {
		case model.AlignmentLargeGap:
			*issues = append(*issues, fmt.Sprintf("Suspicious text gap (%dpx) between %s", issue.GapSize, issue.Between))
		case model.AlignmentTextOverlap:
			*issues = append(*issues, fmt.Sprintf("Text overlap detected (%dpx) between %s", issue.Overlap, issue.Between))
		case model.AlignmentVerticalMisalignment:
			words := issue.Words
			if len(words) > maxReportedFindings {
				words = words[:maxReportedFindings]
			}
			*issues = append(*issues, fmt.Sprintf("Vertical misalignment in line: %s", strings.Join(words, ", ")))
		}
	}

	return capped(count*p.config.AlignmentPerIssue, p.config.AlignmentCap)
}

func (p *DeductionPolicy) labelDeduction(signals *Signals, issues *[]string) int {
	count := len(signals.LabelMismatches)
	if count == 0 {
		return 0
	}

	for i, m := range signals.LabelMismatches {
		if i == maxReportedFindings {
			break
		}
		switch m.Kind {
		case model.MismatchTooClose:
			*issues = append(*issues, fmt.Sprintf("Label '%s' too close to value '%s' (%dpx)", m.Label, m.Value, m.Gap))
		case model.MismatchTooFar:
			*issues = append(*issues, fmt.Sprintf("Label '%s' too far from value '%s' (%dpx)", m.Label, m.Value, m.Gap))
		case model.MismatchVerticalOffset:
			*issues = append(*issues, fmt.Sprintf("Vertical misalignment: '%s' and '%s' (%dpx)", m.Label, m.Value, m.YDiff))
		}
	}

	return capped(count*p.config.LabelPerIssue, p.config.LabelCap)
}

func (p *DeductionPolicy) marginDeduction(signals *Signals, issues *[]string) int {
	if signals.Layout.Empty() {
		return 0
	}

	deduction := 0
	left := signals.Layout.Margins.Left
	right := signals.Layout.Margins.Right

	gap := left - right
	if gap < 0 {
		gap = -gap
	}
	if gap > p.config.AsymmetricMarginGap {
		deduction += p.config.AsymmetricMargin
		*issues = append(*issues, fmt.Sprintf("Asymmetric margins detected (L:%dpx, R:%dpx)", left, right))
	}

	if left < p.config.SmallMarginFloor || right < p.config.SmallMarginFloor {
		deduction += p.config.SmallMargin
		*issues = append(*issues, "Unusually small margins - possible cropping/editing")
	}

	return deduction
}

func (p *DeductionPolicy) referenceDeduction(ref *ReferenceFindings, issues *[]string) int {
	if ref == nil {
		return 0
	}

	deduction := 0

	if ref.ExcessIssues {
		deduction += p.config.RefExcessIssues
		*issues = append(*issues, fmt.Sprintf("More alignment issues than reference (%d vs %d)", ref.TestCount, ref.RefCount))
	}
	if ref.MarginDrift {
		deduction += p.config.RefMarginDrift
		*issues = append(*issues, fmt.Sprintf("Layout difference: %s margin varies by %dpx from reference", ref.DriftedSide, ref.DriftAmount))
	}
	if ref.VarianceInflated {
		deduction += p.config.RefVariance
		*issues = append(*issues, "Text positioning more inconsistent than reference")
	}
	if ref.IdenticalScoreRank {
		deduction += p.config.RefIdenticalScore
		*issues = append(*issues, "Identical scores and ranks - possible template reuse")
	}
	if ref.HeightDrift {
		deduction += p.config.RefHeightDrift
		*issues = append(*issues, fmt.Sprintf("Font size inconsistency: height difference %.1fpx from reference", ref.HeightDiff))
	}

	return deduction
}

// BuildReport runs the policy over the signals and assembles the terminal
// report. A nil policy selects the reference deduction policy.
func BuildReport(signals *Signals, policy Policy) *model.ScoreReport {
	if policy == nil {
		policy = NewDeductionPolicy()
	}

	score, issues := policy.Score(signals)
	if len(issues) == 0 {
		issues = []string{NoAnomaliesMessage}
	}

	status := model.StatusValid
	if score < 70 {
		status = model.StatusForgerySuspected
	}

	return &model.ScoreReport{
		Status:  status,
		Score:   score,
		Issues:  issues,
		Fields:  signals.Fields,
		Quality: signals.Quality,
		Summary: model.AnalysisSummary{
			TextAlignmentIssues:     len(signals.AlignmentIssues),
			LabelValueMisalignments: len(signals.LabelMismatches),
			Layout:                  signals.Layout,
		},
	}
}

// FailureReport converts a pipeline fault into the terminal report without
// letting the fault escape to the caller.
func FailureReport(err error) *model.ScoreReport {
	return &model.ScoreReport{
		Status: model.StatusAnalysisFailed,
		Score:  0,
		Issues: []string{fmt.Sprintf("Error during analysis: %v", err)},
	}
}

func capped(value, limit int) int {
	if value > limit {
		return limit
	}
	return value
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
