package layout

import (
	"fmt"

	"github.com/veridoc/veridoc/model"
)

// AlignmentConfig holds configuration for alignment anomaly detection.
// The thresholds are empirical; they were tuned on 300 DPI certificate
// scans and should be adjusted for other rasterization densities.
type AlignmentConfig struct {
	// Tolerance is the vertical clustering tolerance in pixels; the
	// vertical misalignment threshold is its square (default: 5).
	Tolerance int

	// MaxGap is the widest acceptable gap between adjacent words on a
	// line before it is flagged as a possible insertion (default: 50).
	MaxGap int

	// MaxOverlap is the deepest acceptable overlap between adjacent words
	// before it is flagged (default: 5).
	MaxOverlap int

	// MinConfidence drops words below this confidence before grouping
	// (default: 50).
	MinConfidence float64
}

// DefaultAlignmentConfig returns sensible default configuration
func DefaultAlignmentConfig() AlignmentConfig {
	return AlignmentConfig{
		Tolerance:     5,
		MaxGap:        50,
		MaxOverlap:    5,
		MinConfidence: 50,
	}
}

// AlignmentAnalyzer detects abnormal horizontal gaps, overlapping text, and
// vertical jitter within text lines.
type AlignmentAnalyzer struct {
	config AlignmentConfig
}

// NewAlignmentAnalyzer creates an analyzer with default configuration
func NewAlignmentAnalyzer() *AlignmentAnalyzer {
	return &AlignmentAnalyzer{config: DefaultAlignmentConfig()}
}

// NewAlignmentAnalyzerWithConfig creates an analyzer with custom configuration
func NewAlignmentAnalyzerWithConfig(config AlignmentConfig) *AlignmentAnalyzer {
	return &AlignmentAnalyzer{config: config}
}

// Analyze groups words into lines and reports every alignment anomaly.
// Lines with fewer than two words cannot misalign and are skipped.
func (a *AlignmentAnalyzer) Analyze(words []model.Word) []model.AlignmentIssue {
	var issues []model.AlignmentIssue

	lines := GroupWords(words, LineConfig{
		Tolerance:     a.config.Tolerance,
		MinConfidence: a.config.MinConfidence,
	})

	for _, lineY := range lines.Keys() {
		lineWords := lines.Words(lineY)
		if len(lineWords) < 2 {
			continue
		}

		for i := 0; i < len(lineWords)-1; i++ {
			current := lineWords[i]
			next := lineWords[i+1]

			currentRight := current.BBox.Right()
			gap := next.BBox.Left() - currentRight

			switch {
			case gap > a.config.MaxGap:
				issues = append(issues, model.AlignmentIssue{
					Type:      model.AlignmentLargeGap,
					LineY:     lineY,
					PositionX: currentRight,
					GapSize:   gap,
					Between:   wordPair(current, next),
				})
			case gap < -a.config.MaxOverlap:
				issues = append(issues, model.AlignmentIssue{
					Type:      model.AlignmentTextOverlap,
					LineY:     lineY,
					PositionX: currentRight,
					Overlap:   -gap,
					Between:   wordPair(current, next),
				})
			}
		}

		if issue, ok := a.checkVerticalJitter(lineY, lineWords); ok {
			issues = append(issues, issue)
		}
	}

	return issues
}

// checkVerticalJitter flags a line whose words sit at more than one top-Y
// position with a variance above tolerance squared.
func (a *AlignmentAnalyzer) checkVerticalJitter(lineY int, lineWords []model.Word) (model.AlignmentIssue, bool) {
	yPositions := make([]float64, 0, len(lineWords))
	distinct := make(map[int]struct{}, len(lineWords))
	for _, w := range lineWords {
		yPositions = append(yPositions, float64(w.BBox.Y))
		distinct[w.BBox.Y] = struct{}{}
	}
	if len(distinct) < 2 {
		return model.AlignmentIssue{}, false
	}

	yVariance := variance(yPositions)
	threshold := float64(a.config.Tolerance * a.config.Tolerance)
	if yVariance <= threshold {
		return model.AlignmentIssue{}, false
	}

	texts := make([]string, 0, len(lineWords))
	for _, w := range lineWords {
		texts = append(texts, w.Text)
	}

	return model.AlignmentIssue{
		Type:     model.AlignmentVerticalMisalignment,
		LineY:    lineY,
		Variance: yVariance,
		Words:    texts,
	}, true
}

func wordPair(a, b model.Word) string {
	return fmt.Sprintf("'%s' and '%s'", a.Text, b.Text)
}

// variance returns the population variance of values.
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(values))
}
