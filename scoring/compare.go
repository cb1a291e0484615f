package scoring

import "math"

// CompareConfig holds thresholds for the reference comparison.
type CompareConfig struct {
	// MaxExtraIssues is how many more combined alignment and label-value
	// findings the test document may carry before it is flagged
	// (default: 2).
	MaxExtraIssues int

	// MaxMarginDrift is the tolerated per-margin difference in pixels
	// (default: 30).
	MaxMarginDrift int

	// VarianceRatio is the tolerated multiple of the reference X-position
	// variance (default: 1.5).
	VarianceRatio float64

	// MaxHeightDrift is the tolerated mean glyph-height difference in
	// pixels (default: 3).
	MaxHeightDrift float64
}

// DefaultCompareConfig returns sensible default configuration
func DefaultCompareConfig() CompareConfig {
	return CompareConfig{
		MaxExtraIssues: 2,
		MaxMarginDrift: 30,
		VarianceRatio:  1.5,
		MaxHeightDrift: 3,
	}
}

// Comparator checks a test document's signals against those of a
// known-authentic reference of the same template.
type Comparator struct {
	config CompareConfig
}

// NewComparator creates a comparator with default configuration
func NewComparator() *Comparator {
	return &Comparator{config: DefaultCompareConfig()}
}

// NewComparatorWithConfig creates a comparator with custom configuration
func NewComparatorWithConfig(config CompareConfig) *Comparator {
	return &Comparator{config: config}
}

// Compare produces the differential findings between a test document and
// its reference. All comparisons are additive signals; each degrades
// silently when the inputs it needs are missing (empty layout, no metrics,
// no extracted values).
func (c *Comparator) Compare(test, ref *Signals) *ReferenceFindings {
	findings := &ReferenceFindings{
		TestCount: test.IssueCount(),
		RefCount:  ref.IssueCount(),
	}

	if findings.TestCount > findings.RefCount+c.config.MaxExtraIssues {
		findings.ExcessIssues = true
	}

	if !test.Layout.Empty() && !ref.Layout.Empty() {
		c.compareMargins(findings, test, ref)

		if test.Layout.XVariance > ref.Layout.XVariance*c.config.VarianceRatio {
			findings.VarianceInflated = true
		}
	}

	// Identical extracted score and rank across two distinct certificates
	// implies the test was stamped out of the reference template.
	if test.Fields.HasScoreAndRank() && ref.Fields.HasScoreAndRank() &&
		*test.Fields.TotalScore == *ref.Fields.TotalScore &&
		*test.Fields.MeritRankEngineering == *ref.Fields.MeritRankEngineering {
		findings.IdenticalScoreRank = true
	}

	if test.FontMetricsOK && ref.FontMetricsOK {
		diff := math.Abs(test.FontMetrics.AvgHeight - ref.FontMetrics.AvgHeight)
		if diff > c.config.MaxHeightDrift {
			findings.HeightDrift = true
			findings.HeightDiff = diff
		}
	}

	return findings
}

// compareMargins flags only the first drifted margin to avoid penalizing
// one physical shift four times.
func (c *Comparator) compareMargins(findings *ReferenceFindings, test, ref *Signals) {
	sides := []struct {
		name      string
		test, ref int
	}{
		{"left", test.Layout.Margins.Left, ref.Layout.Margins.Left},
		{"right", test.Layout.Margins.Right, ref.Layout.Margins.Right},
		{"top", test.Layout.Margins.Top, ref.Layout.Margins.Top},
		{"bottom", test.Layout.Margins.Bottom, ref.Layout.Margins.Bottom},
	}

	for _, side := range sides {
		drift := side.test - side.ref
		if drift < 0 {
			drift = -drift
		}
		if drift > c.config.MaxMarginDrift {
			findings.MarginDrift = true
			findings.DriftedSide = side.name
			findings.DriftAmount = drift
			return
		}
	}
}
