package scoring

import (
	"fmt"
	"math"
)

// LinearConfig holds the per-statistic weights of the linear policy.
type LinearConfig struct {
	LeftDeviationWeight float64 // per pixel of left-edge standard deviation (default: 0.1)
	HeightStdWeight     float64 // per pixel of glyph-height standard deviation (default: 0.05)
	ELAWeight           float64 // per unit of the thresholded residual mean (default: 0.01)
	ELAQuality          int     // quality level whose residual mean is weighed (default: 90)
}

// DefaultLinearConfig returns the default linear weights.
func DefaultLinearConfig() LinearConfig {
	return LinearConfig{
		LeftDeviationWeight: 0.1,
		HeightStdWeight:     0.05,
		ELAWeight:           0.01,
		ELAQuality:          90,
	}
}

// LinearPolicy scores by subtracting weighted raw statistics from 100
// instead of flat per-finding deductions. It reacts proportionally to how
// far a document deviates, at the cost of the per-finding explanations the
// deduction policy gives.
type LinearPolicy struct {
	config LinearConfig
}

// NewLinearPolicy creates a linear policy with default weights
func NewLinearPolicy() *LinearPolicy {
	return &LinearPolicy{config: DefaultLinearConfig()}
}

// NewLinearPolicyWithConfig creates a linear policy with custom weights
func NewLinearPolicyWithConfig(config LinearConfig) *LinearPolicy {
	return &LinearPolicy{config: config}
}

// Score weighs left-edge scatter, glyph-height scatter and the compression
// residual into a single continuous penalty.
func (p *LinearPolicy) Score(signals *Signals) (int, []string) {
	penalty := 0.0
	var issues []string

	if signals.FontMetricsOK {
		leftDev := math.Sqrt(signals.FontMetrics.LeftVariance)
		penalty += leftDev * p.config.LeftDeviationWeight
		penalty += signals.FontMetrics.StdHeight * p.config.HeightStdWeight

		if leftDev > 0 || signals.FontMetrics.StdHeight > 0 {
			issues = append(issues, fmt.Sprintf("Text scatter: left deviation %.1fpx, height deviation %.1fpx",
				leftDev, signals.FontMetrics.StdHeight))
		}
	}

	if stats, ok := signals.ELA[p.config.ELAQuality]; ok && stats.Mean > 0 {
		penalty += stats.Mean * p.config.ELAWeight
		issues = append(issues, fmt.Sprintf("Compression residual mean %.2f", stats.Mean))
	}

	return clampScore(100 - int(math.Round(penalty))), issues
}
