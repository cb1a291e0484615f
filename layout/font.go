package layout

import (
	"fmt"
	"math"
	"sort"

	"github.com/veridoc/veridoc/model"
)

// FontConfig holds configuration for glyph-height consistency checks.
type FontConfig struct {
	// Tolerance is how far a glyph height may sit from every common
	// height before it counts as unusual, in pixels (default: 15).
	Tolerance int

	// MinWords is the minimum number of qualifying words needed for a
	// meaningful check (default: 10).
	MinWords int

	// MinConfidence excludes words at or below this confidence
	// (default: 50, strict).
	MinConfidence float64

	// CommonHeights is how many dominant heights form the baseline set
	// (default: 3).
	CommonHeights int

	// MaxUnusualRatio is the tolerated share of unusual words among
	// qualifying words (default: 0.10).
	MaxUnusualRatio float64
}

// DefaultFontConfig returns sensible default configuration
func DefaultFontConfig() FontConfig {
	return FontConfig{
		Tolerance:       15,
		MinWords:        10,
		MinConfidence:   50,
		CommonHeights:   3,
		MaxUnusualRatio: 0.10,
	}
}

// FontCheck is the outcome of a glyph-height consistency check.
// Insufficient data is reported as consistent: a near-blank page is not
// evidence of tampering.
type FontCheck struct {
	Consistent   bool
	Insufficient bool
	UnusualCount int
	Message      string
}

// CheckFontConsistency measures whether glyph heights cluster around a few
// common values, as printed text does. Documents with pasted-in text tend
// to carry runs of off-height words.
func CheckFontConsistency(words []model.Word, config FontConfig) FontCheck {
	var heights []int
	qualifying := 0
	for _, w := range words {
		if w.Confidence > config.MinConfidence {
			heights = append(heights, w.BBox.Height)
			qualifying++
		}
	}

	if len(heights) < config.MinWords {
		return FontCheck{
			Consistent:   true,
			Insufficient: true,
			Message:      "Insufficient text for font analysis",
		}
	}

	commonHeights := mostCommon(heights, config.CommonHeights)

	unusual := 0
	for _, h := range heights {
		usual := false
		for _, common := range commonHeights {
			if abs(h-common) <= config.Tolerance {
				usual = true
				break
			}
		}
		if !usual {
			unusual++
		}
	}

	if float64(unusual) > float64(qualifying)*config.MaxUnusualRatio {
		return FontCheck{
			Consistent:   false,
			UnusualCount: unusual,
			Message:      fmt.Sprintf("Inconsistent font sizes detected: %d anomalies", unusual),
		}
	}

	return FontCheck{Consistent: true, UnusualCount: unusual, Message: "Font consistency OK"}
}

// AnalyzeQuality summarizes the OCR confidence distribution of all words.
// The thresholds that turn these metrics into deductions belong to the
// scoring policy, not here.
func AnalyzeQuality(words []model.Word) model.QualityMetrics {
	if len(words) == 0 {
		return model.QualityMetrics{AvgConfidence: 0, LowConfRatio: 1.0}
	}

	total := 0.0
	lowConf := 0
	for _, w := range words {
		total += w.Confidence
		if w.Confidence < 60 {
			lowConf++
		}
	}

	return model.QualityMetrics{
		AvgConfidence: total / float64(len(words)),
		LowConfRatio:  float64(lowConf) / float64(len(words)),
		TotalWords:    len(words),
	}
}

// ComputeFontMetrics derives glyph geometry statistics over every non-blank
// word, without a confidence filter. The reference comparator uses the mean
// height to detect wholesale font substitution between two documents.
func ComputeFontMetrics(words []model.Word) (model.FontMetrics, bool) {
	var heights, lefts []float64
	topSet := make(map[int]struct{})

	for _, w := range words {
		if w.IsBlank() {
			continue
		}
		heights = append(heights, float64(w.BBox.Height))
		lefts = append(lefts, float64(w.BBox.X))
		topSet[w.BBox.Y] = struct{}{}
	}

	if len(heights) == 0 {
		return model.FontMetrics{}, false
	}

	tops := make([]int, 0, len(topSet))
	for t := range topSet {
		tops = append(tops, t)
	}
	sort.Ints(tops)

	spacing := 0.0
	if len(tops) > 1 {
		for i := 1; i < len(tops); i++ {
			spacing += float64(tops[i] - tops[i-1])
		}
		spacing /= float64(len(tops) - 1)
	}

	return model.FontMetrics{
		AvgHeight:      mean(heights),
		StdHeight:      math.Sqrt(variance(heights)),
		LeftVariance:   variance(lefts),
		AvgLineSpacing: spacing,
	}, true
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
