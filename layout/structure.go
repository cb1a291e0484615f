package layout

import (
	"math"
	"sort"

	"github.com/veridoc/veridoc/model"
)

// StructureConfig holds configuration for the layout profile.
type StructureConfig struct {
	// MinConfidence excludes words at or below this confidence from the
	// profile (default: 50, strict).
	MinConfidence float64

	// XGrid and YGrid are the rounding steps for the column/row grid
	// fingerprint (defaults: 10 and 5).
	XGrid int
	YGrid int

	// TopX and TopY are how many dominant grid positions to keep
	// (defaults: 5 and 10).
	TopX int
	TopY int
}

// DefaultStructureConfig returns sensible default configuration
func DefaultStructureConfig() StructureConfig {
	return StructureConfig{
		MinConfidence: 50,
		XGrid:         10,
		YGrid:         5,
		TopX:          5,
		TopY:          10,
	}
}

// StructureAnalyzer computes a document's layout fingerprint: margins, text
// extents, dominant grid positions, and position variances.
type StructureAnalyzer struct {
	config StructureConfig
}

// NewStructureAnalyzer creates an analyzer with default configuration
func NewStructureAnalyzer() *StructureAnalyzer {
	return &StructureAnalyzer{config: DefaultStructureConfig()}
}

// NewStructureAnalyzerWithConfig creates an analyzer with custom configuration
func NewStructureAnalyzerWithConfig(config StructureConfig) *StructureAnalyzer {
	return &StructureAnalyzer{config: config}
}

// Analyze builds the layout profile for a page of the given pixel size.
// An empty profile is returned when no word clears the confidence floor,
// so degenerate documents degrade instead of aborting the pipeline.
// For non-degenerate input the margins and text area always sum to the
// page dimensions.
func (s *StructureAnalyzer) Analyze(words []model.Word, page model.PageSize) model.LayoutProfile {
	var xPositions, yPositions []int
	maxRight, maxBottom := 0, 0

	for _, w := range words {
		if w.Confidence <= s.config.MinConfidence {
			continue
		}
		xPositions = append(xPositions, w.BBox.X)
		yPositions = append(yPositions, w.BBox.Y)
		if r := w.BBox.Right(); r > maxRight {
			maxRight = r
		}
		if b := w.BBox.Bottom(); b > maxBottom {
			maxBottom = b
		}
	}

	if len(xPositions) == 0 {
		return model.LayoutProfile{}
	}

	leftMargin := minOf(xPositions)
	topMargin := minOf(yPositions)
	rightMargin := page.Width - maxRight
	bottomMargin := page.Height - maxBottom

	margins := model.Margins{
		Left:   leftMargin,
		Right:  rightMargin,
		Top:    topMargin,
		Bottom: bottomMargin,
	}
	area := model.TextArea{
		Width:  page.Width - leftMargin - rightMargin,
		Height: page.Height - topMargin - bottomMargin,
	}

	commonX := mostCommon(roundAll(xPositions, s.config.XGrid), s.config.TopX)
	commonY := mostCommon(roundAll(yPositions, s.config.YGrid), s.config.TopY)

	return model.NewLayoutProfile(
		margins, area, commonX, commonY,
		varianceInts(xPositions), varianceInts(yPositions),
	)
}

// roundAll rounds each position to the nearest multiple of grid.
// Halfway values round to even, matching the profile this fingerprint was
// calibrated against.
func roundAll(positions []int, grid int) []int {
	rounded := make([]int, len(positions))
	for i, p := range positions {
		rounded[i] = int(math.RoundToEven(float64(p)/float64(grid))) * grid
	}
	return rounded
}

// mostCommon returns the n most frequent values, most frequent first.
// Ties resolve to the value seen earliest in the input.
func mostCommon(values []int, n int) []int {
	counts := make(map[int]int)
	firstSeen := make(map[int]int)
	order := make([]int, 0, len(values))

	for i, v := range values {
		if _, ok := counts[v]; !ok {
			firstSeen[v] = i
			order = append(order, v)
		}
		counts[v]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

func varianceInts(values []int) float64 {
	floats := make([]float64, len(values))
	for i, v := range values {
		floats[i] = float64(v)
	}
	return variance(floats)
}

func minOf(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
