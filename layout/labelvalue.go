package layout

import (
	"strings"

	"github.com/veridoc/veridoc/model"
)

// LabelValueConfig holds configuration for label-to-value spacing checks.
type LabelValueConfig struct {
	// Tolerance is the vertical distance in pixels within which a label
	// and its value count as the same line (default: 8).
	Tolerance int

	// Labels is the catalog of field labels, matched case-insensitively
	// as substrings of a word's text.
	Labels []string

	// MinLabelConfidence is the floor for a word to qualify as a label
	// (default: 60).
	MinLabelConfidence float64

	// MinValueConfidence is the floor for a word to qualify as a value
	// (default: 50).
	MinValueConfidence float64

	// MinValueLen is the minimum trimmed text length of a value word
	// (default: 2).
	MinValueLen int

	// MinGap and MaxGap bound the acceptable label-right to value-left
	// distance in pixels (defaults: 5 and 100).
	MinGap int
	MaxGap int

	// LookAhead is how many words past the label are scanned for a value
	// (default: 4).
	LookAhead int
}

// DefaultLabelValueConfig returns the standard certificate label catalog
// and spacing thresholds.
func DefaultLabelValueConfig() LabelValueConfig {
	return LabelValueConfig{
		Tolerance: 8,
		Labels: []string{
			"Name", "Roll Number", "Date of Birth", "Application No",
			"Gender", "Category", "Total", "Merit rank",
		},
		MinLabelConfidence: 60,
		MinValueConfidence: 50,
		MinValueLen:        2,
		MinGap:             5,
		MaxGap:             100,
		LookAhead:          4,
	}
}

// LabelValueMatcher pairs known field labels with the nearest following
// word and flags abnormal spacing between them.
type LabelValueMatcher struct {
	config LabelValueConfig
}

// NewLabelValueMatcher creates a matcher with default configuration
func NewLabelValueMatcher() *LabelValueMatcher {
	return &LabelValueMatcher{config: DefaultLabelValueConfig()}
}

// NewLabelValueMatcherWithConfig creates a matcher with custom configuration
func NewLabelValueMatcherWithConfig(config LabelValueConfig) *LabelValueMatcher {
	return &LabelValueMatcher{config: config}
}

// Match scans the word stream for label words and checks the spacing to
// their values. The first qualifying candidate after a label terminates the
// scan for that label, whether or not it sits on the same line; a candidate
// on a clearly different line is itself the finding. A word matches at most
// one label pattern per pass.
func (m *LabelValueMatcher) Match(words []model.Word) []model.LabelValueMismatch {
	var mismatches []model.LabelValueMismatch

	for i, word := range words {
		if word.Confidence < m.config.MinLabelConfidence {
			continue
		}

		for _, label := range m.config.Labels {
			if !strings.Contains(strings.ToLower(word.Text), strings.ToLower(label)) {
				continue
			}

			if mismatch, ok := m.checkValue(word, words, i); ok {
				mismatches = append(mismatches, mismatch)
			}
			break
		}
	}

	return mismatches
}

// checkValue scans forward from the label for the first qualifying value
// word and classifies the spacing between them.
func (m *LabelValueMatcher) checkValue(label model.Word, words []model.Word, labelIdx int) (model.LabelValueMismatch, bool) {
	end := labelIdx + m.config.LookAhead + 1
	if end > len(words) {
		end = len(words)
	}

	for j := labelIdx + 1; j < end; j++ {
		candidate := words[j]
		if candidate.Confidence < m.config.MinValueConfidence ||
			len(strings.TrimSpace(candidate.Text)) < m.config.MinValueLen {
			continue
		}

		yDiff := abs(label.BBox.Y - candidate.BBox.Y)
		if yDiff <= m.config.Tolerance {
			gap := candidate.BBox.Left() - label.BBox.Right()

			if gap < m.config.MinGap {
				return model.LabelValueMismatch{
					Label: label.Text,
					Value: candidate.Text,
					Kind:  model.MismatchTooClose,
					Gap:   gap,
				}, true
			}
			if gap > m.config.MaxGap {
				return model.LabelValueMismatch{
					Label: label.Text,
					Value: candidate.Text,
					Kind:  model.MismatchTooFar,
					Gap:   gap,
				}, true
			}
			return model.LabelValueMismatch{}, false
		}

		// The first candidate ends the search even when it is not on
		// the label's line; a clearly separated one is the finding.
		if yDiff > m.config.Tolerance*2 {
			return model.LabelValueMismatch{
				Label: label.Text,
				Value: candidate.Text,
				Kind:  model.MismatchVerticalOffset,
				YDiff: yDiff,
			}, true
		}
		return model.LabelValueMismatch{}, false
	}

	return model.LabelValueMismatch{}, false
}
