package layout

import (
	"sort"

	"github.com/veridoc/veridoc/model"
)

// LineConfig holds configuration for grouping words into text lines.
type LineConfig struct {
	// Tolerance is the vertical clustering tolerance in pixels. A word
	// joins an existing line when its top Y is within 2*Tolerance of the
	// line's key (default: 5).
	Tolerance int

	// MinConfidence drops words below this confidence before grouping
	// (default: 50).
	MinConfidence float64
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		Tolerance:     5,
		MinConfidence: 50,
	}
}

// Lines is the result of grouping words by vertical position. Line keys are
// the top-Y coordinate of the first word that started each line, kept in
// scan order: matching is first-match against existing keys, not
// nearest-match, and keys are never re-sorted. Two nearly-overlapping
// clusters therefore resolve to whichever line was created first.
type Lines struct {
	keys  []int
	byKey map[int][]model.Word
}

// GroupWords clusters words into lines using a greedy single pass.
// Words below the confidence floor are dropped entirely.
func GroupWords(words []model.Word, config LineConfig) *Lines {
	lines := &Lines{byKey: make(map[int][]model.Word)}

	for _, word := range words {
		if word.Confidence < config.MinConfidence {
			continue
		}
		yPos := word.BBox.Y

		matched := false
		for _, key := range lines.keys {
			if abs(yPos-key) <= config.Tolerance*2 {
				lines.byKey[key] = append(lines.byKey[key], word)
				matched = true
				break
			}
		}

		if !matched {
			lines.keys = append(lines.keys, yPos)
			lines.byKey[yPos] = append(lines.byKey[yPos], word)
		}
	}

	return lines
}

// Count returns the number of detected lines.
func (l *Lines) Count() int {
	if l == nil {
		return 0
	}
	return len(l.keys)
}

// Keys returns the line keys in creation order.
func (l *Lines) Keys() []int {
	if l == nil {
		return nil
	}
	return l.keys
}

// Words returns the words of a line in left-to-right order. Horizontal
// ordering is established here, at consumption time; grouping itself keeps
// scan order.
func (l *Lines) Words(key int) []model.Word {
	if l == nil {
		return nil
	}
	grouped := l.byKey[key]
	if grouped == nil {
		return nil
	}
	sorted := make([]model.Word, len(grouped))
	copy(sorted, grouped)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.X < sorted[j].BBox.X
	})
	return sorted
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
