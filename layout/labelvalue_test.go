package layout

import (
	"testing"

	"github.com/veridoc/veridoc/model"
)

func TestLabelValueMatcher_TooFar(t *testing.T) {
	matcher := NewLabelValueMatcher()
	// label right edge at 180, value at 450 -> gap 270
	words := []model.Word{
		makeWord("Roll Number", 90, 100, 100, 80, 12),
		makeWord("1234567890", 90, 450, 100, 90, 12),
	}

	mismatches := matcher.Match(words)

	if len(mismatches) != 1 {
		t.Fatalf("Expected exactly 1 mismatch, got %d", len(mismatches))
	}
	m := mismatches[0]
	if m.Kind != model.MismatchTooFar {
		t.Errorf("Expected too_far, got %v", m.Kind)
	}
	if m.Gap != 270 {
		t.Errorf("Expected gap 270, got %d", m.Gap)
	}
	if m.Label != "Roll Number" || m.Value != "1234567890" {
		t.Errorf("Unexpected pair: %q -> %q", m.Label, m.Value)
	}
}

func TestLabelValueMatcher_TooClose(t *testing.T) {
	matcher := NewLabelValueMatcher()
	// label right edge at 180, value at 182 -> gap 2
	words := []model.Word{
		makeWord("Name", 90, 100, 100, 80, 12),
		makeWord("SMITH", 90, 182, 100, 50, 12),
	}

	mismatches := matcher.Match(words)

	if len(mismatches) != 1 {
		t.Fatalf("Expected exactly 1 mismatch, got %d", len(mismatches))
	}
	if mismatches[0].Kind != model.MismatchTooClose {
		t.Errorf("Expected too_close, got %v", mismatches[0].Kind)
	}
}

func TestLabelValueMatcher_NormalSpacingIsClean(t *testing.T) {
	matcher := NewLabelValueMatcher()
	// gap of 40, comfortably inside [5, 100]
	words := []model.Word{
		makeWord("Name", 90, 100, 100, 80, 12),
		makeWord("SMITH", 90, 220, 100, 50, 12),
	}

	if mismatches := matcher.Match(words); len(mismatches) != 0 {
		t.Errorf("Expected no mismatches, got %d", len(mismatches))
	}
}

func TestLabelValueMatcher_VerticalOffset(t *testing.T) {
	matcher := NewLabelValueMatcher()
	// value sits 30px below the label, past 2x tolerance
	words := []model.Word{
		makeWord("Date of Birth", 90, 100, 100, 100, 12),
		makeWord("01-01-2000", 90, 220, 130, 90, 12),
	}

	mismatches := matcher.Match(words)

	if len(mismatches) != 1 {
		t.Fatalf("Expected exactly 1 mismatch, got %d", len(mismatches))
	}
	m := mismatches[0]
	if m.Kind != model.MismatchVerticalOffset {
		t.Errorf("Expected vertical_misalignment, got %v", m.Kind)
	}
	if m.YDiff != 30 {
		t.Errorf("Expected y diff 30, got %d", m.YDiff)
	}
}

// The first qualifying candidate terminates the scan for a label even when
// it is off-line and a same-line value exists further ahead.
func TestLabelValueMatcher_FirstCandidateShortCircuits(t *testing.T) {
	matcher := NewLabelValueMatcher()
	words := []model.Word{
		makeWord("Total", 90, 100, 100, 50, 12),
		makeWord("98.5", 90, 180, 200, 40, 12), // off-line candidate, wins the scan
		makeWord("98.5", 90, 180, 100, 40, 12), // same-line value, never reached
	}

	mismatches := matcher.Match(words)

	if len(mismatches) != 1 {
		t.Fatalf("Expected exactly 1 mismatch, got %d", len(mismatches))
	}
	if mismatches[0].Kind != model.MismatchVerticalOffset {
		t.Errorf("Expected vertical_misalignment, got %v", mismatches[0].Kind)
	}
}

// A candidate between tolerance and 2x tolerance stops the scan without
// producing a finding.
func TestLabelValueMatcher_AmbiguousOffsetIsSilent(t *testing.T) {
	matcher := NewLabelValueMatcher()
	words := []model.Word{
		makeWord("Category", 90, 100, 100, 70, 12),
		makeWord("GEN", 90, 200, 112, 40, 12), // 12px off: > 8, <= 16
	}

	if mismatches := matcher.Match(words); len(mismatches) != 0 {
		t.Errorf("Expected no mismatches for ambiguous offset, got %d", len(mismatches))
	}
}

func TestLabelValueMatcher_SkipsWeakCandidates(t *testing.T) {
	matcher := NewLabelValueMatcher()
	words := []model.Word{
		makeWord("Name", 90, 100, 100, 80, 12),
		makeWord("x", 90, 182, 100, 10, 12),     // too short
		makeWord("??", 30, 200, 100, 20, 12),    // low confidence
		makeWord("SMITH", 90, 450, 100, 50, 12), // first real candidate, gap 270
	}

	mismatches := matcher.Match(words)

	if len(mismatches) != 1 {
		t.Fatalf("Expected exactly 1 mismatch, got %d", len(mismatches))
	}
	if mismatches[0].Kind != model.MismatchTooFar {
		t.Errorf("Expected too_far, got %v", mismatches[0].Kind)
	}
}

func TestLabelValueMatcher_LowConfidenceLabelIgnored(t *testing.T) {
	matcher := NewLabelValueMatcher()
	words := []model.Word{
		makeWord("Name", 40, 100, 100, 80, 12), // below the 60 label floor
		makeWord("SMITH", 90, 450, 100, 50, 12),
	}

	if mismatches := matcher.Match(words); len(mismatches) != 0 {
		t.Errorf("Expected no mismatches, got %d", len(mismatches))
	}
}

func TestLabelValueMatcher_CaseInsensitiveSubstring(t *testing.T) {
	matcher := NewLabelValueMatcher()
	words := []model.Word{
		makeWord("APPLICATION NO:", 90, 100, 100, 120, 12),
		makeWord("12345678901", 90, 400, 100, 90, 12), // gap 180
	}

	mismatches := matcher.Match(words)

	if len(mismatches) != 1 {
		t.Fatalf("Expected exactly 1 mismatch, got %d", len(mismatches))
	}
	if mismatches[0].Label != "APPLICATION NO:" {
		t.Errorf("Unexpected label: %q", mismatches[0].Label)
	}
}
