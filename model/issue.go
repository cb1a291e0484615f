package model

// AlignmentIssueType identifies the kind of alignment anomaly found
// within a text line.
type AlignmentIssueType int

const (
	AlignmentUnknown AlignmentIssueType = iota
	// AlignmentLargeGap is an abnormally wide space between adjacent words,
	// which may indicate inserted text.
	AlignmentLargeGap
	// AlignmentTextOverlap is a negative gap between adjacent words.
	AlignmentTextOverlap
	// AlignmentVerticalMisalignment is excessive top-Y variance among the
	// words of a single line.
	AlignmentVerticalMisalignment
)

// String returns a string representation of the issue type
func (t AlignmentIssueType) String() string {
	switch t {
	case AlignmentLargeGap:
		return "large_gap"
	case AlignmentTextOverlap:
		return "text_overlap"
	case AlignmentVerticalMisalignment:
		return "vertical_misalignment"
	default:
		return "unknown"
	}
}

// AlignmentIssue is a single anomaly detected by the alignment analyzer.
// Exactly one of the magnitude fields is meaningful per type: GapSize for
// large gaps, Overlap for overlaps, Variance for vertical misalignment.
type AlignmentIssue struct {
	Type AlignmentIssueType

	// LineY is the clustering key of the line the issue was found on.
	LineY int

	// PositionX is the right edge of the left word of the pair (gap and
	// overlap issues only).
	PositionX int

	// GapSize is the gap in pixels for large-gap issues.
	GapSize int

	// Overlap is the overlap in pixels for overlap issues.
	Overlap int

	// Variance is the top-Y variance for vertical misalignment issues.
	Variance float64

	// Between names the word pair for gap and overlap issues.
	Between string

	// Words holds the texts of the whole line for vertical misalignment.
	Words []string
}

// MismatchKind identifies the kind of label-to-value spacing anomaly.
type MismatchKind int

const (
	MismatchTooClose MismatchKind = iota
	MismatchTooFar
	MismatchVerticalOffset
)

// String returns a string representation of the mismatch kind
func (k MismatchKind) String() string {
	switch k {
	case MismatchTooClose:
		return "too_close"
	case MismatchTooFar:
		return "too_far"
	case MismatchVerticalOffset:
		return "vertical_misalignment"
	default:
		return "unknown"
	}
}

// LabelValueMismatch is a suspicious spacing between a known field label
// and the word that follows it.
type LabelValueMismatch struct {
	Label string
	Value string
	Kind  MismatchKind

	// Gap is the horizontal label-right to value-left distance in pixels
	// (too-close and too-far kinds).
	Gap int

	// YDiff is the vertical distance in pixels (vertical-offset kind).
	YDiff int
}
