// Package layout provides the structural analyzers of the scoring engine:
// line grouping, word alignment, label-value spacing, the page layout
// profile, and font/quality metrics.
//
// All analyzers are pure functions over immutable [model.Word] slices; they
// allocate their own working state per call and are safe for concurrent use
// on different documents. Thresholds are carried in per-analyzer Config
// structs with Default constructors rather than package constants, so a
// caller can tighten or relax them per template.
package layout
