// Package model provides the data types shared by the veridoc analysis
// pipeline.
//
// All analysis operates on [Word] values: OCR or text-layer tokens carrying
// text, a recognition confidence, and a pixel bounding box. Words are
// immutable once produced; every analyzer derives its own view (lines,
// profiles, metrics) per call and never mutates the input.
//
// # Geometry
//
// [BBox] is a pixel-space rectangle with a top-left origin, matching the
// coordinate system of OCR engines and raster images. This differs from PDF
// point space: Y grows downward and all values are whole pixels.
//
// # Findings
//
// Analyzers report structured findings rather than raising errors:
//
//   - [AlignmentIssue] - abnormal gaps, overlaps, and vertical jitter
//   - [LabelValueMismatch] - suspicious label-to-value spacing
//   - [LayoutProfile] - a document's spatial fingerprint
//   - [CertificateFields] - best-effort extracted field values
//
// The terminal artifact is [ScoreReport], produced exactly once per analysis
// call by the scoring aggregator.
package model
