package veridoc

import (
	"github.com/veridoc/veridoc/ela"
	"github.com/veridoc/veridoc/layout"
	"github.com/veridoc/veridoc/loader"
	"github.com/veridoc/veridoc/model"
	"github.com/veridoc/veridoc/scoring"
)

// Loader resolves a path into analyzable content. The default is
// loader.New(); tests and embedders can inject their own.
type Loader interface {
	Load(path string) (*loader.Content, error)
}

// Recognizer extracts positioned words from an encoded page image. The
// default is the gosseract-backed ocr.Client (behind the ocr build tag).
type Recognizer interface {
	Words(imageData []byte) ([]model.Word, error)
}

// analyzeOptions holds configuration for an analysis run.
type analyzeOptions struct {
	// OCR settings
	language string

	// PDF rasterization
	pdfRenderDPI int

	// Scoring
	policy scoring.Policy

	// Analyzer thresholds
	alignment  layout.AlignmentConfig
	labelValue layout.LabelValueConfig
	structure  layout.StructureConfig
	font       layout.FontConfig
	elaConfig  ela.Config
	compare    scoring.CompareConfig

	// Image-level checks
	skipELA bool

	// Injected collaborators (nil means the package defaults)
	loader     Loader
	recognizer Recognizer
}

// defaultOptions returns the default analysis options.
func defaultOptions() analyzeOptions {
	return analyzeOptions{
		language:     "eng",
		pdfRenderDPI: 0,   // loader default
		policy:       nil, // reference deduction policy
		alignment:    layout.DefaultAlignmentConfig(),
		labelValue:   layout.DefaultLabelValueConfig(),
		structure:    layout.DefaultStructureConfig(),
		font:         layout.DefaultFontConfig(),
		elaConfig:    ela.DefaultConfig(),
		compare:      scoring.DefaultCompareConfig(),
	}
}

// clone creates a copy of analyzeOptions. The config structs are treated as
// read-only after construction, so a value copy is enough.
func (o analyzeOptions) clone() analyzeOptions {
	return o
}
