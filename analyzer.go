package veridoc

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/veridoc/veridoc/ela"
	"github.com/veridoc/veridoc/fields"
	"github.com/veridoc/veridoc/internal/logger"
	"github.com/veridoc/veridoc/layout"
	"github.com/veridoc/veridoc/loader"
	"github.com/veridoc/veridoc/model"
	"github.com/veridoc/veridoc/ocr"
	"github.com/veridoc/veridoc/scoring"
)

// source is one document to be analyzed: either a file on disk or
// pre-extracted word boxes.
type source struct {
	filename string
	words    []model.Word
	page     model.PageSize
	resolved bool // words and page are already populated, skip loading
}

// Analyzer provides a fluent interface for configuring and running a
// forgery analysis. Each configuration method returns a new Analyzer
// instance, making it safe for concurrent use and allowing method chaining.
type Analyzer struct {
	source    source
	reference *source

	options analyzeOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Analyzer with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (a *Analyzer) clone() *Analyzer {
	newAnalyzer := &Analyzer{
		source:  a.source,
		options: a.options.clone(),
		err:     a.err,
	}
	if a.reference != nil {
		ref := *a.reference
		newAnalyzer.reference = &ref
	}
	return newAnalyzer
}

// WithReference supplies a known-authentic document of the same template.
// The reference is analyzed with the same settings as the test document and
// the differences contribute to the score.
func (a *Analyzer) WithReference(filename string) *Analyzer {
	newAnalyzer := a.clone()
	newAnalyzer.reference = &source{filename: filename}
	return newAnalyzer
}

// WithReferenceWords supplies pre-extracted word boxes as the reference
// document.
func (a *Analyzer) WithReferenceWords(words []model.Word, page model.PageSize) *Analyzer {
	newAnalyzer := a.clone()
	newAnalyzer.reference = &source{words: words, page: page, resolved: true}
	return newAnalyzer
}

// Language sets the OCR language(s). Multiple languages can be specified
// as a "+" separated string (e.g., "eng+hin"). Default is "eng".
func (a *Analyzer) Language(lang string) *Analyzer {
	newAnalyzer := a.clone()
	if lang == "" {
		newAnalyzer.err = fmt.Errorf("language must not be empty")
		return newAnalyzer
	}
	newAnalyzer.options.language = lang
	return newAnalyzer
}

// RenderDPI sets the rasterization resolution for PDF inputs.
func (a *Analyzer) RenderDPI(dpi int) *Analyzer {
	newAnalyzer := a.clone()
	if dpi <= 0 {
		newAnalyzer.err = fmt.Errorf("render DPI must be positive, got %d", dpi)
		return newAnalyzer
	}
	newAnalyzer.options.pdfRenderDPI = dpi
	return newAnalyzer
}

// Policy replaces the scoring policy. The default is the deduction policy
// returned by scoring.NewDeductionPolicy.
func (a *Analyzer) Policy(policy scoring.Policy) *Analyzer {
	newAnalyzer := a.clone()
	newAnalyzer.options.policy = policy
	return newAnalyzer
}

// SkipELA disables the compression-residual check on image inputs. Useful
// for screenshots and synthetic images where recompression artifacts are
// expected.
func (a *Analyzer) SkipELA() *Analyzer {
	newAnalyzer := a.clone()
	newAnalyzer.options.skipELA = true
	return newAnalyzer
}

// AlignmentConfig overrides the alignment analyzer thresholds.
func (a *Analyzer) AlignmentConfig(config layout.AlignmentConfig) *Analyzer {
	newAnalyzer := a.clone()
	newAnalyzer.options.alignment = config
	return newAnalyzer
}

// LabelValueConfig overrides the label-value matcher thresholds and catalog.
func (a *Analyzer) LabelValueConfig(config layout.LabelValueConfig) *Analyzer {
	newAnalyzer := a.clone()
	newAnalyzer.options.labelValue = config
	return newAnalyzer
}

// StructureConfig overrides the layout profile thresholds.
func (a *Analyzer) StructureConfig(config layout.StructureConfig) *Analyzer {
	newAnalyzer := a.clone()
	newAnalyzer.options.structure = config
	return newAnalyzer
}

// FontConfig overrides the font consistency thresholds.
func (a *Analyzer) FontConfig(config layout.FontConfig) *Analyzer {
	newAnalyzer := a.clone()
	newAnalyzer.options.font = config
	return newAnalyzer
}

// ELAConfig overrides the compression-residual settings.
func (a *Analyzer) ELAConfig(config ela.Config) *Analyzer {
	newAnalyzer := a.clone()
	newAnalyzer.options.elaConfig = config
	return newAnalyzer
}

// CompareConfig overrides the reference comparison thresholds.
func (a *Analyzer) CompareConfig(config scoring.CompareConfig) *Analyzer {
	newAnalyzer := a.clone()
	newAnalyzer.options.compare = config
	return newAnalyzer
}

// WithLoader injects a custom document loader.
func (a *Analyzer) WithLoader(l Loader) *Analyzer {
	newAnalyzer := a.clone()
	newAnalyzer.options.loader = l
	return newAnalyzer
}

// WithRecognizer injects a custom OCR engine. The injected recognizer is
// used as-is; the Language option does not apply to it.
func (a *Analyzer) WithRecognizer(r Recognizer) *Analyzer {
	newAnalyzer := a.clone()
	newAnalyzer.options.recognizer = r
	return newAnalyzer
}

// Analyze runs the full pipeline and returns the report. It never returns
// nil and never panics on bad input; any processing failure, including a
// panic anywhere in the pipeline, is folded into a report with
// StatusAnalysisFailed and a zero score.
func (a *Analyzer) Analyze() (report *model.ScoreReport) {
	defer func() {
		if r := recover(); r != nil {
			report = scoring.FailureReport(fmt.Errorf("internal fault: %v", r))
		}
	}()

	if a.err != nil {
		return scoring.FailureReport(a.err)
	}

	test, err := a.buildSignals(a.source, !a.options.skipELA)
	if err != nil {
		return scoring.FailureReport(err)
	}

	if a.reference != nil {
		// ELA is a per-document signal with no differential consumer,
		// so the reference pass skips the re-encodes.
		ref, err := a.buildSignals(*a.reference, false)
		if err != nil {
			return scoring.FailureReport(fmt.Errorf("reference document: %w", err))
		}
		test.Reference = scoring.NewComparatorWithConfig(a.options.compare).Compare(test, ref)
	}

	return scoring.BuildReport(test, a.options.policy)
}

// buildSignals resolves one source to word boxes and runs every analyzer
// over them.
func (a *Analyzer) buildSignals(src source, withELA bool) (*scoring.Signals, error) {
	log := logger.WithComponent("analyzer")

	words := src.words
	page := src.page
	var img image.Image
	var metadataIssues []string

	if !src.resolved {
		var l Loader = a.options.loader
		if l == nil {
			fileLoader := loader.New()
			fileLoader.PDFRenderDPI = a.options.pdfRenderDPI
			l = fileLoader
		}

		content, err := l.Load(src.filename)
		if err != nil {
			return nil, err
		}
		if issue := loader.MismatchIssue(src.filename, content.Format); issue != "" {
			metadataIssues = append(metadataIssues, issue)
		}

		switch {
		case content.HasWords():
			words = content.Words
			page = content.Page
		case content.Image != nil:
			img = content.Image
			bounds := img.Bounds()
			page = model.PageSize{Width: bounds.Dx(), Height: bounds.Dy()}

			words, err = a.recognize(img)
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("loader produced neither words nor an image")
		}
		log.Debug().Str("file", src.filename).Str("format", content.Format.String()).
			Int("words", len(words)).Msg("document loaded")
	}

	// A wordless page is degenerate input, not a fault: every analyzer
	// degrades to an empty or neutral result and the quality metrics carry
	// the penalty, so a partial score still comes out.
	if len(words) > 0 && page.IsZero() {
		return nil, fmt.Errorf("page size is required for layout analysis")
	}

	signals := &scoring.Signals{
		AlignmentIssues: layout.NewAlignmentAnalyzerWithConfig(a.options.alignment).Analyze(words),
		LabelMismatches: layout.NewLabelValueMatcherWithConfig(a.options.labelValue).Match(words),
		Layout:          layout.NewStructureAnalyzerWithConfig(a.options.structure).Analyze(words, page),
		Font:            layout.CheckFontConsistency(words, a.options.font),
		Quality:         layout.AnalyzeQuality(words),
		Fields:          fields.Extract(words),
		MetadataIssues:  metadataIssues,
	}
	signals.FontMetrics, signals.FontMetricsOK = layout.ComputeFontMetrics(words)
	signals.MetadataIssues = append(signals.MetadataIssues,
		fields.NewValidator().Validate(signals.Fields)...)

	if img != nil && withELA {
		signals.ELA = ela.NewAnalyzerWithConfig(a.options.elaConfig).Analyze(img)
	}

	log.Debug().Int("alignment_issues", len(signals.AlignmentIssues)).
		Int("label_mismatches", len(signals.LabelMismatches)).
		Int("metadata_issues", len(signals.MetadataIssues)).
		Msg("signals assembled")

	return signals, nil
}

// recognize runs the OCR engine over a rasterized page.
func (a *Analyzer) recognize(img image.Image) ([]model.Word, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode page for OCR: %w", err)
	}

	if a.options.recognizer != nil {
		return a.options.recognizer.Words(buf.Bytes())
	}

	client, err := ocr.New()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if a.options.language != "eng" {
		if err := client.SetLanguage(a.options.language); err != nil {
			return nil, fmt.Errorf("failed to set OCR language: %w", err)
		}
	}
	return client.Words(buf.Bytes())
}
