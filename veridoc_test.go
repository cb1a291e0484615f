package veridoc

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/veridoc/veridoc/format"
	"github.com/veridoc/veridoc/loader"
	"github.com/veridoc/veridoc/model"
	"github.com/veridoc/veridoc/scoring"
)

const testPage = 1100

func testPageSize() model.PageSize {
	return model.PageSize{Width: 800, Height: testPage}
}

// certificateWords lays out a well-formed certificate: symmetric margins,
// even spacing, uniform glyph heights, and internally consistent fields.
func certificateWords() []model.Word {
	type placed struct {
		text  string
		width int
	}
	lines := []struct {
		y     int
		words []placed
	}{
		{40, []placed{{"ENTRANCE", 120}, {"EXAMINATION", 160}, {"RESULT", 100}, {"CERTIFICATE", 160}}},
		{100, []placed{{"Name", 60}, {"RAHUL", 80}, {"KUMAR", 80}}},
		{150, []placed{{"Roll", 50}, {"Number", 70}, {"1234567890", 120}}},
		{200, []placed{{"Application", 110}, {"No", 30}, {"12345678901", 130}}},
		{250, []placed{{"Date", 50}, {"of", 25}, {"Birth", 55}, {"15-08-2004", 110}}},
		{300, []placed{{"Total:", 65}, {"120.5", 60}}},
		{350, []placed{{"Merit", 60}, {"rank", 50}, {"1500", 50}, {"2200", 50}}},
		{1000, []placed{{"Downloading", 120}, {"Date:", 55}, {"01-06-2025", 110}}},
	}

	var words []model.Word
	for _, line := range lines {
		x := 100
		for _, p := range line.words {
			words = append(words, model.NewWord(p.text, 95, x, line.y, p.width, 20))
			x += p.width + 20
		}
	}
	return words
}

func TestAnalyze_CleanCertificate(t *testing.T) {
	report := FromWords(certificateWords(), testPageSize()).Analyze()

	if report.Status != model.StatusValid {
		t.Fatalf("Expected Valid, got %v with issues %v", report.Status, report.Issues)
	}
	if report.Score != 100 {
		t.Errorf("Expected score 100, got %d (issues: %v)", report.Score, report.Issues)
	}
	if len(report.Issues) != 1 || report.Issues[0] != scoring.NoAnomaliesMessage {
		t.Errorf("Expected sentinel issue, got %v", report.Issues)
	}

	if report.Fields.Name != "RAHUL KUMAR" {
		t.Errorf("Expected extracted name, got %q", report.Fields.Name)
	}
	if report.Fields.RollNumber != "1234567890" {
		t.Errorf("Expected extracted roll number, got %q", report.Fields.RollNumber)
	}
	if report.Fields.TotalScore == nil || *report.Fields.TotalScore != 120.5 {
		t.Errorf("Expected total score 120.5, got %v", report.Fields.TotalScore)
	}
}

func TestAnalyze_DoctoredCertificate(t *testing.T) {
	words := certificateWords()

	// Push the roll number far from its label and break its format.
	for i := range words {
		if words[i].Text == "1234567890" {
			words[i].Text = "12345"
			words[i].BBox.X = 600
		}
	}

	report := FromWords(words, testPageSize()).Analyze()

	if report.Score >= 100 {
		t.Errorf("Expected deductions, got score %d", report.Score)
	}

	var sawGap, sawFormat bool
	for _, issue := range report.Issues {
		if strings.Contains(issue, "Suspicious text gap") {
			sawGap = true
		}
		if issue == "Invalid roll number format" {
			sawFormat = true
		}
	}
	if !sawGap || !sawFormat {
		t.Errorf("Expected gap and format issues, got %v", report.Issues)
	}
}

func TestAnalyze_BlankDocument(t *testing.T) {
	report := FromWords(nil, testPageSize()).Analyze()

	// A wordless document is degenerate input, not a fault: the analyzers
	// degrade to neutral results and the quality metrics carry the penalty.
	if report.Status == model.StatusAnalysisFailed {
		t.Fatalf("Expected a partial score, got AnalysisFailed: %v", report.Issues)
	}
	if report.Score != 70 {
		t.Errorf("Expected quality-penalized score 70, got %d (issues: %v)",
			report.Score, report.Issues)
	}

	var sawConfidence, sawRatio bool
	for _, issue := range report.Issues {
		if strings.Contains(issue, "Low OCR confidence: 0.0%") {
			sawConfidence = true
		}
		if strings.Contains(issue, "High ratio of poorly recognized text: 1.00") {
			sawRatio = true
		}
	}
	if !sawConfidence || !sawRatio {
		t.Errorf("Expected quality issues, got %v", report.Issues)
	}
	if report.Summary.TextAlignmentIssues != 0 || !report.Summary.Layout.Empty() {
		t.Errorf("Expected neutral layout summary, got %+v", report.Summary)
	}
}

func TestAnalyze_MissingFile(t *testing.T) {
	report := Open(filepath.Join(t.TempDir(), "absent.png")).Analyze()

	if report.Status != model.StatusAnalysisFailed {
		t.Errorf("Expected AnalysisFailed for a missing file, got %v", report.Status)
	}
}

func TestAnalyze_HOCRFile(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`<html><head><meta name="ocr-system" content="tesseract"/></head><body>`)
	sb.WriteString(`<div class="ocr_page" title="bbox 0 0 800 1100">`)
	for _, w := range certificateWords() {
		fmt.Fprintf(&sb, `<span class="ocrx_word" title="bbox %d %d %d %d; x_wconf %.0f">%s</span>`,
			w.BBox.X, w.BBox.Y, w.BBox.Right(), w.BBox.Bottom(), w.Confidence, w.Text)
	}
	sb.WriteString(`</div></body></html>`)

	path := filepath.Join(t.TempDir(), "cert.hocr")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatal(err)
	}

	report := Open(path).Analyze()

	if report.Status != model.StatusValid {
		t.Fatalf("Expected Valid, got %v with issues %v", report.Status, report.Issues)
	}
	if report.Fields.ApplicationNo != "12345678901" {
		t.Errorf("Expected extracted application number, got %q", report.Fields.ApplicationNo)
	}
}

func TestAnalyze_WithReferenceWords(t *testing.T) {
	report := FromWords(certificateWords(), testPageSize()).
		WithReferenceWords(certificateWords(), testPageSize()).
		Analyze()

	// Same template, same fields: the identical score and rank must fire.
	if report.Score != 60 {
		t.Errorf("Expected the template-reuse deduction, got score %d (issues: %v)",
			report.Score, report.Issues)
	}

	var sawReuse bool
	for _, issue := range report.Issues {
		if issue == "Identical scores and ranks - possible template reuse" {
			sawReuse = true
		}
	}
	if !sawReuse {
		t.Errorf("Expected template-reuse issue, got %v", report.Issues)
	}
}

func TestAnalyze_CustomPolicy(t *testing.T) {
	report := FromWords(certificateWords(), testPageSize()).
		Policy(scoring.NewLinearPolicy()).
		Analyze()

	if report.Status == model.StatusAnalysisFailed {
		t.Fatalf("Unexpected failure: %v", report.Issues)
	}
	if report.Score < 80 {
		t.Errorf("Expected a high linear score, got %d", report.Score)
	}
}

type stubLoader struct {
	content *loader.Content
}

func (s stubLoader) Load(path string) (*loader.Content, error) {
	return s.content, nil
}

type stubRecognizer struct {
	words []model.Word
}

func (s stubRecognizer) Words(imageData []byte) ([]model.Word, error) {
	return s.words, nil
}

func TestAnalyze_InjectedCollaborators(t *testing.T) {
	content := &loader.Content{
		Format: format.PNG,
		Image:  image.NewGray(image.Rect(0, 0, 800, 1100)),
	}

	report := Open("cert.png").
		WithLoader(stubLoader{content: content}).
		WithRecognizer(stubRecognizer{words: certificateWords()}).
		SkipELA().
		Analyze()

	if report.Status != model.StatusValid {
		t.Fatalf("Expected Valid, got %v with issues %v", report.Status, report.Issues)
	}
	if report.Score != 100 {
		t.Errorf("Expected score 100, got %d (issues: %v)", report.Score, report.Issues)
	}
}

type panickyRecognizer struct{}

func (panickyRecognizer) Words(imageData []byte) ([]model.Word, error) {
	panic("recognizer exploded")
}

func TestAnalyze_EmptyLoaderContent(t *testing.T) {
	// A loader that honors neither half of the Content contract must yield
	// a failure report, not a crash.
	report := Open("cert.png").
		WithLoader(stubLoader{content: &loader.Content{}}).
		Analyze()

	if report.Status != model.StatusAnalysisFailed {
		t.Fatalf("Expected AnalysisFailed, got %v", report.Status)
	}
	if len(report.Issues) != 1 || !strings.Contains(report.Issues[0], "neither words nor an image") {
		t.Errorf("Unexpected issues: %v", report.Issues)
	}
}

func TestAnalyze_PanicBecomesFailureReport(t *testing.T) {
	content := &loader.Content{
		Format: format.PNG,
		Image:  image.NewGray(image.Rect(0, 0, 800, 1100)),
	}

	report := Open("cert.png").
		WithLoader(stubLoader{content: content}).
		WithRecognizer(panickyRecognizer{}).
		Analyze()

	if report.Status != model.StatusAnalysisFailed {
		t.Fatalf("Expected AnalysisFailed, got %v", report.Status)
	}
	if report.Score != 0 {
		t.Errorf("Expected score 0, got %d", report.Score)
	}
	if len(report.Issues) != 1 || !strings.Contains(report.Issues[0], "internal fault") {
		t.Errorf("Unexpected issues: %v", report.Issues)
	}
}

func TestAnalyze_ReferencePassSkipsResidualAnalysis(t *testing.T) {
	content := &loader.Content{
		Format: format.PNG,
		Image:  image.NewGray(image.Rect(0, 0, 800, 1100)),
	}
	analyzer := Open("cert.png").
		WithLoader(stubLoader{content: content}).
		WithRecognizer(stubRecognizer{words: certificateWords()})

	test, err := analyzer.buildSignals(analyzer.source, true)
	if err != nil {
		t.Fatalf("buildSignals failed: %v", err)
	}
	if test.ELA == nil {
		t.Error("Expected residual stats on the test pass")
	}

	ref, err := analyzer.buildSignals(analyzer.source, false)
	if err != nil {
		t.Fatalf("buildSignals failed: %v", err)
	}
	if ref.ELA != nil {
		t.Error("Expected no residual stats on the reference pass")
	}
}

func TestAnalyzer_ChainImmutability(t *testing.T) {
	base := FromWords(certificateWords(), testPageSize())
	withRef := base.WithReferenceWords(certificateWords(), testPageSize())

	if base.reference != nil {
		t.Error("Chain method mutated the original analyzer")
	}
	if withRef.reference == nil {
		t.Error("Chain method did not configure the new analyzer")
	}
}

func TestAnalyzer_InvalidConfiguration(t *testing.T) {
	report := Open("cert.pdf").RenderDPI(-10).Analyze()

	if report.Status != model.StatusAnalysisFailed {
		t.Errorf("Expected AnalysisFailed for invalid DPI, got %v", report.Status)
	}

	report = Open("cert.pdf").Language("").Analyze()
	if report.Status != model.StatusAnalysisFailed {
		t.Errorf("Expected AnalysisFailed for empty language, got %v", report.Status)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	analyzer := FromWords(certificateWords(), testPageSize())

	first := analyzer.Analyze()
	second := analyzer.Analyze()

	if first.Score != second.Score || first.Status != second.Status {
		t.Errorf("Repeated analysis diverged: %d/%v vs %d/%v",
			first.Score, first.Status, second.Score, second.Status)
	}
}
