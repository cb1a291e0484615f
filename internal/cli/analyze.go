package cli

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/veridoc/veridoc"
	"github.com/veridoc/veridoc/internal/config"
	"github.com/veridoc/veridoc/internal/logger"
	"github.com/veridoc/veridoc/model"
	"github.com/veridoc/veridoc/scoring"
)

var (
	referencePath string
	policyName    string
	ocrLanguage   string
	renderDPI     int
	skipELA       bool
	prettyOutput  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Score a certificate document for signs of forgery",
	Long: `Analyze scores a single certificate document and prints the report
as JSON on stdout. Supported inputs are PDF, PNG, JPEG, WebP, and hOCR.

With --reference, a known-authentic document of the same template is
analyzed alongside and layout differences contribute to the score.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&referencePath, "reference", "r", "", "known-authentic document of the same template")
	analyzeCmd.Flags().StringVar(&policyName, "policy", "deduction", "scoring policy: deduction or linear")
	analyzeCmd.Flags().StringVarP(&ocrLanguage, "language", "l", "", "OCR language(s), e.g. eng or eng+hin")
	analyzeCmd.Flags().IntVar(&renderDPI, "dpi", 0, "PDF rasterization resolution")
	analyzeCmd.Flags().BoolVar(&skipELA, "skip-ela", false, "disable the compression-residual check")
	analyzeCmd.Flags().BoolVar(&prettyOutput, "pretty", false, "indent the JSON report")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("analyze")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	analyzer := veridoc.Open(args[0])

	language := cfg.OCRLanguage
	if ocrLanguage != "" {
		language = ocrLanguage
	}
	if language != "" {
		analyzer = analyzer.Language(language)
	}

	dpi := cfg.PDFRenderDPI
	if renderDPI != 0 {
		dpi = renderDPI
	}
	if dpi != 0 {
		analyzer = analyzer.RenderDPI(dpi)
	}

	if referencePath != "" {
		analyzer = analyzer.WithReference(referencePath)
	}
	if skipELA {
		analyzer = analyzer.SkipELA()
	}

	switch policyName {
	case "deduction":
		// default policy
	case "linear":
		analyzer = analyzer.Policy(scoring.NewLinearPolicy())
	default:
		return fmt.Errorf("unknown policy %q (want deduction or linear)", policyName)
	}

	log.Info().Str("file", args[0]).Str("policy", policyName).Msg("analyzing document")
	report := analyzer.Analyze()
	log.Info().Int("score", report.Score).Stringer("status", report.Status).Msg("analysis complete")

	if err := writeReport(report); err != nil {
		return err
	}

	if report.Status == model.StatusAnalysisFailed {
		os.Exit(2)
	}
	return nil
}

func writeReport(report *model.ScoreReport) error {
	var (
		out []byte
		err error
	)
	if prettyOutput {
		out, err = sonic.MarshalIndent(report, "", "  ")
	} else {
		out, err = sonic.Marshal(report)
	}
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	_, err = fmt.Println(string(out))
	return err
}
