package fields

import (
	"regexp"

	"github.com/veridoc/veridoc/model"
)

// ValidatorConfig holds the format patterns and plausibility bounds for
// extracted certificate data. The defaults encode the WBJEE rank card
// conventions; other templates should supply their own.
type ValidatorConfig struct {
	// ApplicationNoPattern and RollNoPattern are anchored format checks.
	ApplicationNoPattern *regexp.Regexp
	RollNoPattern        *regexp.Regexp
	DateOfBirthPattern   *regexp.Regexp

	// HighScore with a rank above HighScoreMaxRank is implausible, as is
	// a score below LowScore with a rank under LowScoreMinRank.
	HighScore        float64
	HighScoreMaxRank int
	LowScore         float64
	LowScoreMinRank  int
}

// DefaultValidatorConfig returns the standard format and plausibility rules.
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		ApplicationNoPattern: regexp.MustCompile(`^\d{11}$`),
		RollNoPattern:        regexp.MustCompile(`^\d{10}$`),
		DateOfBirthPattern:   regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`),
		HighScore:            180,
		HighScoreMaxRank:     10000,
		LowScore:             30,
		LowScoreMinRank:      1000,
	}
}

// Validator checks extracted fields for internally consistent formats and
// plausible cross-field relationships.
type Validator struct {
	config ValidatorConfig
}

// NewValidator creates a validator with default configuration
func NewValidator() *Validator {
	return &Validator{config: DefaultValidatorConfig()}
}

// NewValidatorWithConfig creates a validator with custom configuration
func NewValidatorWithConfig(config ValidatorConfig) *Validator {
	return &Validator{config: config}
}

// Validate applies every check whose field(s) were extracted and returns
// one issue string per finding. An empty slice means nothing was flagged;
// findings are reported, never raised.
func (v *Validator) Validate(fields model.CertificateFields) []string {
	var issues []string

	if fields.ApplicationNo != "" && !v.config.ApplicationNoPattern.MatchString(fields.ApplicationNo) {
		issues = append(issues, "Invalid application number format")
	}

	if fields.RollNumber != "" && !v.config.RollNoPattern.MatchString(fields.RollNumber) {
		issues = append(issues, "Invalid roll number format")
	}

	if fields.DateOfBirth != "" && !v.config.DateOfBirthPattern.MatchString(fields.DateOfBirth) {
		issues = append(issues, "Invalid date of birth format")
	}

	if fields.TotalScore != nil && fields.MeritRankEngineering != nil {
		score := *fields.TotalScore
		rank := *fields.MeritRankEngineering

		if score > v.config.HighScore && rank > v.config.HighScoreMaxRank {
			issues = append(issues, "Score-rank correlation seems suspicious")
		} else if score < v.config.LowScore && rank < v.config.LowScoreMinRank {
			issues = append(issues, "Low score with high rank - suspicious")
		}
	}

	return issues
}
