// Package cli implements the veridoc command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veridoc/veridoc/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "veridoc",
	Short: "veridoc - certificate forgery scoring",
	Long: `veridoc scores certificate documents for signs of forgery.

It extracts positioned text from PDF, image, or hOCR inputs, analyzes the
layout for the geometric artifacts manipulation leaves behind, and emits a
bounded validity score with an explanation of every deduction.`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cli")
		log.Error().Err(err).Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
