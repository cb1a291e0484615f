package main

import (
	stdlog "log"

	"github.com/veridoc/veridoc/internal/cli"
	"github.com/veridoc/veridoc/internal/config"
	"github.com/veridoc/veridoc/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Printf("Warning: Could not load configuration: %v", err)
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			stdlog.Fatalf("Failed to initialize logger: %v", err)
		}
	} else {
		logConfig := logger.LogConfig{
			Level:      cfg.LogLevel,
			Format:     cfg.LogFormat,
			TimeFormat: cfg.LogTimeFormat,
			Output:     cfg.LogOutput,
		}
		if err := logger.Setup(logConfig); err != nil {
			stdlog.Fatalf("Failed to initialize logger: %v", err)
		}
	}

	cli.Execute()
}
