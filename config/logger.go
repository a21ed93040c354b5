package config

import (
	"fmt"

	"github.com/FrenchMajesty/turbo-kit/utils/logger"
)

// NewLogger builds the logger described by c: stdout, plus a JSON file when
// File is set.
func (c LogConfig) NewLogger() (logger.Logger, error) {
	level, err := logger.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	stdout := logger.NewStdoutLogger(logger.WithLevel(level), logger.WithPretty(c.Pretty))
	if c.File == "" {
		return stdout, nil
	}

	fileLogger, err := logger.NewFileLogger(c.File, logger.WithLevel(level))
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logger.NewMultiLogger(stdout, fileLogger), nil
}
