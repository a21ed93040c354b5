package logger

import (
	"os"
)

// StdoutLogger writes logs to stdout through zerolog.
// Safe for concurrent use across goroutines.
type StdoutLogger struct {
	zeroSink
}

var _ Logger = (*StdoutLogger)(nil)

// NewStdoutLogger creates a new logger that writes to stdout
func NewStdoutLogger(opts ...Option) *StdoutLogger {
	return &StdoutLogger{
		zeroSink: newZeroSink(os.Stdout, opts...),
	}
}

func (s *StdoutLogger) Type() LoggerType {
	return LoggerTypeStdout
}

func (s *StdoutLogger) Close() error {
	return nil
}
