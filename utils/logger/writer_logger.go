package logger

import (
	"io"
)

// WriterLogger adapts any io.Writer to the Logger interface.
// Thread safety depends on the underlying writer.
type WriterLogger struct {
	zeroSink
}

var _ Logger = (*WriterLogger)(nil)

// NewWriterLogger creates a logger from any io.Writer
func NewWriterLogger(w io.Writer, opts ...Option) *WriterLogger {
	return &WriterLogger{
		zeroSink: newZeroSink(w, opts...),
	}
}

func (w *WriterLogger) Type() LoggerType {
	return LoggerTypeWriter
}

func (w *WriterLogger) Close() error {
	return nil
}
