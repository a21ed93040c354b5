package logger

import (
	"os"
)

// FileLogger writes JSON log lines to a file opened with O_APPEND, so each
// line lands atomically even when several processes share the file.
type FileLogger struct {
	zeroSink
	file *os.File
}

var _ Logger = (*FileLogger)(nil)

// NewFileLogger creates a new logger that writes to the specified file path.
// Returns an error if the file cannot be opened.
func NewFileLogger(filepath string, opts ...Option) (*FileLogger, error) {
	file, err := os.OpenFile(filepath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	// The console format is meant for terminals, files always get JSON.
	opts = append(opts, WithPretty(false))

	return &FileLogger{
		zeroSink: newZeroSink(file, opts...),
		file:     file,
	}, nil
}

func (f *FileLogger) Type() LoggerType {
	return LoggerTypeFile
}

// Close closes the underlying file. Should be called when done with the logger.
func (f *FileLogger) Close() error {
	if f.file != nil {
		err := f.file.Close()
		f.file = nil
		return err
	}
	return nil
}
