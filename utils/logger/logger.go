package logger

// Logger provides a levelled, structured logging interface for turbo-kit components.
// All implementations must be safe for concurrent use across multiple goroutines.
type Logger interface {
	// Type returns the type of the logger
	Type() LoggerType
	// Log writes msg at the given level with key/value context attached
	Log(level Level, msg string, fields map[string]any)
	// Printf logs a formatted message at info level
	Printf(format string, args ...any)
	// Println logs a message at info level
	Println(message string)
	// Close closes the logger
	Close() error
}

type LoggerType string

const (
	LoggerTypeStdout LoggerType = "stdout"
	LoggerTypeFile   LoggerType = "file"
	LoggerTypeNoop   LoggerType = "noop"
	LoggerTypeWriter LoggerType = "writer"
	LoggerTypeMulti  LoggerType = "multi"
	LoggerTypeMock   LoggerType = "mock"
)

// Debug logs msg at debug level on l. A nil logger is ignored.
func Debug(l Logger, msg string, fields map[string]any) {
	if l == nil {
		return
	}
	l.Log(LevelDebug, msg, fields)
}

// Info logs msg at info level on l. A nil logger is ignored.
func Info(l Logger, msg string, fields map[string]any) {
	if l == nil {
		return
	}
	l.Log(LevelInfo, msg, fields)
}

// Warn logs msg at warn level on l. A nil logger is ignored.
func Warn(l Logger, msg string, fields map[string]any) {
	if l == nil {
		return
	}
	l.Log(LevelWarn, msg, fields)
}

// Error logs msg at error level on l. A nil logger is ignored.
func Error(l Logger, msg string, fields map[string]any) {
	if l == nil {
		return
	}
	l.Log(LevelError, msg, fields)
}

// MultiLogger writes to multiple loggers simultaneously.
// Safe for concurrent use if all underlying loggers are safe.
type MultiLogger struct {
	loggers []Logger
}

var _ Logger = (*MultiLogger)(nil)

// NewMultiLogger creates a logger that writes to multiple destinations
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{
		loggers: loggers,
	}
}

func (m *MultiLogger) Type() LoggerType {
	return LoggerTypeMulti
}

func (m *MultiLogger) Log(level Level, msg string, fields map[string]any) {
	for _, logger := range m.loggers {
		logger.Log(level, msg, fields)
	}
}

func (m *MultiLogger) Printf(format string, args ...any) {
	for _, logger := range m.loggers {
		logger.Printf(format, args...)
	}
}

func (m *MultiLogger) Println(message string) {
	for _, logger := range m.loggers {
		logger.Println(message)
	}
}

// Close closes every underlying logger and returns the first error seen.
func (m *MultiLogger) Close() error {
	var first error
	for _, logger := range m.loggers {
		if err := logger.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
