package logger

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Level is the severity of a log entry. Higher values are more severe.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	return l.zerolog().String()
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.NoLevel
	}
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") to a Level.
func ParseLevel(name string) (Level, error) {
	zl, err := zerolog.ParseLevel(name)
	if err != nil {
		return LevelInfo, err
	}

	switch zl {
	case zerolog.DebugLevel, zerolog.TraceLevel:
		return LevelDebug, nil
	case zerolog.InfoLevel:
		return LevelInfo, nil
	case zerolog.WarnLevel:
		return LevelWarn, nil
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unsupported log level: %q", name)
	}
}
