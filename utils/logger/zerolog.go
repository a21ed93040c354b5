package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Option configures the zerolog-backed loggers.
type Option func(*options)

type options struct {
	level  Level
	pretty bool
}

func defaultOptions() options {
	return options{level: LevelInfo}
}

// WithLevel sets the minimum level that is written.
func WithLevel(level Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithPretty switches output from JSON lines to a human readable console format.
func WithPretty(pretty bool) Option {
	return func(o *options) {
		o.pretty = pretty
	}
}

// zeroSink is the shared zerolog core behind the stdout, file and writer loggers.
// zerolog.Logger is safe for concurrent use as long as the writer is.
type zeroSink struct {
	zlog zerolog.Logger
}

func newZeroSink(w io.Writer, opts ...Option) zeroSink {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(w).With().Timestamp().Logger().Level(o.level.zerolog())
	return zeroSink{zlog: l}
}

func (z *zeroSink) Log(level Level, msg string, fields map[string]any) {
	event := z.zlog.WithLevel(level.zerolog())
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	event.Msg(msg)
}

func (z *zeroSink) Printf(format string, args ...any) {
	z.zlog.Info().Msgf(format, args...)
}

func (z *zeroSink) Println(message string) {
	z.zlog.Info().Msg(message)
}
