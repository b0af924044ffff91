// Package logger is the structured logging front end used by tokenkit. It
// keeps zerolog out of the rest of the tree and writes to stderr by default,
// leaving stdout to generated tokens, CSS and palettes.
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Format selects the encoding of log lines.
type Format string

const (
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
	// FormatConsole writes human readable lines.
	FormatConsole Format = "console"
)

// Options configures New. Zero values give info level JSON on stderr.
type Options struct {
	Level   string
	Format  Format
	NoColor bool
	Writer  io.Writer
}

// Logger carries a zerolog context. A nil *Logger discards everything.
type Logger struct {
	base zerolog.Logger
}

// New builds a Logger from opts. Unknown levels and formats are errors.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	switch opts.Format {
	case "", FormatJSON:
	case FormatConsole:
		writer = zerolog.ConsoleWriter{
			Out:        writer,
			TimeFormat: time.RFC3339,
			NoColor:    opts.NoColor,
		}
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	return &Logger{base: zerolog.New(writer).Level(level).With().Timestamp().Logger()}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// With returns a derived logger carrying one extra field.
func (l *Logger) With(key string, value any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{base: l.base.With().Interface(key, value).Logger()}
}

// WithFields returns a derived logger carrying fields, written in key order.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	ctx := l.base.With()
	for _, key := range keys {
		ctx = ctx.Interface(key, fields[key])
	}
	return &Logger{base: ctx.Logger()}
}

func (l *Logger) Debug(msg string) { l.write(zerolog.DebugLevel, nil, msg) }

func (l *Logger) Info(msg string) { l.write(zerolog.InfoLevel, nil, msg) }

func (l *Logger) Warn(msg string) { l.write(zerolog.WarnLevel, nil, msg) }

// Error logs msg at error level with err attached when non-nil.
func (l *Logger) Error(err error, msg string) { l.write(zerolog.ErrorLevel, err, msg) }

func (l *Logger) write(level zerolog.Level, err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.WithLevel(level)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}
