// Package streamlog provides the single named logging sink used by the
// stream package: INFO for plan explanations and observer samples, ERROR
// for end-of-run error summaries. Callers construct a Config in code; there
// is no bootstrap phase, multi-logger registry, or file/env configuration
// loading.
package streamlog

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config controls the single logger's output. Unlike a service logger there
// is no env/file loader: callers construct a Config in code, or use Default.
type Config struct {
	Level     string
	Pretty    bool
	NoColor   bool
	Timestamp bool
}

// Default returns sensible defaults for interactive use.
func Default() Config {
	return Config{Level: "info", Pretty: true, Timestamp: true}
}

// Logger wraps a zerolog.Logger tagged with a component name.
type Logger struct {
	z         zerolog.Logger
	component string
}

// New builds a Logger writing to stderr per cfg.
func New(cfg Config, component string) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var z zerolog.Logger
	if cfg.Pretty {
		z = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    cfg.NoColor,
			TimeFormat: "15:04:05",
			FormatLevel: func(i interface{}) string {
				lvl := strings.ToUpper(fmt.Sprintf("%s", i))
				return fmt.Sprintf("[%s]", lvl)
			},
		})
	} else {
		z = zerolog.New(os.Stderr)
	}
	z = z.Level(level)
	if cfg.Timestamp {
		z = z.With().Timestamp().Logger()
	}
	if component != "" {
		z = z.With().Str("component", component).Logger()
	}

	return &Logger{z: z, component: component}
}

// Info logs a message at INFO level with optional structured fields.
func (l *Logger) Info(msg string, fields ...map[string]any) {
	ev := l.z.Info()
	addFields(ev, fields...)
	ev.Msg(msg)
}

// Error logs a message at ERROR level with optional structured fields.
func (l *Logger) Error(msg string, fields ...map[string]any) {
	ev := l.z.Error()
	addFields(ev, fields...)
	ev.Msg(msg)
}

// WithComponent returns a logger tagged with an additional component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{z: l.z.With().Str("component", name).Logger(), component: name}
}

func addFields(ev *zerolog.Event, fields ...map[string]any) {
	for _, fm := range fields {
		for k, v := range fm {
			ev.Interface(k, v)
		}
	}
}

// defaultLogger is the library's single named sink.
var defaultLogger = New(Default(), "streamline")

// DefaultLogger returns the library's single named logger instance.
func DefaultLogger() *Logger { return defaultLogger }

// SetDefault overrides the library's single named logger, e.g. to redirect
// output or change the level. Intended for use by the embedding application,
// not by the stream package's internals.
func SetDefault(l *Logger) { defaultLogger = l }
