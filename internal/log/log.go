// Package log configures the structured zerolog logger shared by casemock
// components. Output goes to stderr so stdout stays free for lookup results.
package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Canonical field names.
const (
	FieldComponent = "component"
	FieldCatalog   = "catalog"
	FieldRecords   = "records"
	FieldIndex     = "index"
	FieldFound     = "found"
	FieldTolerance = "tolerance"
	FieldInputs    = "inputs"
	FieldRoot      = "root"
)

// DefaultLevel is used when neither Config.Level nor CASEMOCK_LOG_LEVEL is set.
const DefaultLevel = zerolog.WarnLevel

// EnvLevel names the environment variable holding a fallback level.
const EnvLevel = "CASEMOCK_LOG_LEVEL"

// Config captures options for configuring the base logger.
type Config struct {
	Level  string    // optional log level ("debug", "info", ...)
	Output io.Writer // optional writer (defaults to os.Stderr)
	Pretty bool      // human-readable console output instead of JSON lines
}

var (
	mu   sync.RWMutex
	base = newLogger(Config{})
)

// ParseLevel parses a level name. The empty string yields DefaultLevel.
func ParseLevel(name string) (zerolog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return DefaultLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
}

// Configure replaces the base logger. Unknown level names fall back to the
// CASEMOCK_LOG_LEVEL environment variable and then to DefaultLevel.
func Configure(cfg Config) {
	l := newLogger(cfg)
	mu.Lock()
	base = l
	mu.Unlock()
}

func newLogger(cfg Config) zerolog.Logger {
	level := DefaultLevel
	if parsed, err := zerolog.ParseLevel(cfg.Level); cfg.Level != "" && err == nil {
		level = parsed
	} else if env := os.Getenv(EnvLevel); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	if cfg.Pretty {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.Kitchen, NoColor: true}
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// Base returns the configured base logger.
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str(FieldComponent, component).Logger()
}

// Derive attaches arbitrary fields to a child logger using the provided builder function.
func Derive(build func(*zerolog.Context)) zerolog.Logger {
	ctx := Base().With()
	if build != nil {
		build(&ctx)
	}
	return ctx.Logger()
}
