// Package logger holds the process-wide zerolog logger.
//
// Call Init once in main; Get hands the same logger to any code that was not
// wired with an explicit instance.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "task-system"

// Options configures the logger at startup.
type Options struct {
	// Level names the minimum level to emit: trace, debug, info, warn or
	// error. Anything else falls back to info.
	Level string
	// Pretty switches from JSON lines to the coloured console writer.
	// Keep it off outside local development.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu   sync.Mutex
	inst *zerolog.Logger
)

// Init builds the singleton. The first call wins; later calls return the
// already-built logger unchanged.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if inst != nil {
		return *inst
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := levelFor(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	l := zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
	inst = &l
	return l
}

// Get returns the singleton logger. Panics when Init was never called, which
// always indicates a wiring bug in main.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if inst == nil {
		panic("logger: Get() called before Init()")
	}
	return *inst
}

// Reset discards the singleton so the next Init rebuilds it. For tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	inst = nil
}

func levelFor(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
