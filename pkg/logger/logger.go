// Package logger holds the process-wide zerolog logger of the task service.
// cmd/server calls Init once; packages that need a tagged logger use Component.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options is read once, by the first Init.
type Options struct {
	Level   string    // LOG_LEVEL; unknown values log at info
	Pretty  bool      // console writer, set in development
	Output  io.Writer // nil means stdout
	Service string    // "service" field on every entry
}

var (
	root  zerolog.Logger
	once  sync.Once
	ready bool
)

// Init builds the logger from opts. Later calls return the logger built by
// the first one and ignore their options.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		level := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(level)

		fields := zerolog.New(out).Level(level).With().Timestamp().Caller()
		if opts.Service != "" {
			fields = fields.Str("service", opts.Service)
		}
		root = fields.Logger()

		ready = true
	})
	return root
}

// Get panics before Init.
func Get() zerolog.Logger {
	if !ready {
		panic("logger: not initialised")
	}
	return root
}

// Component returns the logger with a "component" field, e.g. "auth" or "tasks".
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Reset lets tests call Init again with different options.
func Reset() {
	once = sync.Once{}
	root = zerolog.Logger{}
	ready = false
}

func parseLevel(s string) zerolog.Level {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		name = "warn"
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level < zerolog.TraceLevel || level > zerolog.ErrorLevel {
		return zerolog.InfoLevel
	}
	return level
}
