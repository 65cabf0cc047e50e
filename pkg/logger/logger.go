// Package logger provides the storefront's structured logger built on zerolog.
//
// Initialise once at startup with Init. Request-scoped code should log through
// WithCtx so every line carries the request_id set by the Logger middleware:
//
//	log := logger.WithCtx(r.Context())
//	log.Info().Uint("user_id", id).Msg("order placed")
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// L is the base logger. It discards everything until Init is called.
var L = zerolog.Nop()

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string
	// Pretty enables the human-friendly console writer.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Extra receives a copy of every JSON line (e.g. the Mongo sink).
	Extra io.Writer
}

// Init builds the base logger and makes it the fallback for WithCtx.
func Init(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	if opts.Extra != nil {
		out = zerolog.MultiLevelWriter(out, opts.Extra)
	}

	L = zerolog.New(out).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()

	zerolog.DefaultContextLogger = &L
	return L
}

// WithCtx returns the request logger stored in ctx, or the base logger.
func WithCtx(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &L
}

// Inject stores a request logger in ctx.
func Inject(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// ParseLevel maps a level name to a zerolog.Level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
