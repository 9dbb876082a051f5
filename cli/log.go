package cli

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/ardnew/gll/log"
)

// logFormat configures the logger format as a side effect of parsing, via
// encoding.TextUnmarshaler, so the logger is correctly configured before
// any command body runs.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)

	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level the same way logFormat configures
// the format.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)

	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level  logLevel  `default:"info" enum:"debug,info,warn,error,trace" help:"Set log level."`
	Format logFormat `default:"text" enum:"json,text"                   help:"Set log format."`
	Pretty bool      `default:"true"                                    help:"Enable colorized pretty printing." negatable:""`
	Caller bool      `default:"false"                                   help:"Include caller information."       negatable:""`
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start finalizes logger configuration with the fields TextUnmarshaler
// cannot reach (plain booleans), and returns the resulting package-level
// default logger.
func (f *logConfig) start(ctx context.Context) log.Logger {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithPretty(f.Pretty),
		log.WithCaller(f.Caller),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.Bool("pretty", f.Pretty),
		slog.Bool("caller", f.Caller),
	)

	return log.Default()
}
