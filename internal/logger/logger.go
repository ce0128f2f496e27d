// Package logger configures the global zerolog logger from CLI options.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger holds logging options shared by every command.
type Logger struct {
	Level  string `short:"L" long:"log-level"  env:"LOG_LEVEL"  description:"Log level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
	Format string `long:"log-format" env:"LOG_FORMAT" description:"Log output format" choice:"console" choice:"json" default:"console"`
	Caller bool   `long:"log-caller" env:"LOG_CALLER" description:"Add caller file and line to log entries"`
}

// Setup replaces the global logger with one writing to stderr.
func (l Logger) Setup() {
	log.Logger = l.Build(os.Stderr)
}

// Build returns a logger writing to out and sets the global level.
func (l Logger) Build(out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(ParseLevel(l.Level))

	if strings.EqualFold(l.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).With().Timestamp()
	if l.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// ParseLevel maps a level name to zerolog, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
