package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	is := is.New(t)

	is.Equal(ParseLevel("debug"), zerolog.DebugLevel)
	is.Equal(ParseLevel(" WARN "), zerolog.WarnLevel)
	is.Equal(ParseLevel("chatty"), zerolog.InfoLevel)
	is.Equal(ParseLevel(""), zerolog.InfoLevel)
}

func TestBuildJSON(t *testing.T) {
	is := is.New(t)
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	l := Logger{Level: "info", Format: "json"}.Build(&buf)

	l.Debug().Msg("hidden")
	l.Info().Str("map", "x").Msg("shown")

	var entry map[string]any
	is.NoErr(json.Unmarshal(buf.Bytes(), &entry))
	is.Equal(entry["message"], "shown")
	is.Equal(entry["map"], "x")
	is.Equal(entry["level"], "info")
}
