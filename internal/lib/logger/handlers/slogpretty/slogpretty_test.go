package slogpretty

import (
	"bytes"
	"errors"
	"eventsApi/internal/lib/logger/sl"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"log/slog"
	"testing"
)

func TestPrettyHandler(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer

	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelInfo}}
	log := slog.New(opts.NewPrettyHandler(&buf)).With(slog.String("op", "handlers.health.New"))

	log.Debug("hidden")
	log.Error("database is unreachable", sl.Err(errors.New("connection refused")))

	out := buf.String()

	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "ERROR:")
	assert.Contains(t, out, "database is unreachable")
	assert.Contains(t, out, `"op": "handlers.health.New"`)
	assert.Contains(t, out, `"error": "connection refused"`)
}
