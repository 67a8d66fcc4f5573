package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogLogger_LevelsAndWith(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug")
	ctx := context.Background()

	log.Debug(ctx, "d-msg")
	log.With("client_id", "dcdb5ae7add825d2").Info(ctx, "i-msg", "k", 1)
	log.Warn(ctx, "w-msg")
	log.Error(ctx, "e-msg")

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG msg=d-msg",
		"level=INFO msg=i-msg client_id=dcdb5ae7add825d2 k=1",
		"level=WARN msg=w-msg",
		"level=ERROR msg=e-msg",
	} {
		assert.Contains(t, out, want)
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")
	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	assert.False(t, strings.Contains(buf.String(), "hidden"))
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel(" DEBUG "))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
