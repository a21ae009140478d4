package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, false, "warn")

	log.Info("hidden")
	log.Warn("shown", "entry_point", "mint")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "entry_point=mint")
	assert.NotContains(t, out, "time=")

	buf.Reset()
	newLogger(&buf, true, "error").Debug("details")
	assert.Contains(t, buf.String(), "details")
	assert.Contains(t, buf.String(), "source=")
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/usecase/read_config.go", shortPath("/home/dev/cep78-cli/internal/usecase/read_config.go"))
	assert.Equal(t, "main.go", shortPath("/tmp/build/main.go"))
}
