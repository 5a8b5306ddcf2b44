package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/musdomains/domains/internal/domain/config"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG", slog.LevelWarn))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning", slog.LevelInfo))
	assert.Equal(t, slog.LevelError, ParseLevel(" error ", slog.LevelInfo))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud", slog.LevelInfo))
}

func TestNewLogger(t *testing.T) {
	t.Setenv(LogLevelEnv, "")
	ctx := context.Background()

	quiet := NewLogger(&config.RuntimeConfig{})
	assert.False(t, quiet.Enabled(ctx, slog.LevelInfo))
	assert.True(t, quiet.Enabled(ctx, slog.LevelWarn))

	debug := NewLogger(&config.RuntimeConfig{Debug: true})
	assert.True(t, debug.Enabled(ctx, slog.LevelDebug))

	t.Setenv(LogLevelEnv, "info")
	assert.True(t, NewLogger(nil).Enabled(ctx, slog.LevelInfo))
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/usecase/register.go", shortPath("/home/me/domains/internal/usecase/register.go"))
	assert.Equal(t, "cli/main.go", shortPath("/src/domains/cli/main.go"))
	assert.Equal(t, "x.go", shortPath("/tmp/x.go"))
}
