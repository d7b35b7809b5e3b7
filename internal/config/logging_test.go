package config

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_Level(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, NewLogger("debug", &bytes.Buffer{}).GetLevel())
	assert.Equal(t, zerolog.WarnLevel, NewLogger("warn", &bytes.Buffer{}).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLogger("", &bytes.Buffer{}).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLogger("loud", &bytes.Buffer{}).GetLevel())
}

func TestNewLogger_Output(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info", &buf)

	logger.Debug().Msg("hidden")
	logger.Info().Str("table", "users").Msg("seeded")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "seeded")
	assert.Contains(t, buf.String(), "users")
}
