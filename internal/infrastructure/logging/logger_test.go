package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/catalog-core/internal/infrastructure/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New("catalog", config.LogConfig{Level: "warn"}, &buf)

	logger.Info().Msg("dropped")
	logger.Warn().Str("urn", "urn:li:tag:pii").Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "catalog", line["app"])
	assert.Equal(t, "urn:li:tag:pii", line["urn"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := New("catalog", config.LogConfig{Level: "info", Console: true}, &buf)

	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "app=")
}

func TestNew_LeavesGlobalLoggerAlone(t *testing.T) {
	before := log.Logger

	var buf bytes.Buffer
	_ = New("catalog", config.LogConfig{Level: "debug"}, &buf)

	log.Info().Msg("global")
	assert.Empty(t, buf.String())
	assert.Equal(t, before.GetLevel(), log.Logger.GetLevel())
}
