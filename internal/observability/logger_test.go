package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNewLoggerLevel(t *testing.T) {
	prevGlobal := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prevGlobal) })

	logger := NewLogger(LoggingConfig{Level: "warn", Format: "json", Output: "stderr"})
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestDefaultLoggingConfig(t *testing.T) {
	cfg := DefaultLoggingConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
}

func TestWithEntityContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	entityLogger := WithEntityContext(logger, "book", "42")
	entityLogger.Info().Msg("book created")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "book", entry["entity"])
	assert.Equal(t, "42", entry["entity_id"])
	assert.Equal(t, "book created", entry["message"])
}

func TestWithRequestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	requestLogger := WithRequestContext(logger, "req-123")
	requestLogger.Info().Msg("handled")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
}
