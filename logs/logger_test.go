package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	assert := assert.New(t)

	terminal := &bytes.Buffer{}
	trace := &bytes.Buffer{}

	logger := New(Options{Writer: terminal, Trace: trace})
	logger.Info("tick", "pc", 12)

	assert.Contains(terminal.String(), "msg=tick")
	assert.Contains(terminal.String(), "pc=12")

	record := map[string]any{}
	assert.NoError(json.Unmarshal(trace.Bytes(), &record))
	assert.Equal("tick", record["msg"])
	assert.Equal(float64(12), record["pc"])
}

func TestLoggerLevel(t *testing.T) {
	assert := assert.New(t)

	terminal := &bytes.Buffer{}
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)

	logger := New(Options{Writer: terminal, Level: level})
	logger.Info("hidden")
	assert.Equal("", terminal.String())

	level.Set(slog.LevelDebug)
	logger.Debug("shown")
	assert.Equal(1, strings.Count(terminal.String(), "msg=shown"))
}

func TestParseLevel(t *testing.T) {
	assert := assert.New(t)

	level, err := ParseLevel("debug")
	assert.NoError(err)
	assert.Equal(slog.LevelDebug, level)

	level, err = ParseLevel("WARN")
	assert.NoError(err)
	assert.Equal(slog.LevelWarn, level)

	_, err = ParseLevel("loud")
	assert.Error(err)
}

func TestToJournalKey(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("PC", toJournalKey("pc"))
	assert.Equal("LOGS_SPAN_1", toJournalKey("logs.span-1"))
}
