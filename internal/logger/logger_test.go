package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func newJSONLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: level, Format: FormatJSON, Writer: buf})
	require.NoError(t, err)
	return log, buf
}

func decodeEntry(t *testing.T, line string) logEntry {
	t.Helper()

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	return entry
}

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	log, buf := newJSONLogger(t, "info")
	log.WithFields(map[string]any{"theme": "dark", "path": "tokens.json"}).Info("token document loaded")

	line := strings.TrimSpace(buf.String())
	entry := decodeEntry(t, line)
	require.Equal(t, "token document loaded", entry["message"])
	require.Equal(t, "tokens.json", entry["path"])
	require.Equal(t, "dark", entry["theme"])
	require.Equal(t, "info", entry["level"])
	require.Less(t, strings.Index(line, `"path"`), strings.Index(line, `"theme"`), "fields are written in key order")
}

func TestLoggerWithChains(t *testing.T) {
	t.Parallel()

	log, buf := newJSONLogger(t, "debug")
	log.With("path", "tokens.yaml").With("cycle", []string{"a", "b", "a"}).Warn("cyclic token reference")

	entry := decodeEntry(t, strings.TrimSpace(buf.String()))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "tokens.yaml", entry["path"])
	require.Equal(t, []any{"a", "b", "a"}, entry["cycle"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	log, buf := newJSONLogger(t, "info")
	log.Debug("this should not appear")
	require.Empty(t, strings.TrimSpace(buf.String()))

	log, buf = newJSONLogger(t, "DEBUG")
	log.Debug("visible")
	require.Equal(t, "debug", decodeEntry(t, strings.TrimSpace(buf.String()))["level"])
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	log, buf := newJSONLogger(t, "debug")
	log.With("path", "tokens.yaml").Error(errors.New("boom"), "failed")
	log.Error(nil, "no cause")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	entry := decodeEntry(t, lines[0])
	require.Equal(t, "failed", entry["message"])
	require.Equal(t, "tokens.yaml", entry["path"])
	require.Equal(t, "boom", entry["error"])

	require.NotContains(t, decodeEntry(t, lines[1]), "error")
}

func TestLoggerRejectsBadOptions(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud"})
	require.Error(t, err)

	_, err = New(Options{Format: "xml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "xml")
}

func TestLoggerConsoleOutput(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "warn", Format: FormatConsole, NoColor: true, Writer: buf})
	require.NoError(t, err)

	log.Info("hidden")
	log.With("theme", "dark").Warn("shadowed reference")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shadowed reference")
	require.Contains(t, buf.String(), "WRN")
	require.Contains(t, buf.String(), "theme=dark")
}

func TestNilAndNopLoggersAreSafe(t *testing.T) {
	t.Parallel()

	var nilLogger *Logger
	require.NotPanics(t, func() {
		nilLogger.Info("ignored")
		nilLogger.Error(errors.New("ignored"), "ignored")
		require.Nil(t, nilLogger.WithFields(map[string]any{"a": 1}))
		require.Nil(t, nilLogger.With("a", 1))
		Nop().WithFields(map[string]any{"a": 1}).Warn("ignored")
		Nop().With("a", 1).Debug("ignored")
	})
}
