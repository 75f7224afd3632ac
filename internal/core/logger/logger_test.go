package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBuild_JSONLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l, cleanup := Build(Options{Level: "warn", JSON: true, Out: zapcore.AddSync(&buf)})
	defer cleanup()

	l.Info("dropped")
	l.Warn("kept", zap.String("k", "v"))
	_ = l.Sync()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "v", entry["k"])
	assert.Contains(t, entry, "ts")
}

func TestBuild_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l, cleanup := Build(Options{Level: "loud", JSON: true, Out: zapcore.AddSync(&buf)})
	defer cleanup()

	l.Debug("hidden")
	l.Info("shown")
	_ = l.Sync()
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestBuild_RotateFile(t *testing.T) {
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "app.log")
	l, cleanup := Build(Options{
		Level:  "info",
		JSON:   true,
		Out:    zapcore.AddSync(&buf),
		Rotate: FileRotate{Filename: file, MaxSizeMB: 1},
	})
	l.Info("to both")
	cleanup()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), "to both")
	assert.Contains(t, buf.String(), "to both")
}

func TestToWriter(t *testing.T) {
	var buf bytes.Buffer
	l, cleanup := Build(Options{Level: "debug", JSON: true, Out: zapcore.AddSync(&buf)})
	defer cleanup()

	w := ToWriter(l, zapcore.InfoLevel)
	n, err := w.Write([]byte("[GIN-debug] hello\n"))
	require.NoError(t, err)
	assert.Equal(t, len("[GIN-debug] hello\n"), n)
	_ = l.Sync()
	assert.Contains(t, buf.String(), `"msg":"[GIN-debug] hello"`)
}
