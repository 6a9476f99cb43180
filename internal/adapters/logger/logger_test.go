package logger_test

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recall/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func newLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newLogger(t)

	lg.Info("configuration cache entry reused")
	lg.Warn("some warning")
	lg.Debug("hidden")

	assert.Equal(t, "configuration cache entry reused\n! some warning\n", buf.String())
}

func TestLogger_Verbose(t *testing.T) {
	lg, buf := newLogger(t)
	lg.SetVerbose(true)

	lg.Debug("shown")
	assert.Equal(t, "shown\n", buf.String())
}

func TestLogger_Error_Chain(t *testing.T) {
	lg, buf := newLogger(t)

	err := zerr.Wrap(os.ErrPermission, "failed to write cache entry")
	lg.Error(err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "✗ Error: failed to write cache entry"), out)
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "→ permission denied")
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newLogger(t)
	lg.SetJSON(true)

	lg.Error(os.ErrPermission)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Equal(t, "permission denied", record["error"])
}

func TestLogger_SetOutputKeepsJSON(t *testing.T) {
	lg, _ := newLogger(t)
	lg.SetJSON(true)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	lg.Info("hello")

	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())), buf.String())
}
