package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observed(redact bool) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &Logger{SugaredLogger: zap.New(core).Sugar(), redact: redact, hashSalt: "salt"}, logs
}

func TestLogger_RedactsSensitiveKeys(t *testing.T) {
	l, logs := observed(true)

	l.Info("login", "email", "ana@example.com", "password", "hunter2", "risk_level", "low", "user_id", "abc123")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "[REDACTED]", fields["email"])
	assert.Equal(t, "[REDACTED]", fields["password"])
	assert.Equal(t, "low", fields["risk_level"])
	assert.Contains(t, fields["user_id"], "hash:")
	assert.NotContains(t, fields["user_id"], "abc123")
}

func TestLogger_RedactsJWTValues(t *testing.T) {
	l, logs := observed(true)

	l.With("header", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.sig").Warn("request")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "[REDACTED]", fields["header"])
}

func TestLogger_RedactionDisabled(t *testing.T) {
	l, logs := observed(false)

	l.Debug("login", "email", "ana@example.com")

	assert.Equal(t, "ana@example.com", logs.All()[0].ContextMap()["email"])
}

func TestNew_WithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	l, err := New("production", WithFile(FileOptions{Path: path, MaxSizeMB: 1}))
	require.NoError(t, err)
	l.Info("hello", "component", "test")
	l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
