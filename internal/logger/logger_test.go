package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeKVs_RedactsSecrets(t *testing.T) {
	got := sanitizeKVs([]interface{}{"title", "Ashoka", "api_key", "sk-123", "auth_token", "abc"})
	assert.Equal(t, []interface{}{"title", "Ashoka", "api_key", "[REDACTED]", "auth_token", "[REDACTED]"}, got)
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	got := sanitizeKVs([]interface{}{"lang", "te", "dangling"})
	assert.Equal(t, []interface{}{"lang", "te", "dangling"}, got)
}

func TestNop(t *testing.T) {
	l := Nop()
	l.With("component", "test").Warn("ignored", "k", "v")
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "itihas.log")
	l, err := New("prod", path)
	require.NoError(t, err)

	l.Info("summary ready", "title", "Ashoka", "lang", "hi")
	l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "summary ready")
	assert.Contains(t, string(data), `"title":"Ashoka"`)
}
