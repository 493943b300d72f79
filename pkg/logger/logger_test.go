package logger

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerBeforeInitIsSilent(t *testing.T) {
	log := New("test:silent")
	// Must not panic or write anywhere.
	log.Printf("dropped %d", 1)
	log.Print("dropped")
}

func TestInitCreatesLogFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	path := Init()
	require.NotEmpty(t, path)
	assert.Equal(t, path, Path())

	log := New("test:file")
	log.Printf("hello %s", "world")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[test:file]")
	assert.Contains(t, content, "hello world")
	assert.True(t, strings.HasSuffix(path, ".log"))
}
