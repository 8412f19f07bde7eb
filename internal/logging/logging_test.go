package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFilePath(t *testing.T) {
	start := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	assert.Equal(t, filepath.Join("logs", "projplan.20260212_213836.log"), LogFilePath("logs", "projplan", start))
	assert.Equal(t, filepath.Join("/var", "log", "planner.20260212_213836.log"), LogFilePath("/var/log/", "planner", start))
}

func TestOpenLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	start := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	f, err := OpenLogFile(dir, "projplan", start)
	require.NoError(t, err)
	_, err = f.WriteString("first\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// same second again: the first log is kept as .old
	f, err = OpenLogFile(dir, "projplan", start)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	path := LogFilePath(dir, "projplan", start)
	old, err := os.ReadFile(path + ".old")
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(old))

	cur, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, cur)
}
