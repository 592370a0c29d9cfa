package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runArgs(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("ERRWRAP_CONFIG", "")

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no input", nil, exitUsage},
		{"bad log level", []string{"--log-level", "loud", "5"}, exitUsage},
		{"unknown flag", []string{"--nope"}, exitUsage},
		{"non integer value", []string{"oops"}, exitFailure},
		{"integer value", []string{"5"}, exitOK},
		{"error message", []string{"--error", "boom"}, exitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runArgs(t, tt.args...)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestRunPrintsCodes(t *testing.T) {
	code, stdout, _ := runArgs(t, "5", "--error", "boom")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "0x00000005 5\n0x80004005 -2147467259\n", stdout)
}

func TestRunUsageOnNoInput(t *testing.T) {
	_, _, stderr := runArgs(t)
	assert.Contains(t, stderr, "usage: errwrap")
}

func TestShowHistoryDoesNotRecord(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")

	code, _, _ := runArgs(t, "--history", "--history-db", db, "7")
	require.Equal(t, exitOK, code)

	code, stdout, _ := runArgs(t, "--history-db", db, "--show-history", "5", "8")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "0x00000008 8")
	assert.Contains(t, stdout, `"7"`)

	code, stdout, _ = runArgs(t, "--history-db", db, "--show-history", "5")
	require.Equal(t, exitOK, code)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "0x00000007")
}

func TestShowHistoryWithoutDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "absent", "history.db")

	code, stdout, _ := runArgs(t, "--history-db", db, "--show-history", "3")
	require.Equal(t, exitOK, code)
	assert.Empty(t, stdout)

	_, err := os.Stat(filepath.Dir(db))
	assert.True(t, os.IsNotExist(err))
}
