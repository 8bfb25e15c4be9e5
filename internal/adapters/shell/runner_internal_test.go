package shell

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvironment(t *testing.T) {
	sysEnv := []string{"HOME=/home/dev", "SECRET=x", "PATH=/usr/bin", "BROKEN"}

	t.Run("allow-listed system variables when command has none", func(t *testing.T) {
		assert.Equal(t, []string{"HOME=/home/dev", "PATH=/usr/bin"}, resolveEnvironment(sysEnv, nil))
	})

	t.Run("command environment is complete", func(t *testing.T) {
		cmdEnv := []string{"PATH=/opt/bin"}
		assert.Equal(t, cmdEnv, resolveEnvironment(sysEnv, cmdEnv))
	})
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "tool")
	//nolint:gosec // test requires an executable file
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data"), []byte("x"), 0o600))

	got, err := lookPath("tool", []string{"PATH=/nonexistent:" + dir})
	require.NoError(t, err)
	assert.Equal(t, exe, got)

	_, err = lookPath("data", []string{"PATH=" + dir})
	require.ErrorIs(t, err, exec.ErrNotFound)

	_, err = lookPath("tool", nil)
	require.ErrorIs(t, err, exec.ErrNotFound)
}

func TestLineWriter(t *testing.T) {
	var out bytes.Buffer
	w := &lineWriter{out: &out}

	_, err := w.Write([]byte("a\r\nb"))
	require.NoError(t, err)
	assert.Equal(t, "a\n", out.String())

	_, err = w.Write([]byte("c\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, "a\nbc\n", out.String())
	assert.Equal(t, "a\nbc", w.tail())
}

func TestLineWriter_TailIsBounded(t *testing.T) {
	w := &lineWriter{out: &bytes.Buffer{}}
	for range tailLines + 5 {
		_, _ = w.Write([]byte("x\n"))
	}
	assert.Len(t, w.recent, tailLines)
}

func TestLastLines(t *testing.T) {
	assert.Equal(t, "c\nd", lastLines("a\nb\nc\nd", 2))
	assert.Equal(t, "a", lastLines("a", 2))
}
