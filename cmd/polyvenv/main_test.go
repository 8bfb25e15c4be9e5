package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/polyvenv/internal/adapters/telemetry"
	"go.trai.ch/polyvenv/internal/app"
)

const testConfig = `version: "1"
primary: "3.12"
runtimes:
  "3.12": ./python
`

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	originalArgs := os.Args
	t.Cleanup(func() { os.Args = originalArgs })
	os.Args = args
}

func quiet(c *app.Components) {
	c.App.WithTelemetry(telemetry.NewNoOp())
}

func TestRun_Version(t *testing.T) {
	withArgs(t, "polyvenv", "version")
	assert.Equal(t, 0, run(quiet))
}

func TestRun_MissingConfig(t *testing.T) {
	withArgs(t, "polyvenv", "-C", t.TempDir(), "status")
	assert.Equal(t, 1, run(quiet))
}

func TestRun_Clean(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "polyvenv.yaml"), []byte(testConfig), 0o600))

	stateDir := filepath.Join(tmpDir, ".polyvenv")
	require.NoError(t, os.MkdirAll(stateDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(stateDir, "activation.json"), []byte("{}"), 0o600))

	withArgs(t, "polyvenv", "-C", tmpDir, "clean")
	assert.Equal(t, 0, run(quiet))

	assert.NoDirExists(t, stateDir)
}

func TestRun_UnknownCommand(t *testing.T) {
	withArgs(t, "polyvenv", "frobnicate")
	assert.Equal(t, 1, run(quiet))
}
