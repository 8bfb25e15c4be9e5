package runtimes_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/polyvenv/internal/adapters/runtimes"
	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/zerr"
)

// installRuntime lays out a fake installation prefix with the given interpreter name.
func installRuntime(t *testing.T, version, exeName, tag string) string {
	t.Helper()
	root := t.TempDir()

	binDir := filepath.Join(root, "bin")
	require.NoError(t, os.MkdirAll(binDir, domain.DirPerm))
	//nolint:gosec // test requires an executable file
	require.NoError(t, os.WriteFile(filepath.Join(binDir, exeName), []byte("#!/bin/sh\necho "+version+"\n"), 0o700))

	if tag != "" {
		libDir := filepath.Join(root, "lib", "python"+domain.MajorMinor(version))
		require.NoError(t, os.MkdirAll(libDir, domain.DirPerm))
		require.NoError(t, os.WriteFile(filepath.Join(libDir, domain.SysconfigDataPrefix+tag+".py"), []byte("build_time_vars = {}\n"), domain.PrivateFilePerm))
	}
	return root
}

func resolved(t *testing.T, path string) string {
	t.Helper()
	real, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return real
}

func TestRegistry_ListAvailable(t *testing.T) {
	root311 := installRuntime(t, "3.11", "python3.11", "_linux_x86_64-linux-gnu")
	root312 := installRuntime(t, "3.12", "python3.12", "_linux_aarch64-linux-gnu")
	root310 := installRuntime(t, "3.10.14", "python3", "")

	registry := runtimes.NewRegistry()
	set, err := registry.ListAvailable(t.Context(), []domain.RuntimeSource{
		{Version: "3.12", Root: root312},
		{Version: "3.10.14", Root: root310},
		{Version: "3.11", Root: root311},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"3.10.14", "3.11", "3.12"}, set.Versions())

	assert.Equal(t, domain.RuntimeDescriptor{
		Version:        "3.10.14",
		ExecutablePath: resolved(t, filepath.Join(root310, "bin", "python3")),
		Root:           root310,
	}, set[0])
	assert.Equal(t, resolved(t, filepath.Join(root311, "bin", "python3.11")), set[1].ExecutablePath)
	assert.Equal(t, "_linux_x86_64-linux-gnu", set[1].SysconfigTag)
	assert.Equal(t, "_linux_aarch64-linux-gnu", set[2].SysconfigTag)
}

func TestRegistry_ListAvailable_MissingRuntime(t *testing.T) {
	root311 := installRuntime(t, "3.11", "python3.11", "")
	missing := filepath.Join(t.TempDir(), "3.10")

	registry := runtimes.NewRegistry()
	_, err := registry.ListAvailable(t.Context(), []domain.RuntimeSource{
		{Version: "3.11", Root: root311},
		{Version: "3.10", Root: missing},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRuntimeNotFound)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "3.10", zErr.Metadata()["version"])
	assert.Equal(t, missing, zErr.Metadata()["root"])
}

func TestRegistry_ListAvailable_ResolvesSymlinks(t *testing.T) {
	root := installRuntime(t, "3.12", "python3.12", "")
	require.NoError(t, os.Symlink("python3.12", filepath.Join(root, "bin", "python3")))

	set, err := runtimes.NewRegistry().ListAvailable(t.Context(), []domain.RuntimeSource{{Version: "3", Root: root}})
	require.NoError(t, err)
	assert.Equal(t, resolved(t, filepath.Join(root, "bin", "python3.12")), set[0].ExecutablePath)
}

func TestRegistry_ListAvailable_NonExecutableIgnored(t *testing.T) {
	root := t.TempDir()
	binDir := filepath.Join(root, "bin")
	require.NoError(t, os.MkdirAll(binDir, domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "python3.12"), []byte("not executable"), domain.PrivateFilePerm))

	_, err := runtimes.NewRegistry().ListAvailable(t.Context(), []domain.RuntimeSource{{Version: "3.12", Root: root}})
	assert.ErrorIs(t, err, domain.ErrRuntimeNotFound)
}

func TestRegistry_ListAvailable_UnrealizedSource(t *testing.T) {
	_, err := runtimes.NewRegistry().ListAvailable(t.Context(), []domain.RuntimeSource{{Version: "3.12", NixAttr: "python312"}})
	assert.ErrorIs(t, err, domain.ErrRuntimeNotFound)
}

func TestRegistry_ListAvailable_Empty(t *testing.T) {
	set, err := runtimes.NewRegistry().ListAvailable(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, set)
}
