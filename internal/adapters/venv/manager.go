// Package venv manages the project's virtual environment through the interpreter's venv module.
package venv

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/polyvenv/internal/core/ports"
	"go.trai.ch/zerr"
)

// Manager implements ports.EnvironmentManager.
type Manager struct {
	runner ports.CommandRunner
}

// NewManager creates a new Manager.
func NewManager(runner ports.CommandRunner) *Manager {
	return &Manager{runner: runner}
}

// Bound reads pyvenv.cfg of the environment at path.
// It returns nil when nothing exists at path.
func (m *Manager) Bound(_ context.Context, path string) (*domain.Binding, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to inspect managed environment"), "path", path)
	}
	if !info.IsDir() {
		return nil, zerr.With(zerr.Wrap(domain.ErrNotAVirtualenv, ""), "path", path)
	}

	cfgPath := filepath.Join(path, domain.PyvenvConfigFile)
	//nolint:gosec // path is the configured environment directory
	data, err := os.ReadFile(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, zerr.With(zerr.Wrap(domain.ErrNotAVirtualenv, ""), "path", path)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read "+domain.PyvenvConfigFile), "path", path)
	}

	return parsePyvenvConfig(data), nil
}

// Bind creates the environment at path with `<interpreter> -m venv <path>`.
func (m *Manager) Bind(ctx context.Context, path string, runtime domain.RuntimeDescriptor, env []string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrEnvironmentBindFailed, err.Error()), "path", path)
	}

	var out io.Writer = io.Discard
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		out = vertex.Stdout()
	}

	err := m.runner.Stream(ctx, domain.Command{
		Name: runtime.ExecutablePath,
		Args: []string{"-m", "venv", path},
		Env:  env,
	}, out)
	if err != nil {
		bindErr := zerr.Wrap(domain.ErrEnvironmentBindFailed, err.Error())
		bindErr = zerr.With(bindErr, "path", path)
		return zerr.With(bindErr, "interpreter", runtime.ExecutablePath)
	}
	return nil
}

// Discard removes the environment at path. Directories that are not virtual environments
// are left alone.
func (m *Manager) Discard(ctx context.Context, path string) error {
	binding, err := m.Bound(ctx, path)
	if err != nil {
		return err
	}
	if binding == nil {
		return nil
	}

	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrEnvironmentDiscardFailed, err.Error()), "path", path)
	}
	return nil
}

// parsePyvenvConfig reads the `key = value` lines of pyvenv.cfg.
// Interpreters before 3.11 do not record `executable`; the binding then falls back
// to the first word of `command`, then to python3 under `home`.
func parsePyvenvConfig(data []byte) *domain.Binding {
	values := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		values[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	version := values["version"]
	if version == "" {
		version = values["version_info"]
	}

	interpreter := values["executable"]
	if interpreter == "" {
		if fields := strings.Fields(values["command"]); len(fields) > 0 {
			interpreter = fields[0]
		}
	}
	if interpreter == "" && values["home"] != "" {
		interpreter = filepath.Join(values["home"], "python3")
	}

	return &domain.Binding{
		Interpreter: canonicalPath(interpreter),
		Version:     version,
	}
}

func canonicalPath(path string) string {
	if path == "" {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}
