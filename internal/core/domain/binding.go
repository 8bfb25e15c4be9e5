package domain

import "path/filepath"

// VirtualEnvVar names the active virtual environment.
const VirtualEnvVar = "VIRTUAL_ENV"

// ManagedEnvironmentHandle identifies the managed environment bound to the primary runtime.
type ManagedEnvironmentHandle struct {
	// ProjectRoot is the directory the environment belongs to.
	ProjectRoot string `json:"projectRoot"`
	// Path is the environment directory.
	Path string `json:"path"`
	// Interpreter is the runtime executable the environment is bound to.
	Interpreter string `json:"interpreter"`
	// Runtime is the version of the bound runtime.
	Runtime string `json:"runtime"`
	// Rebound is set when the environment was discarded and recreated during this run.
	Rebound bool `json:"rebound"`
}

// BinDir returns the directory holding the environment's executables.
func (h ManagedEnvironmentHandle) BinDir() string {
	return filepath.Join(h.Path, "bin")
}

// Python returns the environment's interpreter entry point.
func (h ManagedEnvironmentHandle) Python() string {
	return filepath.Join(h.BinDir(), "python")
}

// Binding is what the environment manager reports about an existing environment.
type Binding struct {
	// Interpreter is the executable recorded in pyvenv.cfg.
	Interpreter string
	// Version is the interpreter version recorded in pyvenv.cfg, if any.
	Version string
}
