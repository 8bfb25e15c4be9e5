package domain

import "path/filepath"

const (
	// StateDirName is the name of the per-project state directory.
	StateDirName = ".polyvenv"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// RuntimeCacheDirName is the name of the realized runtime cache directory.
	RuntimeCacheDirName = "runtimes"

	// ActivationFileName is the name of the persisted activation record.
	ActivationFileName = "activation.json"

	// LockFileName is the name of the advisory lock guarding provisioning runs.
	LockFileName = "lock"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "polyvenv.yaml"

	// DefaultVenvDir is the default location of the managed environment, relative to the project root.
	DefaultVenvDir = ".venv"

	// DefaultLockfile is the default lock file, relative to the project root.
	DefaultLockfile = "poetry.lock"

	// PyvenvConfigFile is the marker file every virtual environment carries.
	PyvenvConfigFile = "pyvenv.cfg"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultStatePath returns the state directory relative to the project root.
func DefaultStatePath() string {
	return StateDirName
}

// DefaultActivationPath returns the activation record path relative to the project root.
func DefaultActivationPath() string {
	return filepath.Join(StateDirName, ActivationFileName)
}

// DefaultLockPath returns the advisory lock path relative to the project root.
func DefaultLockPath() string {
	return filepath.Join(StateDirName, LockFileName)
}

// DefaultRuntimeCachePath returns the realized runtime cache path relative to the project root.
// It joins .polyvenv, cache, and runtimes.
func DefaultRuntimeCachePath() string {
	return filepath.Join(StateDirName, CacheDirName, RuntimeCacheDirName)
}
