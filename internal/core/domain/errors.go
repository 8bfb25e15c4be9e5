package domain

import "go.trai.ch/zerr"

var (
	// ErrRuntimeNotFound is returned when a declared runtime version has no usable installation.
	ErrRuntimeNotFound = zerr.New("runtime not found")

	// ErrInvalidRuntimeVersion is returned when a runtime version is not a dotted release number.
	ErrInvalidRuntimeVersion = zerr.New("invalid runtime version")

	// ErrRuntimeVersionMismatch is returned when an interpreter reports a version other than the declared one.
	ErrRuntimeVersionMismatch = zerr.New("runtime reported an unexpected version")

	// ErrRuntimeProbeFailed is returned when an interpreter cannot be invoked to report its version.
	ErrRuntimeProbeFailed = zerr.New("failed to probe runtime")

	// ErrNoRuntimesDeclared is returned when the configuration declares no runtimes.
	ErrNoRuntimesDeclared = zerr.New("no runtimes declared")

	// ErrPrimaryNotDeclared is returned when the primary version is not among the declared runtimes.
	ErrPrimaryNotDeclared = zerr.New("primary runtime is not declared")

	// ErrIsolationViolation is returned when a conflicting variable cannot be cleared before a runtime switch.
	ErrIsolationViolation = zerr.New("isolation violation")

	// ErrBindingConflict is returned when the managed environment is bound to another interpreter
	// and rebinding was not requested.
	ErrBindingConflict = zerr.New("managed environment is bound to a different interpreter")

	// ErrNotAVirtualenv is returned when a directory exists but carries no pyvenv.cfg.
	ErrNotAVirtualenv = zerr.New("directory is not a virtual environment")

	// ErrEnvironmentBindFailed is returned when the managed environment cannot be created.
	ErrEnvironmentBindFailed = zerr.New("failed to bind managed environment")

	// ErrEnvironmentDiscardFailed is returned when the managed environment cannot be removed.
	ErrEnvironmentDiscardFailed = zerr.New("failed to discard managed environment")

	// ErrSynchronizationFailed is returned when a package operation fails mid-batch.
	ErrSynchronizationFailed = zerr.New("dependency synchronization failed")

	// ErrSynchronizationCancelled is returned when synchronization stops between operations on cancellation.
	ErrSynchronizationCancelled = zerr.New("dependency synchronization cancelled")

	// ErrCancelled is returned when provisioning is cancelled at a stage boundary.
	ErrCancelled = zerr.New("provisioning cancelled")

	// ErrPackageInstallFailed is returned when the package installer fails to install a package.
	ErrPackageInstallFailed = zerr.New("failed to install package")

	// ErrPackageRemoveFailed is returned when the package installer fails to remove a package.
	ErrPackageRemoveFailed = zerr.New("failed to remove package")

	// ErrInstalledScanFailed is returned when the installed package set cannot be read.
	ErrInstalledScanFailed = zerr.New("failed to read installed packages")

	// ErrDuplicatePackage is returned when a lock file names the same package twice.
	ErrDuplicatePackage = zerr.New("duplicate package in lock file")

	// ErrUnpinnedVersion is returned when a lock entry does not carry an exact version.
	ErrUnpinnedVersion = zerr.New("lock entry version is not pinned")

	// ErrLockfileNotFound is returned when the configured lock file does not exist.
	ErrLockfileNotFound = zerr.New("lock file not found")

	// ErrLockfileReadFailed is returned when the lock file cannot be read.
	ErrLockfileReadFailed = zerr.New("failed to read lock file")

	// ErrLockfileParseFailed is returned when the lock file cannot be parsed.
	ErrLockfileParseFailed = zerr.New("failed to parse lock file")

	// ErrUnsupportedLockfile is returned when the lock file format is not recognised.
	ErrUnsupportedLockfile = zerr.New("unsupported lock file format")

	// ErrConfigNotFound is returned when no configuration file is found walking up from the working directory.
	ErrConfigNotFound = zerr.New("could not find " + ConfigFileName)

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfigVersion is returned when the config file declares an unknown schema version.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrNixBuildFailed is returned when a runtime cannot be realized through nix.
	ErrNixBuildFailed = zerr.New("failed to realize runtime with nix")

	// ErrProjectLocked is returned when another provisioning run holds the project lock.
	ErrProjectLocked = zerr.New("project is locked by another provisioning run")

	// ErrLockAcquireFailed is returned when the project lock file cannot be opened or locked.
	ErrLockAcquireFailed = zerr.New("failed to acquire project lock")

	// ErrStoreCreateFailed is returned when the state directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create state directory")

	// ErrStoreReadFailed is returned when the activation record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read activation record")

	// ErrStoreUnmarshalFailed is returned when the activation record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal activation record")

	// ErrStoreMarshalFailed is returned when the activation record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal activation record")

	// ErrStoreWriteFailed is returned when the activation record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write activation record")

	// ErrCommandFailed is returned when an external command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrNotProvisioned is returned when a project has no activation record yet.
	ErrNotProvisioned = zerr.New("project has not been provisioned")

	// ErrUnknownShell is returned when an activation script is requested for an unsupported shell.
	ErrUnknownShell = zerr.New("unknown shell, expected 'sh', 'fish' or 'json'")
)
