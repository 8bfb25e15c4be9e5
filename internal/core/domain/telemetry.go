package domain

// LogLevel represents the severity of a stage log line, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Stage names the provisioning pipeline stages, in execution order.
type Stage string

const (
	// StageEnumerate lists the available runtimes.
	StageEnumerate Stage = "enumerate"
	// StageIsolate prepares and verifies every runtime.
	StageIsolate Stage = "isolate"
	// StageBind selects the managed environment.
	StageBind Stage = "bind"
	// StageSynchronize reconciles packages with the lock.
	StageSynchronize Stage = "synchronize"
	// StageActivate emits the activation descriptor.
	StageActivate Stage = "activate"
)
