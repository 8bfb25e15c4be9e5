package domain

import (
	"maps"
	"slices"
	"time"
)

// PathVar is the executable search path variable.
const PathVar = "PATH"

// ActivationDescriptor is what an invoking shell applies to enter the managed environment.
type ActivationDescriptor struct {
	// Variables are exported as-is.
	Variables map[string]string `json:"variables"`
	// Unset lists variables the shell must drop.
	Unset []string `json:"unset"`
	// Executable is the interpreter to run inside the environment.
	Executable string `json:"executable"`
}

// Names returns the exported variable names in sorted order.
func (d ActivationDescriptor) Names() []string {
	return slices.Sorted(maps.Keys(d.Variables))
}

// ActivationRecord is the activation descriptor persisted after a successful run.
type ActivationRecord struct {
	RunID       string                   `json:"runId"`
	ProvisionID string                   `json:"provisionId"`
	LockDigest  string                   `json:"lockDigest"`
	Runtimes    []string                 `json:"runtimes"`
	Primary     string                   `json:"primary"`
	Groups      []string                 `json:"groups"`
	Strict      bool                     `json:"strict"`
	Environment ManagedEnvironmentHandle `json:"environment"`
	Descriptor  ActivationDescriptor     `json:"descriptor"`
	CreatedAt   time.Time                `json:"createdAt"`
}
