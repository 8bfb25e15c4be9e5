package runtimes

import (
	"context"
	"strings"

	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/polyvenv/internal/core/ports"
	"go.trai.ch/zerr"
)

// versionScript prints the interpreter's full version.
const versionScript = "import platform; print(platform.python_version())"

// Probe implements ports.RuntimeProbe by asking the interpreter for its version.
type Probe struct {
	runner ports.CommandRunner
}

// NewProbe creates a new Probe.
func NewProbe(runner ports.CommandRunner) *Probe {
	return &Probe{runner: runner}
}

// Probe starts the runtime with env and returns the version it reports.
// A runtime that starts against another runtime's sysconfig data fails here.
func (p *Probe) Probe(ctx context.Context, runtime domain.RuntimeDescriptor, env []string) (string, error) {
	output, err := p.runner.Output(ctx, domain.Command{
		Name: runtime.ExecutablePath,
		Args: []string{"-c", versionScript},
		Env:  env,
	})
	if err != nil {
		probeErr := zerr.Wrap(domain.ErrRuntimeProbeFailed, err.Error())
		probeErr = zerr.With(probeErr, "version", runtime.Version)
		return "", zerr.With(probeErr, "executable", runtime.ExecutablePath)
	}

	return strings.TrimSpace(string(output)), nil
}
