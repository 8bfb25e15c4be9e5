// Package pipeline provisions the managed environment in ordered stages:
// enumerate, isolate, bind, synchronize, activate.
//
// Each stage accepts only the previous stage's output, so stages cannot run out of order.
// One *domain.EnvironmentState is threaded through all of them and is never shared between runs.
package pipeline

import "go.trai.ch/polyvenv/internal/core/domain"

// Request is the resolved input of a provisioning run.
type Request struct {
	// Config is the loaded project configuration.
	Config *domain.Config
	// Environ is the invoking process environment as KEY=VALUE pairs.
	Environ []string
	// Groups are the optional lock groups to synchronize.
	Groups []string
	// Strict removes installed packages that are not selected from the lock.
	Strict bool
	// Force allows discarding an environment bound to another interpreter.
	Force bool
	// Verify probes every runtime after bootstrapping it.
	Verify bool
}

// Enumerated holds the runtimes found for the request.
type Enumerated struct {
	Request  Request
	Runtimes domain.RuntimeSet
	Primary  domain.RuntimeDescriptor
	// Others are the non-primary runtimes in ascending order.
	Others domain.RuntimeSet
	State  *domain.EnvironmentState
}

// Isolated holds a state prepared for the primary runtime after every runtime was verified.
type Isolated struct {
	Enumerated
}

// Bound holds the managed environment bound to the primary runtime.
type Bound struct {
	Isolated
	Handle domain.ManagedEnvironmentHandle
}

// Synced holds the result of reconciling the managed environment with the lock.
type Synced struct {
	Bound
	Lock   *domain.Lockfile
	Report domain.SyncReport
}

// Activation is the outcome of a successful run.
type Activation struct {
	Synced
	Descriptor domain.ActivationDescriptor
}
