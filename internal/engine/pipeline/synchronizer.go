package pipeline

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/polyvenv/internal/core/ports"
	"go.trai.ch/zerr"
)

// Synchronizer reconciles the managed environment's packages with the lock.
// It is the only writer of the environment's package index.
type Synchronizer struct {
	installer ports.PackageInstaller
	telemetry ports.Telemetry
}

// NewSynchronizer creates a synchronizer applying operations through the installer.
func NewSynchronizer(installer ports.PackageInstaller, telemetry ports.Telemetry) *Synchronizer {
	return &Synchronizer{installer: installer, telemetry: telemetry}
}

// Synchronize computes the diff between the lock and the installed set and applies it:
// removals first, then upgrades and installs in lock order. An upgrade removes the installed
// version before installing the locked one.
//
// The first failing operation aborts the batch with domain.ErrSynchronizationFailed.
// Cancellation is honored between operations with domain.ErrSynchronizationCancelled; an
// operation already running completes. In both cases the report lists what was applied and
// what is pending. Nothing is rolled back; the next run recomputes the diff and resumes.
func (s *Synchronizer) Synchronize(
	ctx context.Context,
	handle domain.ManagedEnvironmentHandle,
	lock *domain.Lockfile,
	installed []domain.InstalledPackage,
	groups []string,
	strict bool,
	environ []string,
) (domain.SyncReport, error) {
	diff := domain.ComputeDiff(lock, installed, groups, strict)
	ops := diff.Operations()

	report := domain.SyncReport{
		Diff:    diff,
		Applied: make([]domain.Operation, 0, len(ops)),
		Pending: []domain.Operation{},
	}

	entries := make(map[string]domain.LockEntry, len(diff.ToInstall)+len(diff.ToUpgrade))
	for _, e := range diff.ToInstall {
		entries[e.Name] = e
	}
	for _, u := range diff.ToUpgrade {
		entries[u.To.Name] = u.To
	}

	for i, op := range ops {
		if ctx.Err() != nil {
			report.Pending = slices.Clone(ops[i:])
			err := zerr.Wrap(domain.ErrSynchronizationCancelled, fmt.Sprintf("stopped before %s", op))
			return report, withProgress(err, report)
		}

		opCtx, vertex := s.telemetry.Record(ctx, op.String())
		err := s.apply(context.WithoutCancel(opCtx), handle, op, entries[op.Name], environ)
		vertex.Complete(err)
		if err != nil {
			report.Pending = slices.Clone(ops[i:])
			wrapped := zerr.Wrap(domain.ErrSynchronizationFailed, fmt.Sprintf("%s: %s", op, err.Error()))
			wrapped = zerr.With(wrapped, "package", op.Name)
			wrapped = zerr.With(wrapped, "operation", string(op.Kind))
			return report, withProgress(wrapped, report)
		}
		report.Applied = append(report.Applied, op)
	}

	return report, nil
}

func (s *Synchronizer) apply(
	ctx context.Context,
	handle domain.ManagedEnvironmentHandle,
	op domain.Operation,
	entry domain.LockEntry,
	environ []string,
) error {
	switch op.Kind {
	case domain.OpRemove:
		return s.installer.Remove(ctx, handle, op.Name, environ)
	case domain.OpInstall:
		return s.installer.Install(ctx, handle, entry, environ)
	case domain.OpUpgrade:
		if domain.IsToolingPackage(op.Name) {
			// Tooling is replaced in place so pip stays importable.
			return s.installer.Install(ctx, handle, entry, environ)
		}
		if err := s.installer.Remove(ctx, handle, op.Name, environ); err != nil {
			return err
		}
		return s.installer.Install(ctx, handle, entry, environ)
	default:
		return zerr.With(zerr.New("unknown operation"), "operation", string(op.Kind))
	}
}

func withProgress(err error, report domain.SyncReport) error {
	err = zerr.With(err, "applied", strings.Join(domain.OperationNames(report.Applied), ", "))
	return zerr.With(err, "pending", strings.Join(domain.OperationNames(report.Pending), ", "))
}
