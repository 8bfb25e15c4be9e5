// Package app implements the application layer for polyvenv.
package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/polyvenv/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/polyvenv/internal/core/ports"
	"go.trai.ch/polyvenv/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	pipeline     *pipeline.Pipeline
	manager      ports.EnvironmentManager
	reader       ports.LockReader
	store        ports.ActivationStore
	locker       ports.ProjectLocker
	watchers     ports.WatcherFactory
	logger       ports.Logger

	debounce time.Duration
	now      func() time.Time
	newRunID func() string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	pipe *pipeline.Pipeline,
	manager ports.EnvironmentManager,
	reader ports.LockReader,
	store ports.ActivationStore,
	locker ports.ProjectLocker,
	watchers ports.WatcherFactory,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		pipeline:     pipe,
		manager:      manager,
		reader:       reader,
		store:        store,
		locker:       locker,
		watchers:     watchers,
		logger:       log,
		debounce:     watcher.DefaultDebounceWindow,
		now:          time.Now,
		newRunID:     uuid.NewString,
	}
}

// WithTelemetry records pipeline stages to t instead of the configured recorder.
func (a *App) WithTelemetry(t ports.Telemetry) *App {
	a.pipeline = a.pipeline.WithTelemetry(t)
	return a
}

// WithClock overrides the time source and the run identifier generator.
// This is primarily used for testing.
func (a *App) WithClock(now func() time.Time, newRunID func() string) *App {
	a.now = now
	a.newRunID = newRunID
	return a
}

// WithDebounceWindow sets how long Watch waits for changes to settle.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounce = d
	return a
}

// ProvisionOptions configures a provisioning run.
type ProvisionOptions struct {
	// Groups replaces the configured groups when not empty.
	Groups []string
	// Strict removes packages outside the selection even when the configuration does not.
	Strict bool
	// Force allows discarding an environment bound to another interpreter.
	Force bool
	// NoVerify skips the runtime probes.
	NoVerify bool
	// Environ is the invoking process environment.
	Environ []string
}

func (a *App) load(cwd string) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

func request(cfg *domain.Config, opts ProvisionOptions) pipeline.Request {
	groups := cfg.Groups
	if len(opts.Groups) > 0 {
		groups = opts.Groups
	}
	return pipeline.Request{
		Config:  cfg,
		Environ: opts.Environ,
		Groups:  groups,
		Strict:  cfg.Strict || opts.Strict,
		Force:   opts.Force,
		Verify:  cfg.Verify && !opts.NoVerify,
	}
}

// Provision runs the pipeline under the project lock and persists the activation record.
// Nothing is persisted when any stage fails.
func (a *App) Provision(ctx context.Context, cwd string, opts ProvisionOptions) (*domain.ActivationRecord, error) {
	cfg, err := a.load(cwd)
	if err != nil {
		return nil, err
	}
	return a.provision(ctx, cfg, opts)
}

func (a *App) provision(ctx context.Context, cfg *domain.Config, opts ProvisionOptions) (*domain.ActivationRecord, error) {
	release, err := a.locker.Acquire(cfg.Root)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(); err != nil {
			a.logger.Warn("failed to release project lock: " + err.Error())
		}
	}()

	runID := a.newRunID()
	req := request(cfg, opts)

	a.logger.Info(fmt.Sprintf("provisioning %d runtimes", len(cfg.Runtimes)))

	activation, err := a.pipeline.Run(ctx, req)
	if err != nil {
		return nil, zerr.With(err, "run_id", runID)
	}

	record := domain.ActivationRecord{
		RunID: runID,
		ProvisionID: domain.GenerateProvisionID(
			activation.Runtimes, activation.Primary.Version, activation.Lock.Digest, req.Groups, req.Strict),
		LockDigest:  activation.Lock.Digest,
		Runtimes:    activation.Runtimes.Versions(),
		Primary:     activation.Primary.Version,
		Groups:      req.Groups,
		Strict:      req.Strict,
		Environment: activation.Handle,
		Descriptor:  activation.Descriptor,
		CreatedAt:   a.now().UTC(),
	}

	if err := a.store.Put(cfg.Root, record); err != nil {
		return nil, err
	}

	a.logger.Info(summary(activation.Report))
	return &record, nil
}

func summary(report domain.SyncReport) string {
	if report.Diff.Empty() {
		return "environment is up to date"
	}
	return fmt.Sprintf("synchronized: %d installed, %d upgraded, %d removed",
		len(report.Diff.ToInstall), len(report.Diff.ToUpgrade), len(report.Diff.ToRemove))
}

// Diff computes what a provisioning run would change in the managed environment.
func (a *App) Diff(ctx context.Context, cwd string, opts ProvisionOptions) (domain.DependencyDiff, error) {
	cfg, err := a.load(cwd)
	if err != nil {
		return domain.DependencyDiff{}, err
	}
	return a.pipeline.Plan(ctx, request(cfg, opts))
}

// RuntimeListing is the result of enumerating the configured runtimes.
type RuntimeListing struct {
	Primary  string
	Runtimes domain.RuntimeSet
}

// Runtimes enumerates the configured runtimes without touching the managed environment.
func (a *App) Runtimes(ctx context.Context, cwd string, environ []string) (*RuntimeListing, error) {
	cfg, err := a.load(cwd)
	if err != nil {
		return nil, err
	}
	enumerated, err := a.pipeline.Enumerate(ctx, pipeline.Request{Config: cfg, Environ: environ})
	if err != nil {
		return nil, err
	}
	return &RuntimeListing{Primary: cfg.Primary, Runtimes: enumerated.Runtimes}, nil
}

// Status describes the managed environment as last provisioned.
type Status struct {
	Config *domain.Config
	// Record is the last activation record, nil if the project was never provisioned.
	Record *domain.ActivationRecord
	// Binding is the current binding of the managed environment, nil if it does not exist.
	Binding *domain.Binding
	// LockDigest is the digest of the lock file as it is now.
	LockDigest string
	// Reasons explains why the environment is stale. Empty means current.
	Reasons []string
}

// Stale reports whether a provisioning run would change anything.
func (s *Status) Stale() bool {
	return len(s.Reasons) > 0
}

// Status compares the last activation record with the lock file, the configured groups and
// strict mode, and the managed environment.
func (a *App) Status(ctx context.Context, cwd string) (*Status, error) {
	cfg, err := a.load(cwd)
	if err != nil {
		return nil, err
	}

	record, err := a.store.Get(cfg.Root)
	if err != nil {
		return nil, err
	}
	binding, err := a.manager.Bound(ctx, cfg.VenvPath)
	if err != nil {
		return nil, err
	}
	lock, err := a.reader.Read(cfg.Lockfile)
	if err != nil {
		return nil, err
	}

	status := &Status{Config: cfg, Record: record, Binding: binding, LockDigest: lock.Digest}

	switch {
	case record == nil:
		status.Reasons = append(status.Reasons, "never provisioned")
	default:
		if record.LockDigest != lock.Digest {
			status.Reasons = append(status.Reasons, "lock file changed")
		}
		if record.Primary != cfg.Primary {
			status.Reasons = append(status.Reasons, "primary runtime changed")
		}
		req := request(cfg, ProvisionOptions{})
		if !sameGroups(record.Groups, req.Groups) {
			status.Reasons = append(status.Reasons, "dependency groups changed")
		}
		if record.Strict != req.Strict {
			status.Reasons = append(status.Reasons, "strict mode changed")
		}
		if binding == nil {
			status.Reasons = append(status.Reasons, "managed environment is missing")
		} else if binding.Interpreter != record.Environment.Interpreter {
			status.Reasons = append(status.Reasons, "managed environment is bound to "+binding.Interpreter)
		}
	}

	return status, nil
}

func sameGroups(a, b []string) bool {
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(slices.Compact(a), slices.Compact(b))
}

// ActivateOptions configures Activate.
type ActivateOptions struct {
	ProvisionOptions
	// Shell selects the script format.
	Shell string
	// Cached renders the last activation record instead of provisioning.
	Cached bool
}

// Activate provisions the project, or reads the last record, and renders the activation script.
func (a *App) Activate(ctx context.Context, cwd string, opts ActivateOptions) (string, error) {
	if err := pipeline.CheckShell(opts.Shell); err != nil {
		return "", err
	}

	var record *domain.ActivationRecord
	if opts.Cached {
		cfg, err := a.load(cwd)
		if err != nil {
			return "", err
		}
		record, err = a.store.Get(cfg.Root)
		if err != nil {
			return "", err
		}
		if record == nil {
			err := zerr.Wrap(domain.ErrNotProvisioned, "run polyvenv provision first")
			return "", zerr.With(err, "root", cfg.Root)
		}
	} else {
		var err error
		record, err = a.Provision(ctx, cwd, opts.ProvisionOptions)
		if err != nil {
			return "", err
		}
	}

	return pipeline.Render(record.Descriptor, opts.Shell)
}

// Watch provisions the project and provisions it again whenever the configuration or the lock
// file changes, until ctx is cancelled. Failed runs are logged and do not stop watching.
// When a run resolves a different lock file the watcher is restarted on the new paths.
func (a *App) Watch(ctx context.Context, cwd string, opts ProvisionOptions) error {
	cfg, err := a.load(cwd)
	if err != nil {
		return err
	}

	trigger := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		select {
		case trigger <- paths:
		default:
		}
	})
	defer debouncer.Stop()

	watched := watchedPaths(cfg)
	w, err := a.startWatcher(ctx, watched, debouncer)
	if err != nil {
		return err
	}

	run := func(reason string) {
		if ctx.Err() != nil {
			return
		}
		if reason != "" {
			a.logger.Info(reason)
		}
		// Configuration edits are picked up on the next run.
		current, err := a.load(cwd)
		if err != nil {
			a.logger.Error(err)
			return
		}
		if _, err := a.provision(ctx, current, opts); err != nil {
			a.logger.Error(err)
		}

		paths := watchedPaths(current)
		if slices.Equal(paths, watched) || ctx.Err() != nil {
			return
		}
		next, err := a.startWatcher(ctx, paths, debouncer)
		if err != nil {
			// Keep the previous watcher; the next change retries.
			a.logger.Error(err)
			return
		}
		if err := w.Stop(); err != nil {
			a.logger.Error(err)
		}
		w, watched = next, paths
		a.logger.Info("watching " + strings.Join(watched, ", "))
	}

	run("")
	a.logger.Info("watching " + strings.Join(watched, ", "))

	for {
		select {
		case <-ctx.Done():
			return w.Stop()
		case paths := <-trigger:
			run("changed: " + strings.Join(paths, ", "))
		}
	}
}

func watchedPaths(cfg *domain.Config) []string {
	return []string{cfg.Path, cfg.Lockfile}
}

// startWatcher starts a fresh watcher on paths and forwards its events to debouncer.
func (a *App) startWatcher(ctx context.Context, paths []string, debouncer *watcher.Debouncer) (ports.Watcher, error) {
	w, err := a.watchers()
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx, paths); err != nil {
		_ = w.Stop()
		return nil, err
	}
	events := w.Events()
	go func() {
		for event := range events {
			debouncer.Add(event.Path)
		}
	}()
	return w, nil
}

// CleanOptions configures Clean.
type CleanOptions struct {
	// Venv also discards the managed environment.
	Venv bool
}

// Clean removes the project's state directory and, optionally, the managed environment.
func (a *App) Clean(ctx context.Context, cwd string, opts CleanOptions) error {
	cfg, err := a.load(cwd)
	if err != nil {
		return err
	}

	release, err := a.locker.Acquire(cfg.Root)
	if err != nil {
		return err
	}
	defer func() { _ = release() }()

	if opts.Venv {
		a.logger.Info("removing " + cfg.VenvPath)
		if err := a.manager.Discard(ctx, cfg.VenvPath); err != nil {
			return err
		}
	}

	a.logger.Info("removing state directory")
	return a.store.Clear(cfg.Root)
}
