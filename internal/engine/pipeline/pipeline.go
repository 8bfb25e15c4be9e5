package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/polyvenv/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Pipeline runs the provisioning stages against the configured collaborators.
type Pipeline struct {
	registry  ports.RuntimeRegistry
	fetcher   ports.RuntimeFetcher
	probe     ports.RuntimeProbe
	manager   ports.EnvironmentManager
	installer ports.PackageInstaller
	reader    ports.LockReader
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new Pipeline.
func New(
	registry ports.RuntimeRegistry,
	fetcher ports.RuntimeFetcher,
	probe ports.RuntimeProbe,
	manager ports.EnvironmentManager,
	installer ports.PackageInstaller,
	reader ports.LockReader,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		registry:  registry,
		fetcher:   fetcher,
		probe:     probe,
		manager:   manager,
		installer: installer,
		reader:    reader,
		telemetry: telemetry,
		logger:    logger,
	}
}

// WithTelemetry returns a copy of the pipeline recording its stages to t.
func (p *Pipeline) WithTelemetry(t ports.Telemetry) *Pipeline {
	c := *p
	c.telemetry = t
	return &c
}

// Run executes every stage in order. Nothing is emitted unless all stages succeed.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Activation, error) {
	enumerated, err := p.Enumerate(ctx, req)
	if err != nil {
		return nil, err
	}
	isolated, err := p.Isolate(ctx, enumerated)
	if err != nil {
		return nil, err
	}
	bound, err := p.Bind(ctx, isolated)
	if err != nil {
		return nil, err
	}
	synced, err := p.Synchronize(ctx, bound)
	if err != nil {
		return nil, err
	}
	return p.Activate(ctx, synced)
}

// Enumerate realizes the declared runtimes that need it and lists them.
func (p *Pipeline) Enumerate(ctx context.Context, req Request) (en Enumerated, err error) {
	if err := checkCancelled(ctx, domain.StageEnumerate); err != nil {
		return Enumerated{}, err
	}
	cfg := req.Config

	ctx, vertex := p.telemetry.Record(ctx, "enumerate runtimes")
	defer func() { vertex.Complete(err) }()

	sources, err := p.realize(ctx, cfg)
	if err != nil {
		return Enumerated{}, err
	}

	runtimes, err := p.registry.ListAvailable(ctx, sources)
	if err != nil {
		return Enumerated{}, err
	}

	primary, others, err := runtimes.Split(cfg.Primary)
	if err != nil {
		return Enumerated{}, err
	}

	for _, r := range runtimes {
		vertex.Log(domain.LogLevelInfo, r.String())
	}

	return Enumerated{
		Request:  req,
		Runtimes: runtimes,
		Primary:  primary,
		Others:   others,
		State:    domain.NewEnvironmentState(req.Environ, cfg.Isolation.Pinned...),
	}, nil
}

// realize turns nix sources into local prefixes concurrently. Local sources pass through unchanged.
// Sources sharing an attribute are realized by one build.
func (p *Pipeline) realize(ctx context.Context, cfg *domain.Config) ([]domain.RuntimeSource, error) {
	cacheDir := filepath.Join(cfg.Root, domain.DefaultRuntimeCachePath())
	sources := slices.Clone(cfg.Runtimes)

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range cfg.Runtimes {
		if !src.IsNix() {
			continue
		}
		g.Go(func() error {
			root, err := p.fetcher.Realize(gctx, cacheDir, src)
			if err != nil {
				return err
			}
			sources[i].Root = root
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}

// Isolate prepares the state for each non-primary runtime and then for the primary.
// With verification enabled, every runtime is invoked under its prepared state and must
// report its declared version. The returned state is prepared for the primary.
func (p *Pipeline) Isolate(ctx context.Context, en Enumerated) (Isolated, error) {
	if err := checkCancelled(ctx, domain.StageIsolate); err != nil {
		return Isolated{}, err
	}

	isolator := NewIsolator(en.Request.Config.Isolation.Variables)
	order := append(append(domain.RuntimeSet{}, en.Others...), en.Primary)

	for _, runtime := range order {
		if err := p.prepare(ctx, isolator, en.State, runtime, en.Request.Verify); err != nil {
			return Isolated{}, err
		}
	}

	return Isolated{Enumerated: en}, nil
}

func (p *Pipeline) prepare(
	ctx context.Context,
	isolator *Isolator,
	state *domain.EnvironmentState,
	runtime domain.RuntimeDescriptor,
	verify bool,
) (err error) {
	ctx, vertex := p.telemetry.Record(ctx, "isolate "+runtime.Version)
	defer func() { vertex.Complete(err) }()

	if err := isolator.Isolate(state, runtime); err != nil {
		return err
	}
	isolator.Bootstrap(state, runtime)

	if !verify {
		return nil
	}

	reported, err := p.probe.Probe(ctx, runtime, state.Environ())
	if err != nil {
		return err
	}
	if !domain.VersionMatches(runtime.Version, reported) {
		err := zerr.Wrap(domain.ErrRuntimeVersionMismatch,
			fmt.Sprintf("%s reports %s", runtime.ExecutablePath, strings.TrimSpace(reported)))
		err = zerr.With(err, "version", runtime.Version)
		return zerr.With(err, "reported", strings.TrimSpace(reported))
	}
	return nil
}

// Bind selects the managed environment for the primary runtime.
func (p *Pipeline) Bind(ctx context.Context, iso Isolated) (b Bound, err error) {
	if err := checkCancelled(ctx, domain.StageBind); err != nil {
		return Bound{}, err
	}
	cfg := iso.Request.Config

	rel, relErr := filepath.Rel(cfg.Root, cfg.VenvPath)
	if relErr != nil {
		rel = cfg.VenvPath
	}
	ctx, vertex := p.telemetry.Record(ctx, fmt.Sprintf("bind %s to %s", rel, iso.Primary.Version))
	defer func() { vertex.Complete(err) }()

	handle, err := NewSelector(p.manager).Select(ctx, iso.State, iso.Primary, cfg.Root, cfg.VenvPath, iso.Request.Force)
	if err != nil {
		return Bound{}, err
	}

	if handle.Rebound {
		p.logger.Warn(fmt.Sprintf("discarded %s and rebound it to %s", rel, iso.Primary.Version))
	}

	return Bound{Isolated: iso, Handle: handle}, nil
}

// Synchronize reconciles the managed environment with the lock.
func (p *Pipeline) Synchronize(ctx context.Context, b Bound) (s Synced, err error) {
	if err := checkCancelled(ctx, domain.StageSynchronize); err != nil {
		return Synced{}, err
	}
	cfg := b.Request.Config

	ctx, vertex := p.telemetry.Record(ctx, "synchronize "+filepath.Base(cfg.Lockfile))
	defer func() { vertex.Complete(err) }()

	lock, err := p.reader.Read(cfg.Lockfile)
	if err != nil {
		return Synced{}, err
	}

	installed, err := p.installer.Installed(ctx, b.Handle)
	if err != nil {
		return Synced{}, err
	}

	report, err := NewSynchronizer(p.installer, p.telemetry).
		Synchronize(ctx, b.Handle, lock, installed, b.Request.Groups, b.Request.Strict, b.State.Environ())
	if err != nil {
		return Synced{}, err
	}

	if report.Diff.Empty() {
		vertex.Cached()
	}

	return Synced{Bound: b, Lock: lock, Report: report}, nil
}

// Activate emits the activation descriptor for the synchronized environment.
func (p *Pipeline) Activate(ctx context.Context, s Synced) (*Activation, error) {
	if err := checkCancelled(ctx, domain.StageActivate); err != nil {
		return nil, err
	}

	emitter := NewEmitter(domain.ConflictSet(s.Request.Config.Isolation.Variables))
	return &Activation{
		Synced:     s,
		Descriptor: emitter.Emit(s.State, s.Handle),
	}, nil
}

// Plan computes the diff a synchronization would apply, without binding or installing anything.
// A missing environment counts as empty.
func (p *Pipeline) Plan(ctx context.Context, req Request) (domain.DependencyDiff, error) {
	cfg := req.Config

	lock, err := p.reader.Read(cfg.Lockfile)
	if err != nil {
		return domain.DependencyDiff{}, err
	}

	var installed []domain.InstalledPackage
	binding, err := p.manager.Bound(ctx, cfg.VenvPath)
	if err != nil {
		return domain.DependencyDiff{}, err
	}
	if binding != nil {
		handle := domain.ManagedEnvironmentHandle{
			ProjectRoot: cfg.Root,
			Path:        cfg.VenvPath,
			Interpreter: binding.Interpreter,
			Runtime:     binding.Version,
		}
		installed, err = p.installer.Installed(ctx, handle)
		if err != nil {
			return domain.DependencyDiff{}, err
		}
	}

	return domain.ComputeDiff(lock, installed, req.Groups, req.Strict), nil
}

func checkCancelled(ctx context.Context, stage domain.Stage) error {
	if err := ctx.Err(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCancelled, err.Error()), "stage", string(stage))
	}
	return nil
}
