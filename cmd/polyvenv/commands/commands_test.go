package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/polyvenv/cmd/polyvenv/commands"
	"go.trai.ch/polyvenv/internal/adapters/detector"
	"go.trai.ch/polyvenv/internal/adapters/telemetry"
	"go.trai.ch/polyvenv/internal/app"
	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/polyvenv/internal/core/ports"
	"go.trai.ch/polyvenv/internal/core/ports/mocks"
	"go.trai.ch/polyvenv/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

const root = "/work/project"

type harness struct {
	loader   *mocks.MockConfigLoader
	registry *mocks.MockRuntimeRegistry
	manager  *mocks.MockEnvironmentManager
	reader   *mocks.MockLockReader
	store    *mocks.MockActivationStore
	locker   *mocks.MockProjectLocker
	logger   *mocks.MockLogger
	cli      *commands.CLI
	stdout   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		loader:   mocks.NewMockConfigLoader(ctrl),
		registry: mocks.NewMockRuntimeRegistry(ctrl),
		manager:  mocks.NewMockEnvironmentManager(ctrl),
		reader:   mocks.NewMockLockReader(ctrl),
		store:    mocks.NewMockActivationStore(ctrl),
		locker:   mocks.NewMockProjectLocker(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		stdout:   &bytes.Buffer{},
	}

	noop := telemetry.NewNoOp()
	pipe := pipeline.New(h.registry, mocks.NewMockRuntimeFetcher(ctrl), mocks.NewMockRuntimeProbe(ctrl),
		h.manager, mocks.NewMockPackageInstaller(ctrl), h.reader, noop, h.logger)
	watchers := func() (ports.Watcher, error) { return mocks.NewMockWatcher(ctrl), nil }
	a := app.New(h.loader, pipe, h.manager, h.reader, h.store, h.locker, watchers, h.logger)

	h.cli = commands.New(app.NewComponents(a, h.logger, noop))
	h.cli.SetOutput(h.stdout, &bytes.Buffer{})
	h.cli.SetProbe(detector.Probe{
		IsTerminal: func(int) bool { return true },
		Getenv:     func(string) string { return "" },
	})
	return h
}

func (h *harness) execute(args ...string) error {
	h.cli.SetArgs(append([]string{"-C", root}, args...))
	return h.cli.Execute(context.Background())
}

func testConfig() *domain.Config {
	return &domain.Config{
		Path:     root + "/polyvenv.yaml",
		Root:     root,
		Primary:  "3.12",
		Runtimes: []domain.RuntimeSource{{Version: "3.11", Root: "/opt/3.11"}, {Version: "3.12", Root: "/opt/3.12"}},
		VenvPath: root + "/.venv",
		Lockfile: root + "/poetry.lock",
	}
}

func TestRoot_Help(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.execute("--help"))
	assert.Contains(t, h.stdout.String(), "provision")
	assert.Contains(t, h.stdout.String(), "activate")
}

func TestVersion(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.execute("version"))
	assert.Equal(t, "polyvenv version dev\n", h.stdout.String())
}

func TestActivate_CachedFish(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(root).Return(testConfig(), nil)
	h.store.EXPECT().Get(root).Return(&domain.ActivationRecord{
		Descriptor: domain.ActivationDescriptor{
			Variables: map[string]string{domain.VirtualEnvVar: root + "/.venv"},
		},
	}, nil)

	require.NoError(t, h.execute("activate", "--cached", "--shell", "fish"))
	assert.Equal(t, "set -gx VIRTUAL_ENV '/work/project/.venv'\n", h.stdout.String())
}

func TestActivate_UnknownShell(t *testing.T) {
	h := newHarness(t)

	err := h.execute("activate", "--shell", "tcsh")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownShell)
	assert.Empty(t, h.stdout.String())
}

func TestDiff(t *testing.T) {
	h := newHarness(t)
	lock, err := domain.NewLockfile(root+"/poetry.lock", "digest", []domain.LockEntry{
		{Name: "requests", Version: "2.32.3"},
		{Name: "pytest", Version: "8.3.3", Groups: []string{"dev"}},
	})
	require.NoError(t, err)

	h.loader.EXPECT().Load(root).Return(testConfig(), nil)
	h.reader.EXPECT().Read(root+"/poetry.lock").Return(lock, nil)
	h.manager.EXPECT().Bound(gomock.Any(), root+"/.venv").Return(nil, nil)

	require.NoError(t, h.execute("diff", "--group", "dev"))
	assert.Equal(t, "install requests==2.32.3\ninstall pytest==8.3.3\n", h.stdout.String())
}

func TestRuntimes(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(root).Return(testConfig(), nil)
	h.registry.EXPECT().ListAvailable(gomock.Any(), testConfig().Runtimes).Return(domain.NewRuntimeSet(
		domain.RuntimeDescriptor{Version: "3.11", ExecutablePath: "/opt/3.11/bin/python3.11"},
		domain.RuntimeDescriptor{Version: "3.12", ExecutablePath: "/opt/3.12/bin/python3.12"},
	), nil)

	require.NoError(t, h.execute("runtimes"))
	out := h.stdout.String()
	assert.Contains(t, out, "3.11")
	assert.Contains(t, out, "/opt/3.12/bin/python3.12")
}

func TestStatus_Check(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(root).Return(testConfig(), nil)
	h.store.EXPECT().Get(root).Return(nil, nil)
	h.manager.EXPECT().Bound(gomock.Any(), root+"/.venv").Return(nil, nil)
	h.reader.EXPECT().Read(root+"/poetry.lock").Return(&domain.Lockfile{Digest: "digest"}, nil)

	err := h.execute("status", "--check")
	require.Error(t, err)
	assert.True(t, commands.IsStale(err))
	assert.Contains(t, h.stdout.String(), "never provisioned")
}

func TestClean_Venv(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(root).Return(testConfig(), nil)
	h.locker.EXPECT().Acquire(root).Return(func() error { return nil }, nil)
	h.logger.EXPECT().Info(gomock.Any()).Times(2)
	h.manager.EXPECT().Discard(gomock.Any(), root+"/.venv").Return(nil)
	h.store.EXPECT().Clear(root).Return(nil)

	require.NoError(t, h.execute("clean", "--venv"))
}

func TestStatus_UpToDate(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(root).Return(testConfig(), nil)
	h.store.EXPECT().Get(root).Return(&domain.ActivationRecord{
		RunID:       "run-1",
		ProvisionID: "9f2c4a1b7d3e5f60",
		LockDigest:  "digest",
		Primary:     "3.12",
		Runtimes:    []string{"3.11", "3.12"},
		Environment: domain.ManagedEnvironmentHandle{Interpreter: "/opt/3.12/bin/python3.12"},
	}, nil)
	h.manager.EXPECT().Bound(gomock.Any(), root+"/.venv").Return(&domain.Binding{Interpreter: "/opt/3.12/bin/python3.12"}, nil)
	h.reader.EXPECT().Read(root+"/poetry.lock").Return(&domain.Lockfile{Digest: "digest"}, nil)

	require.NoError(t, h.execute("status", "--check"))
	out := h.stdout.String()
	assert.Contains(t, out, "9f2c4a1b7d3e5f60")
	assert.Contains(t, out, "up to date")
}
