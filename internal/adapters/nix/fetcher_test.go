package nix_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/polyvenv/internal/adapters/nix"
	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/polyvenv/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func buildCommand(installable string) domain.Command {
	return domain.Command{Name: "nix", Args: []string{"build", "--json", "--no-link", installable}}
}

func TestInstallable(t *testing.T) {
	assert.Equal(t, "nixpkgs#python312", nix.Installable("python312"))
	assert.Equal(t, "github:NixOS/nixpkgs/abc#python311", nix.Installable("github:NixOS/nixpkgs/abc#python311"))
}

func TestFetcher_Realize_LocalSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := nix.NewFetcher(mocks.NewMockCommandRunner(ctrl), mocks.NewMockLogger(ctrl))

	root, err := fetcher.Realize(t.Context(), t.TempDir(), domain.RuntimeSource{Version: "3.11", Root: "/opt/python/3.11"})
	require.NoError(t, err)
	assert.Equal(t, "/opt/python/3.11", root)
}

func TestFetcher_Realize_BuildsAndCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	fetcher := nix.NewFetcher(runner, mocks.NewMockLogger(ctrl))

	storePath := t.TempDir()
	cacheDir := filepath.Join(t.TempDir(), "runtimes")
	source := domain.RuntimeSource{Version: "3.12", NixAttr: "python312"}

	runner.EXPECT().
		Output(gomock.Any(), buildCommand("nixpkgs#python312")).
		Return([]byte(`[{"drvPath":"/nix/store/x.drv","outputs":{"out":"`+storePath+`"}}]`), nil).
		Times(1)

	root, err := fetcher.Realize(t.Context(), cacheDir, source)
	require.NoError(t, err)
	assert.Equal(t, storePath, root)

	// The second realization is served from the cache without a build.
	root, err = fetcher.Realize(t.Context(), cacheDir, source)
	require.NoError(t, err)
	assert.Equal(t, storePath, root)
}

func TestFetcher_Realize_StaleCacheRebuilds(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	fetcher := nix.NewFetcher(runner, mocks.NewMockLogger(ctrl))

	cacheDir := t.TempDir()
	source := domain.RuntimeSource{Version: "3.12", NixAttr: "python312"}
	collected := filepath.Join(t.TempDir(), "garbage-collected")
	fresh := t.TempDir()

	gomock.InOrder(
		runner.EXPECT().Output(gomock.Any(), gomock.Any()).
			Return([]byte(`[{"outputs":{"out":"`+collected+`"}}]`), nil),
		runner.EXPECT().Output(gomock.Any(), gomock.Any()).
			Return([]byte(`[{"outputs":{"out":"`+fresh+`"}}]`), nil),
	)

	root, err := fetcher.Realize(t.Context(), cacheDir, source)
	require.NoError(t, err)
	assert.Equal(t, collected, root)

	root, err = fetcher.Realize(t.Context(), cacheDir, source)
	require.NoError(t, err)
	assert.Equal(t, fresh, root)
}

func TestFetcher_Realize_BuildFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	fetcher := nix.NewFetcher(runner, mocks.NewMockLogger(ctrl))

	runErr := zerr.With(zerr.Wrap(domain.ErrCommandFailed, "exit status 1"), "output", "error: attribute 'python399' missing")
	runner.EXPECT().Output(gomock.Any(), buildCommand("nixpkgs#python399")).Return(nil, runErr)

	_, err := fetcher.Realize(t.Context(), t.TempDir(), domain.RuntimeSource{Version: "3.99", NixAttr: "python399"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNixBuildFailed)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "nixpkgs#python399", zErr.Metadata()["installable"])
	assert.Equal(t, "error: attribute 'python399' missing", zErr.Metadata()["stderr"])
}

func TestFetcher_Realize_CacheWriteFailureWarns(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	fetcher := nix.NewFetcher(runner, mockLogger)

	storePath := t.TempDir()
	runner.EXPECT().Output(gomock.Any(), gomock.Any()).
		Return([]byte(`[{"outputs":{"out":"`+storePath+`"}}]`), nil)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	// A regular file where the cache directory should be.
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, writeFile(blocker))

	root, err := fetcher.Realize(t.Context(), filepath.Join(blocker, "runtimes"), domain.RuntimeSource{Version: "3.12", NixAttr: "python312"})
	require.NoError(t, err)
	assert.Equal(t, storePath, root)
}

func TestFetcher_Realize_ConcurrentCallersShareBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	fetcher := nix.NewFetcher(runner, mocks.NewMockLogger(ctrl))

	storePath := t.TempDir()
	cacheDir := t.TempDir()
	release := make(chan struct{})

	runner.EXPECT().Output(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.Command) ([]byte, error) {
			<-release
			return []byte(`[{"outputs":{"out":"` + storePath + `"}}]`), nil
		}).
		Times(1)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for range 2 {
		wg.Go(func() {
			_, err := fetcher.Realize(t.Context(), cacheDir, domain.RuntimeSource{Version: "3.12", NixAttr: "python312"})
			errs <- err
		})
	}
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}

func writeFile(path string) error {
	return os.WriteFile(path, []byte("x"), domain.PrivateFilePerm)
}
