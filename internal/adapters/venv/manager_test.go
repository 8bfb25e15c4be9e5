package venv_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/polyvenv/internal/adapters/venv"
	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/polyvenv/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeVenv(t *testing.T, cfg string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".venv")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "bin"), domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(path, domain.PyvenvConfigFile), []byte(cfg), domain.PrivateFilePerm))
	return path
}

func TestManager_Bound(t *testing.T) {
	tests := []struct {
		name string
		cfg  string
		want domain.Binding
	}{
		{
			name: "executable key",
			cfg: "home = /opt/python/3.12/bin\ninclude-system-site-packages = false\nversion = 3.12.4\n" +
				"executable = /opt/python/3.12/bin/python3.12\ncommand = /opt/python/3.12/bin/python3.12 -m venv /p/.venv\n",
			want: domain.Binding{Interpreter: "/opt/python/3.12/bin/python3.12", Version: "3.12.4"},
		},
		{
			name: "command fallback",
			cfg:  "home = /opt/python/3.10/bin\nversion = 3.10.14\ncommand = /opt/python/3.10/bin/python3.10 -m venv /p/.venv\n",
			want: domain.Binding{Interpreter: "/opt/python/3.10/bin/python3.10", Version: "3.10.14"},
		},
		{
			name: "home fallback with version_info",
			cfg:  "home = /usr/bin\nversion_info = 3.9.18.final.0\n",
			want: domain.Binding{Interpreter: "/usr/bin/python3", Version: "3.9.18.final.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			manager := venv.NewManager(mocks.NewMockCommandRunner(ctrl))

			binding, err := manager.Bound(t.Context(), writeVenv(t, tt.cfg))
			require.NoError(t, err)
			require.NotNil(t, binding)
			// Paths that do not exist on the test machine are kept as written.
			if _, statErr := os.Stat(tt.want.Interpreter); statErr == nil {
				tt.want.Interpreter, _ = filepath.EvalSymlinks(tt.want.Interpreter)
			}
			assert.Equal(t, tt.want, *binding)
		})
	}
}

func TestManager_Bound_Missing(t *testing.T) {
	ctrl := gomock.NewController(t)
	manager := venv.NewManager(mocks.NewMockCommandRunner(ctrl))

	binding, err := manager.Bound(t.Context(), filepath.Join(t.TempDir(), ".venv"))
	require.NoError(t, err)
	assert.Nil(t, binding)
}

func TestManager_Bound_NotAVirtualenv(t *testing.T) {
	ctrl := gomock.NewController(t)
	manager := venv.NewManager(mocks.NewMockCommandRunner(ctrl))

	dir := t.TempDir()
	_, err := manager.Bound(t.Context(), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotAVirtualenv)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, dir, zErr.Metadata()["path"])

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, domain.PrivateFilePerm))
	_, err = manager.Bound(t.Context(), file)
	assert.ErrorIs(t, err, domain.ErrNotAVirtualenv)
}

func TestManager_Bind(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	manager := venv.NewManager(runner)

	path := filepath.Join(t.TempDir(), "nested", ".venv")
	runtime := domain.RuntimeDescriptor{Version: "3.12", ExecutablePath: "/opt/python/3.12/bin/python3.12"}
	env := []string{"PATH=/usr/bin"}

	runner.EXPECT().Stream(gomock.Any(), domain.Command{
		Name: "/opt/python/3.12/bin/python3.12",
		Args: []string{"-m", "venv", path},
		Env:  env,
	}, gomock.Any()).Return(nil)

	require.NoError(t, manager.Bind(t.Context(), path, runtime, env))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestManager_Bind_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	manager := venv.NewManager(runner)

	runner.EXPECT().Stream(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(zerr.Wrap(domain.ErrCommandFailed, "exit status 1"))

	err := manager.Bind(t.Context(), filepath.Join(t.TempDir(), ".venv"), domain.RuntimeDescriptor{ExecutablePath: "/x/python"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEnvironmentBindFailed)
}

func TestManager_Discard(t *testing.T) {
	ctrl := gomock.NewController(t)
	manager := venv.NewManager(mocks.NewMockCommandRunner(ctrl))

	path := writeVenv(t, "home = /usr/bin\n")
	require.NoError(t, manager.Discard(t.Context(), path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Discarding nothing is a no-op.
	require.NoError(t, manager.Discard(t.Context(), path))
}

func TestManager_Discard_RefusesPlainDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	manager := venv.NewManager(mocks.NewMockCommandRunner(ctrl))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), domain.PrivateFilePerm))

	err := manager.Discard(t.Context(), dir)
	require.ErrorIs(t, err, domain.ErrNotAVirtualenv)
	_, statErr := os.Stat(filepath.Join(dir, "keep.txt"))
	assert.NoError(t, statErr)
}
