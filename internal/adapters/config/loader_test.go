package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/polyvenv/internal/adapters/config"
	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/polyvenv/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), domain.PrivateFilePerm))
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	return config.NewLoader(mockLogger), mockLogger
}

func TestLoader_Load_Full(t *testing.T) {
	loader, _ := newLoader(t)
	rootDir := t.TempDir()

	createFile(t, rootDir, domain.ConfigFileName, `
version: "1"
primary: "3.12"
runtimes:
  "3.12": nix:python312
  "3.11": /opt/python/3.11
  "3.10": runtimes/3.10
venv: env
lockfile: polyvenv.lock.yaml
groups: [docs, dev, dev]
strict: true
verify: false
isolation:
  variables: [EXTRA_VAR]
  pinned: [PYTHONPATH]
`)

	cfg, err := loader.Load(rootDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(rootDir, domain.ConfigFileName), cfg.Path)
	assert.Equal(t, rootDir, cfg.Root)
	assert.Equal(t, "3.12", cfg.Primary)
	assert.Equal(t, []domain.RuntimeSource{
		{Version: "3.10", Root: filepath.Join(rootDir, "runtimes/3.10")},
		{Version: "3.11", Root: "/opt/python/3.11"},
		{Version: "3.12", NixAttr: "python312"},
	}, cfg.Runtimes)
	assert.Equal(t, filepath.Join(rootDir, "env"), cfg.VenvPath)
	assert.Equal(t, filepath.Join(rootDir, "polyvenv.lock.yaml"), cfg.Lockfile)
	assert.Equal(t, []string{"dev", "docs"}, cfg.Groups)
	assert.True(t, cfg.Strict)
	assert.False(t, cfg.Verify)
	assert.Equal(t, []string{"EXTRA_VAR"}, cfg.Isolation.Variables)
	assert.Equal(t, []string{"PYTHONPATH"}, cfg.Isolation.Pinned)
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader, _ := newLoader(t)
	rootDir := t.TempDir()

	createFile(t, rootDir, domain.ConfigFileName, `
primary: "3.11"
runtimes:
  "3.11": /opt/python/3.11
`)

	cfg, err := loader.Load(rootDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(rootDir, domain.DefaultVenvDir), cfg.VenvPath)
	assert.Equal(t, filepath.Join(rootDir, domain.DefaultLockfile), cfg.Lockfile)
	assert.True(t, cfg.Verify)
	assert.False(t, cfg.Strict)
	assert.Nil(t, cfg.Groups)
}

func TestLoader_Load_WalksUp(t *testing.T) {
	loader, _ := newLoader(t)
	rootDir := t.TempDir()

	createFile(t, rootDir, domain.ConfigFileName, `
primary: "3.12"
runtimes:
  "3.12": /opt/python/3.12
`)

	nested := filepath.Join(rootDir, "src", "pkg")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	cfg, err := loader.Load(nested)
	require.NoError(t, err)
	assert.Equal(t, rootDir, cfg.Root)
}

func TestLoader_Load_ExplicitRoot(t *testing.T) {
	loader, _ := newLoader(t)
	rootDir := t.TempDir()
	configDir := filepath.Join(rootDir, "config")
	require.NoError(t, os.MkdirAll(configDir, domain.DirPerm))

	createFile(t, configDir, domain.ConfigFileName, `
root: ..
primary: "3.12"
runtimes:
  "3.12": /opt/python/3.12
`)

	cfg, err := loader.Load(configDir)
	require.NoError(t, err)
	assert.Equal(t, rootDir, cfg.Root)
	assert.Equal(t, filepath.Join(rootDir, domain.DefaultVenvDir), cfg.VenvPath)
}

func TestLoader_Load_DefaultPrimaryWarns(t *testing.T) {
	loader, mockLogger := newLoader(t)
	mockLogger.EXPECT().Warn("no primary runtime configured, using 3.12").Times(1)

	rootDir := t.TempDir()
	createFile(t, rootDir, domain.ConfigFileName, `
runtimes:
  "3.12": /opt/python/3.12
  "3.9": /opt/python/3.9
`)

	cfg, err := loader.Load(rootDir)
	require.NoError(t, err)
	assert.Equal(t, "3.12", cfg.Primary)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		wantKey string
		wantVal any
	}{
		{
			name:    "malformed yaml",
			content: "runtimes: [",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "unsupported version",
			content: "version: \"2\"\nruntimes:\n  \"3.12\": /opt\n",
			wantErr: domain.ErrUnsupportedConfigVersion,
			wantKey: "version",
			wantVal: "2",
		},
		{
			name:    "no runtimes",
			content: "primary: \"3.12\"\n",
			wantErr: domain.ErrNoRuntimesDeclared,
		},
		{
			name:    "primary not declared",
			content: "primary: \"3.13\"\nruntimes:\n  \"3.12\": /opt\n",
			wantErr: domain.ErrPrimaryNotDeclared,
			wantKey: "primary",
			wantVal: "3.13",
		},
		{
			name:    "invalid version",
			content: "primary: latest\nruntimes:\n  latest: /opt\n",
			wantErr: domain.ErrInvalidRuntimeVersion,
			wantKey: "version",
			wantVal: "latest",
		},
		{
			name:    "empty root",
			content: "primary: \"3.12\"\nruntimes:\n  \"3.12\": \"\"\n",
			wantErr: domain.ErrRuntimeNotFound,
			wantKey: "version",
			wantVal: "3.12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t)
			rootDir := t.TempDir()
			createFile(t, rootDir, domain.ConfigFileName, tt.content)

			_, err := loader.Load(rootDir)
			require.Error(t, err)

			assert.ErrorIs(t, err, tt.wantErr)

			if tt.wantKey != "" {
				var zErr *zerr.Error
				require.ErrorAs(t, err, &zErr)
				assert.Equal(t, tt.wantVal, zErr.Metadata()[tt.wantKey])
			}
		})
	}
}

func TestLoader_Load_MalformedYAMLKeepsSentinel(t *testing.T) {
	loader, _ := newLoader(t)
	rootDir := t.TempDir()
	createFile(t, rootDir, domain.ConfigFileName, "runtimes:\n  \"3.12\": [\n")

	_, err := loader.Load(rootDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
	assert.NotErrorIs(t, err, domain.ErrConfigReadFailed)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, filepath.Join(rootDir, domain.ConfigFileName), zErr.Metadata()["path"])
}

func TestLoader_Load_NotFound(t *testing.T) {
	loader, _ := newLoader(t)
	rootDir := t.TempDir()

	_, err := loader.Load(rootDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}
