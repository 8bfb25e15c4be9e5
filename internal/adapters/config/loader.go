// Package config provides the configuration loader for polyvenv.
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/polyvenv/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only configuration schema version understood by the loader.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds polyvenv.yaml in cwd or one of its parents and resolves it.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	var polyfile Polyfile
	if err := readAndUnmarshalYAML(configPath, &polyfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	return l.resolve(configPath, &polyfile)
}

func findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, ""), "cwd", cwd)
}

func (l *Loader) resolve(configPath string, polyfile *Polyfile) (*domain.Config, error) {
	if polyfile.Version != "" && polyfile.Version != SupportedVersion {
		err := zerr.With(zerr.Wrap(domain.ErrUnsupportedConfigVersion, ""), "version", polyfile.Version)
		return nil, zerr.With(err, "supported", SupportedVersion)
	}

	if len(polyfile.Runtimes) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoRuntimesDeclared, ""), "path", configPath)
	}

	root := resolveRoot(configPath, polyfile.Root)

	runtimes, err := resolveRuntimes(root, polyfile.Runtimes)
	if err != nil {
		return nil, err
	}

	primary, err := l.resolvePrimary(polyfile.Primary, runtimes)
	if err != nil {
		return nil, err
	}

	verify := true
	if polyfile.Verify != nil {
		verify = *polyfile.Verify
	}

	return &domain.Config{
		Path:     configPath,
		Root:     root,
		Primary:  primary,
		Runtimes: runtimes,
		VenvPath: resolvePath(root, polyfile.Venv, domain.DefaultVenvDir),
		Lockfile: resolvePath(root, polyfile.Lockfile, domain.DefaultLockfile),
		Groups:   canonicalizeStrings(polyfile.Groups),
		Strict:   polyfile.Strict,
		Verify:   verify,
		Isolation: domain.IsolationPolicy{
			Variables: canonicalizeStrings(polyfile.Isolation.Variables),
			Pinned:    canonicalizeStrings(polyfile.Isolation.Pinned),
		},
	}, nil
}

func resolveRuntimes(root string, declared map[string]string) ([]domain.RuntimeSource, error) {
	versions := slices.SortedFunc(maps.Keys(declared), domain.CompareVersions)

	sources := make([]domain.RuntimeSource, 0, len(versions))
	for _, version := range versions {
		if err := domain.ValidateVersion(version); err != nil {
			return nil, err
		}

		location := strings.TrimSpace(declared[version])
		if location == "" {
			err := zerr.Wrap(domain.ErrRuntimeNotFound, "runtime has no installation root")
			return nil, zerr.With(err, "version", version)
		}

		source := domain.ParseRuntimeSource(version, location)
		if !source.IsNix() {
			source.Root = resolvePath(root, source.Root, "")
		}
		sources = append(sources, source)
	}
	return sources, nil
}

// resolvePrimary defaults to the newest declared runtime when no primary is configured.
func (l *Loader) resolvePrimary(primary string, runtimes []domain.RuntimeSource) (string, error) {
	if primary == "" {
		newest := runtimes[len(runtimes)-1].Version
		l.Logger.Warn(fmt.Sprintf("no primary runtime configured, using %s", newest))
		return newest, nil
	}

	for _, source := range runtimes {
		if source.Version == primary {
			return primary, nil
		}
	}

	declared := make([]string, len(runtimes))
	for i, source := range runtimes {
		declared[i] = source.Version
	}

	err := zerr.With(zerr.Wrap(domain.ErrPrimaryNotDeclared, ""), "primary", primary)
	return "", zerr.With(err, "declared", strings.Join(declared, ", "))
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

func resolvePath(root, configured, fallback string) string {
	if configured == "" {
		configured = fallback
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Join(root, configured)
}

func canonicalizeStrings(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}

	sorted := make([]string, 0, len(strs))
	for _, s := range strs {
		if s = strings.TrimSpace(s); s != "" {
			sorted = append(sorted, s)
		}
	}
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from the working directory
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(domain.ErrConfigReadFailed, err.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(domain.ErrConfigParseFailed, parseErr.Error())
	}

	return nil
}
