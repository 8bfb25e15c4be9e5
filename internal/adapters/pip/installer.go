// Package pip reads and changes the packages of the managed environment.
package pip

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/polyvenv/internal/core/ports"
	"go.trai.ch/zerr"
)

// metadataFile is the core metadata file of an installed distribution.
const metadataFile = "METADATA"

// Installer implements ports.PackageInstaller with the environment's own pip.
type Installer struct {
	runner ports.CommandRunner
}

// NewInstaller creates a new Installer.
func NewInstaller(runner ports.CommandRunner) *Installer {
	return &Installer{runner: runner}
}

// Installed lists the distributions under lib/python*/site-packages of the environment.
func (i *Installer) Installed(_ context.Context, env domain.ManagedEnvironmentHandle) ([]domain.InstalledPackage, error) {
	pattern := filepath.Join(env.Path, "lib", "python*", "site-packages", "*.dist-info", metadataFile)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInstalledScanFailed, err.Error()), "path", env.Path)
	}

	packages := make([]domain.InstalledPackage, 0, len(matches))
	seen := make(map[domain.InternedString]struct{}, len(matches))

	for _, path := range matches {
		pkg, err := readMetadata(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrInstalledScanFailed, err.Error()), "path", path)
		}
		if pkg.Name == "" {
			continue
		}
		if _, dup := seen[pkg.Key()]; dup {
			continue
		}
		seen[pkg.Key()] = struct{}{}
		packages = append(packages, pkg)
	}

	slices.SortFunc(packages, func(a, b domain.InstalledPackage) int {
		return strings.Compare(domain.NormalizeName(a.Name), domain.NormalizeName(b.Name))
	})
	return packages, nil
}

// Install installs exactly name==version without resolving dependencies.
func (i *Installer) Install(
	ctx context.Context,
	env domain.ManagedEnvironmentHandle,
	entry domain.LockEntry,
	environ []string,
) error {
	err := i.pip(ctx, env, environ,
		"install", "--no-deps", "--no-input", "--disable-pip-version-check", entry.Name+"=="+entry.Version)
	if err != nil {
		installErr := zerr.Wrap(domain.ErrPackageInstallFailed, err.Error())
		installErr = zerr.With(installErr, "package", entry.Name)
		return zerr.With(installErr, "version", entry.Version)
	}
	return nil
}

// Remove uninstalls the named distribution.
func (i *Installer) Remove(ctx context.Context, env domain.ManagedEnvironmentHandle, name string, environ []string) error {
	if err := i.pip(ctx, env, environ, "uninstall", "--yes", "--disable-pip-version-check", name); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrPackageRemoveFailed, err.Error()), "package", name)
	}
	return nil
}

func (i *Installer) pip(ctx context.Context, env domain.ManagedEnvironmentHandle, environ []string, args ...string) error {
	var out io.Writer = io.Discard
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		out = vertex.Stdout()
	}

	return i.runner.Stream(ctx, domain.Command{
		Name: env.Python(),
		Args: append([]string{"-m", "pip"}, args...),
		Env:  environ,
		Dir:  env.ProjectRoot,
	}, out)
}

// readMetadata reads the Name and Version headers of a METADATA file.
// Headers end at the first blank line.
func readMetadata(path string) (domain.InstalledPackage, error) {
	//nolint:gosec // path comes from a glob inside the managed environment
	f, err := os.Open(path)
	if err != nil {
		return domain.InstalledPackage{}, err
	}
	defer func() { _ = f.Close() }()

	var pkg domain.InstalledPackage
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "name":
			pkg.Name = strings.TrimSpace(value)
		case "version":
			pkg.Version = strings.TrimSpace(value)
		}
		if pkg.Name != "" && pkg.Version != "" {
			break
		}
	}
	return pkg, scanner.Err()
}
