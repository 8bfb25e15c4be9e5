// Package runtimes finds installed interpreters and checks that they start.
package runtimes

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Registry implements ports.RuntimeRegistry by scanning installation prefixes.
type Registry struct{}

// NewRegistry creates a new Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// ListAvailable scans every source's prefix concurrently. The scan only reads the filesystem.
func (r *Registry) ListAvailable(ctx context.Context, sources []domain.RuntimeSource) (domain.RuntimeSet, error) {
	descriptors := make([]domain.RuntimeDescriptor, len(sources))

	g, groupCtx := errgroup.WithContext(ctx)
	for i, source := range sources {
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			descriptor, err := scan(source)
			if err != nil {
				return err
			}
			descriptors[i] = descriptor
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return domain.NewRuntimeSet(descriptors...), nil
}

func scan(source domain.RuntimeSource) (domain.RuntimeDescriptor, error) {
	if source.Root == "" {
		err := zerr.Wrap(domain.ErrRuntimeNotFound, "runtime "+source.Version+" has no installation root")
		return domain.RuntimeDescriptor{}, zerr.With(err, "version", source.Version)
	}

	root, err := filepath.Abs(source.Root)
	if err != nil {
		return domain.RuntimeDescriptor{}, zerr.With(zerr.Wrap(err, "failed to resolve runtime root"), "root", source.Root)
	}

	executable, ok := findInterpreter(root, source.Version)
	if !ok {
		err := zerr.Wrap(domain.ErrRuntimeNotFound, "runtime "+source.Version+" is not installed")
		err = zerr.With(err, "version", source.Version)
		return domain.RuntimeDescriptor{}, zerr.With(err, "root", root)
	}

	return domain.RuntimeDescriptor{
		Version:        source.Version,
		ExecutablePath: executable,
		SysconfigTag:   sysconfigTag(root, source.Version),
		Root:           root,
	}, nil
}

// interpreterCandidates lists the executables tried under <root>/bin, most specific first.
func interpreterCandidates(version string) []string {
	return slices.Compact([]string{
		"python" + version,
		"python" + domain.MajorMinor(version),
		"python3",
		"python",
	})
}

// findInterpreter returns the first executable candidate with symlinks resolved, so that it
// compares equal to the interpreter recorded in pyvenv.cfg.
func findInterpreter(root, version string) (string, bool) {
	for _, name := range interpreterCandidates(version) {
		candidate := filepath.Join(root, "bin", name)
		info, err := os.Stat(candidate)
		if err != nil {
			continue
		}
		if !info.Mode().IsRegular() || info.Mode()&0o111 == 0 {
			continue
		}
		if resolved, err := filepath.EvalSymlinks(candidate); err == nil {
			return resolved, true
		}
		return candidate, true
	}
	return "", false
}

// sysconfigTag reads the tag of the first _sysconfigdata_<tag>.py under lib/python<X.Y>.
// Runtimes without such a module have no tag.
func sysconfigTag(root, version string) string {
	pattern := filepath.Join(root, "lib", "python"+domain.MajorMinor(version), domain.SysconfigDataPrefix+"*.py")
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return ""
	}
	slices.Sort(matches)

	name := strings.TrimSuffix(filepath.Base(matches[0]), ".py")
	return strings.TrimPrefix(name, domain.SysconfigDataPrefix)
}
