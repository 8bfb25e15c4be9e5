// Package lockfile reads pinned package lists from poetry.lock and polyvenv.lock.yaml.
package lockfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// NativeFileName is the lock file written by tools that do not use poetry.
const NativeFileName = "polyvenv.lock.yaml"

type format int

const (
	formatPoetry format = iota
	formatNative
)

// Reader implements ports.LockReader.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the lock file at path. The format is chosen by file name.
func (r *Reader) Read(path string) (*domain.Lockfile, error) {
	kind, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // path is the configured lock file
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, zerr.With(zerr.Wrap(domain.ErrLockfileNotFound, ""), "lockfile", path)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrLockfileReadFailed, err.Error()), "lockfile", path)
	}

	var entries []domain.LockEntry
	switch kind {
	case formatNative:
		entries, err = parseNative(data)
	default:
		entries, err = parsePoetry(data)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrLockfileParseFailed, err.Error()), "lockfile", path)
	}

	return domain.NewLockfile(path, Digest(data), entries)
}

// Digest returns the content digest recorded with activations.
func Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

func detectFormat(path string) (format, error) {
	base := filepath.Base(path)
	switch {
	case base == domain.DefaultLockfile, strings.HasSuffix(base, ".toml"):
		return formatPoetry, nil
	case strings.HasSuffix(base, ".yaml"), strings.HasSuffix(base, ".yml"):
		return formatNative, nil
	default:
		err := zerr.With(zerr.Wrap(domain.ErrUnsupportedLockfile, ""), "lockfile", path)
		return 0, zerr.With(err, "supported", domain.DefaultLockfile+", "+NativeFileName)
	}
}

func parsePoetry(data []byte) ([]domain.LockEntry, error) {
	var lock poetryLock
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, err
	}

	entries := make([]domain.LockEntry, 0, len(lock.Packages))
	for _, pkg := range lock.Packages {
		groups := pkg.Groups
		if len(groups) == 0 && pkg.Category != "" {
			groups = []string{pkg.Category}
		}
		entries = append(entries, domain.LockEntry{
			Name:    pkg.Name,
			Version: pkg.Version,
			Groups:  canonicalGroups(groups),
		})
	}
	return entries, nil
}

func parseNative(data []byte) ([]domain.LockEntry, error) {
	var lock nativeLock
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return nil, err
	}

	entries := make([]domain.LockEntry, 0, len(lock.Packages))
	for _, pkg := range lock.Packages {
		entries = append(entries, domain.LockEntry{
			Name:    pkg.Name,
			Version: pkg.Version,
			Groups:  canonicalGroups(pkg.Groups),
		})
	}
	return entries, nil
}

// canonicalGroups drops the base group when it is the only one, so base entries carry no groups.
func canonicalGroups(groups []string) []string {
	if len(groups) == 0 {
		return nil
	}
	sorted := slices.Clone(groups)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	if len(sorted) == 1 && sorted[0] == domain.BaseGroup {
		return nil
	}
	return sorted
}
