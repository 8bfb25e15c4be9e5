// Package nix realizes runtimes from nixpkgs into the Nix store.
package nix

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/polyvenv/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// DefaultFlake is the flake used for bare attribute names such as "python312".
const DefaultFlake = "nixpkgs"

// Fetcher implements ports.RuntimeFetcher using the Nix CLI.
type Fetcher struct {
	runner ports.CommandRunner
	logger ports.Logger

	requestGroup singleflight.Group
}

// NewFetcher creates a new Fetcher.
func NewFetcher(runner ports.CommandRunner, logger ports.Logger) *Fetcher {
	return &Fetcher{runner: runner, logger: logger}
}

// Realize builds the source's installable and returns its store path.
// Local sources are returned unchanged.
func (f *Fetcher) Realize(ctx context.Context, cacheDir string, source domain.RuntimeSource) (string, error) {
	if !source.IsNix() {
		return source.Root, nil
	}

	installable := Installable(source.NixAttr)

	// Concurrent realizations of one installable share a single nix build.
	result, err, _ := f.requestGroup.Do(installable, func() (any, error) {
		cachePath := filepath.Join(cacheDir, cacheFileName(installable))
		if entry, err := loadCacheEntry(cachePath); err == nil && storePathExists(entry.StorePath) {
			return entry.StorePath, nil
		}

		storePath, err := f.build(ctx, installable, source.Version)
		if err != nil {
			return "", err
		}

		if err := saveCacheEntry(cachePath, cacheEntry{
			Installable: installable,
			StorePath:   storePath,
			Timestamp:   time.Now().UTC(),
		}); err != nil {
			f.logger.Warn("failed to cache store path of " + installable + ": " + err.Error())
		}

		return storePath, nil
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

func (f *Fetcher) build(ctx context.Context, installable, version string) (string, error) {
	output, err := f.runner.Output(ctx, domain.Command{
		Name: "nix",
		Args: []string{"build", "--json", "--no-link", installable},
	})
	if err != nil {
		nixErr := zerr.Wrap(domain.ErrNixBuildFailed, err.Error())
		nixErr = zerr.With(nixErr, "installable", installable)
		nixErr = zerr.With(nixErr, "version", version)

		var zErr *zerr.Error
		if errors.As(err, &zErr) {
			if stderr, ok := zErr.Metadata()["output"]; ok {
				nixErr = zerr.With(nixErr, "stderr", stderr)
			}
		}
		return "", nixErr
	}

	return parseBuildResults(output, installable)
}

// Installable turns a configured attribute into a flake installable.
// Attributes that already name a flake ("github:NixOS/nixpkgs/<rev>#python312") are kept.
func Installable(attr string) string {
	if strings.Contains(attr, "#") {
		return attr
	}
	return DefaultFlake + "#" + attr
}

func parseBuildResults(output []byte, installable string) (string, error) {
	var results buildResults
	if err := json.Unmarshal(output, &results); err != nil {
		parseErr := zerr.Wrap(err, "failed to parse nix build JSON output")
		return "", zerr.With(parseErr, "installable", installable)
	}

	if len(results) == 0 {
		emptyErr := zerr.With(zerr.Wrap(domain.ErrNixBuildFailed, ""), "installable", installable)
		return "", zerr.With(emptyErr, "reason", "empty build results from nix build")
	}

	storePath, ok := results[0].Outputs["out"]
	if !ok || storePath == "" {
		outErr := zerr.With(zerr.Wrap(domain.ErrNixBuildFailed, ""), "installable", installable)
		return "", zerr.With(outErr, "reason", "no 'out' output found in build results")
	}

	return storePath, nil
}

func cacheFileName(installable string) string {
	return strconv.FormatUint(xxhash.Sum64String(installable), 16) + ".json"
}

func storePathExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func loadCacheEntry(path string) (cacheEntry, error) {
	//nolint:gosec // path is built from the project's cache directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cacheEntry{}, err
		}
		return cacheEntry{}, zerr.Wrap(err, "failed to read cache file")
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return cacheEntry{}, zerr.Wrap(err, "failed to unmarshal cache")
	}
	return entry, nil
}

func saveCacheEntry(path string, entry cacheEntry) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache entry")
	}

	tmpFile, err := os.CreateTemp(dir, "runtime-cache-*.json")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp cache file")
	}
	tmpName := tmpFile.Name()
	defer func() {
		if _, err := os.Stat(tmpName); err == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, "failed to write cache file")
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, "failed to close cache file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return zerr.Wrap(err, "failed to rename cache file")
	}
	return nil
}
