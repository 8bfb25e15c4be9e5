// Package cas stores activation records in each project's state directory.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.ActivationStore using one JSON file per project.
type Store struct {
	mu    sync.RWMutex
	cache map[string]domain.ActivationRecord
}

// NewStore creates a new ActivationStore.
func NewStore() *Store {
	return &Store{cache: make(map[string]domain.ActivationRecord)}
}

func recordPath(root string) string {
	return filepath.Join(filepath.Clean(root), domain.DefaultActivationPath())
}

// Get retrieves the activation record of the project at root.
func (s *Store) Get(root string) (*domain.ActivationRecord, error) {
	s.mu.RLock()
	if record, ok := s.cache[root]; ok {
		s.mu.RUnlock()
		return &record, nil
	}
	s.mu.RUnlock()

	path := recordPath(root)
	//nolint:gosec // path is built from the project root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, err.Error()), "path", path)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var record domain.ActivationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreUnmarshalFailed, err.Error()), "path", path)
	}

	s.mu.Lock()
	s.cache[root] = record
	s.mu.Unlock()

	return &record, nil
}

// Put writes the record atomically: a reader sees either the previous record or the new one.
func (s *Store) Put(root string, record domain.ActivationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := recordPath(root)

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(domain.ErrStoreMarshalFailed, err.Error())
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreCreateFailed, err.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, domain.ActivationFileName+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}
	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}

	s.cache[root] = record
	return nil
}

// Clear removes the project's state directory together with its caches.
func (s *Store) Clear(root string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cache, root)

	dir := filepath.Join(filepath.Clean(root), domain.DefaultStatePath())
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", dir)
	}
	return nil
}
