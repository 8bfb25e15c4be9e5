// Package flock serializes provisioning runs with an advisory lock in the project state directory.
package flock

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sys/unix"
)

// Locker implements ports.ProjectLocker with flock(2).
type Locker struct{}

// NewLocker creates a new project locker.
func NewLocker() *Locker {
	return &Locker{}
}

// Acquire takes an exclusive, non-blocking lock on <root>/.polyvenv/lock and records the
// holder's PID in it. The lock is released by the returned function or when the process exits.
func (l *Locker) Acquire(root string) (func() error, error) {
	path := filepath.Join(root, domain.DefaultLockPath())
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrLockAcquireFailed, err.Error()), "path", path)
	}

	//nolint:gosec // path is built from the project root
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, domain.PrivateFilePerm)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrLockAcquireFailed, err.Error()), "path", path)
	}

	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		holder := readHolder(file)
		_ = file.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			wrapped := zerr.With(zerr.Wrap(domain.ErrProjectLocked, "another run holds "+path), "path", path)
			if holder > 0 {
				wrapped = zerr.With(wrapped, "pid", holder)
			}
			return nil, wrapped
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrLockAcquireFailed, err.Error()), "path", path)
	}

	// The PID is informational, a failed write does not invalidate the lock.
	if err := file.Truncate(0); err == nil {
		_, _ = file.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0)
	}

	released := false
	return func() error {
		if released {
			return nil
		}
		released = true
		_ = file.Truncate(0)
		if err := unix.Flock(int(file.Fd()), unix.LOCK_UN); err != nil {
			_ = file.Close()
			return zerr.With(zerr.Wrap(domain.ErrLockAcquireFailed, err.Error()), "path", path)
		}
		return file.Close()
	}, nil
}

func readHolder(file *os.File) int {
	buf := make([]byte, 32)
	n, _ := file.ReadAt(buf, 0)
	pid, err := strconv.Atoi(strings.TrimSpace(string(buf[:n])))
	if err != nil {
		return 0
	}
	return pid
}
