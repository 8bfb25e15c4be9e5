// Package watcher re-triggers provisioning when the project's inputs change on disk.
package watcher

import (
	"context"
	"iter"
	"path/filepath"
	"sync"
	"unique"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/polyvenv/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher implements ports.Watcher using fsnotify.
// Files are watched through their parent directories so that editors replacing a file on save
// keep being observed.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	files     map[unique.Handle[string]]struct{}
	events    chan ports.WatchEvent
	stopOnce  sync.Once
}

// NewWatcher creates a new file watcher.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file watcher")
	}
	return &Watcher{
		fsWatcher: watcher,
		logger:    logger,
		files:     make(map[unique.Handle[string]]struct{}),
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start begins watching the given files.
func (w *Watcher) Start(ctx context.Context, files []string) error {
	dirs := make(map[string]struct{}, len(files))
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve watched file"), "path", file)
		}
		w.files[unique.Make(abs)] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to watch directory"), "path", dir)
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.fsWatcher.Close()
	})
	return err
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if _, watched := w.files[unique.Make(filepath.Clean(event.Name))]; !watched {
				continue
			}

			watchEvent, ok := convertEvent(event)
			if !ok {
				continue
			}

			select {
			case w.events <- watchEvent:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher: " + err.Error())
		}
	}
}

// convertEvent maps an fsnotify event to a ports.WatchEvent. Chmod-only events are dropped.
func convertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	path := filepath.Clean(event.Name)

	switch {
	case event.Op.Has(fsnotify.Write):
		return ports.WatchEvent{Path: path, Operation: ports.OpWrite}, true
	case event.Op.Has(fsnotify.Create):
		return ports.WatchEvent{Path: path, Operation: ports.OpCreate}, true
	case event.Op.Has(fsnotify.Remove):
		return ports.WatchEvent{Path: path, Operation: ports.OpRemove}, true
	case event.Op.Has(fsnotify.Rename):
		return ports.WatchEvent{Path: path, Operation: ports.OpRename}, true
	default:
		return ports.WatchEvent{}, false
	}
}
