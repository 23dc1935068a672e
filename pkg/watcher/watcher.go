package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ritzau/graphsketch/pkg/logging"
)

// ChangeType represents the type of file change detected
type ChangeType int

const (
	// ChangeTypeWrite covers creates, writes and renames onto the file
	ChangeTypeWrite ChangeType = iota
	// ChangeTypeRemove means the file is gone
	ChangeTypeRemove
)

func (t ChangeType) String() string {
	switch t {
	case ChangeTypeWrite:
		return "write"
	case ChangeTypeRemove:
		return "remove"
	default:
		return fmt.Sprintf("ChangeType(%d)", int(t))
	}
}

// ChangeEvent represents a batch of changes to the watched file
type ChangeEvent struct {
	Type      ChangeType
	Paths     []string
	Timestamp time.Time
}

// batchWindow groups the burst of events a single save produces
const batchWindow = 100 * time.Millisecond

// FileWatcher watches one file. The parent directory is watched so that
// editors that save by renaming a temp file over the original are seen.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan ChangeEvent
	stop    sync.Once
}

// NewFileWatcher creates a watcher for path
func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher: watcher,
		path:    abs,
		events:  make(chan ChangeEvent, 16),
	}, nil
}

// Path returns the absolute path being watched
func (fw *FileWatcher) Path() string {
	return fw.path
}

// Start begins watching; events stop when ctx is cancelled
func (fw *FileWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(fw.path)
	if err := fw.watcher.Add(dir); err != nil {
		fw.watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	logging.Info("Watching config file", "path", fw.path)
	go fw.processEvents(ctx)
	return nil
}

// classify maps an fsnotify event on the watched file to a change type
func classify(op fsnotify.Op) (ChangeType, bool) {
	switch {
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return ChangeTypeRemove, true
	case op.Has(fsnotify.Create), op.Has(fsnotify.Write):
		return ChangeTypeWrite, true
	default:
		return 0, false
	}
}

func (fw *FileWatcher) processEvents(ctx context.Context) {
	defer close(fw.events)
	defer fw.Stop()

	var (
		pending  bool
		last     ChangeType
		paths    []string
		batching = time.NewTimer(batchWindow)
	)
	batching.Stop()

	flush := func() {
		if !pending {
			return
		}
		select {
		case fw.events <- ChangeEvent{Type: last, Paths: paths, Timestamp: time.Now()}:
		case <-ctx.Done():
		}
		pending, paths = false, nil
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			kind, ok := classify(event.Op)
			if !ok {
				continue
			}
			logging.Trace("Config file event", "op", event.Op.String(), "path", event.Name)

			pending, last = true, kind
			paths = append(paths, event.Name)
			batching.Reset(batchWindow)

		case <-batching.C:
			flush()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("Watcher error", "error", err)
		}
	}
}

// Events returns the channel of change events. It is closed when watching stops.
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

// Stop releases the underlying watcher
func (fw *FileWatcher) Stop() error {
	var err error
	fw.stop.Do(func() {
		err = fw.watcher.Close()
	})
	return err
}
