package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a configuration file whenever it changes on disk.
type Watcher interface {
	// Path returns the watched file.
	Path() string

	// Run delivers every successfully reloaded configuration to onChange until ctx is done or
	// the watcher is closed. Edits that fail to load are logged at Warn and skipped.
	// onChange runs on the goroutine calling Run.
	//
	// Parameters:
	//   - ctx: cancels the watch
	//   - onChange: receives each valid configuration
	//
	// Returns:
	//   - error: ctx.Err() when cancelled, nil when the watcher was closed
	Run(ctx context.Context, onChange func(Config)) error

	// Close stops the watch and releases the underlying file-system watcher.
	Close() error
}

type watcher struct {
	path   string
	notify *fsnotify.Watcher
}

var _ Watcher = &watcher{}

// NewWatcher starts watching path. The file's directory is watched rather than the file itself
// so that editors which save by replacing the file keep being observed.
//
// Parameters:
//   - path: the configuration file to watch
//
// Returns:
//   - Watcher: the watcher, ready to Run
//   - error: error if the file-system watcher cannot be created
func NewWatcher(path string) (Watcher, error) {
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	path = filepath.Clean(path)
	if err := notify.Add(filepath.Dir(path)); err != nil {
		notify.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}
	return &watcher{path: path, notify: notify}, nil
}

func (w *watcher) Path() string {
	return w.path
}

func (w *watcher) Run(ctx context.Context, onChange func(Config)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.notify.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				common.Logger().Warn("config reload rejected", "path", w.path, "error", err)
				continue
			}
			common.Logger().Info("config reloaded", "path", w.path)
			onChange(cfg)
		case err, ok := <-w.notify.Errors:
			if !ok {
				return nil
			}
			common.Logger().Warn("config watcher error", "path", w.path, "error", err)
		}
	}
}

func (w *watcher) Close() error {
	return w.notify.Close()
}
