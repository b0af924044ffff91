package watch

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alexisbeaulieu97/tokenkit/internal/logger"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 150 * time.Millisecond

// Watcher triggers a callback whenever a single file changes.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *logger.Logger
	onChange func(context.Context) error
}

// New creates a watcher for path. onChange runs after each settled change;
// its errors are logged and do not stop the watcher.
func New(path string, debounce time.Duration, log *logger.Logger, onChange func(context.Context) error) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("watch path is empty")
	}
	if onChange == nil {
		return nil, errors.New("watch callback is nil")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Watcher{path: path, debounce: debounce, logger: log, onChange: onChange}, nil
}

// Run blocks until ctx is cancelled. The containing directory is watched
// rather than the file so editors that replace files atomically are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	filename := filepath.Base(w.path)
	log := w.logger.With("path", w.path)
	log.Info("watching token document")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				log.Debug("token document changed")
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn("file watcher error: " + err.Error())

		case <-timer.C:
			if err := w.onChange(ctx); err != nil {
				log.Error(err, "regeneration failed")
			}

		case <-ctx.Done():
			return nil
		}
	}
}
