package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/GravityPDF/gravity-pdf-images/internal/imageinfo"
	"github.com/GravityPDF/gravity-pdf-images/internal/queue"
	"github.com/GravityPDF/gravity-pdf-images/internal/storage"
)

// DefaultDebounce is how long a file must stay quiet before it is queued.
const DefaultDebounce = 500 * time.Millisecond

// Enqueuer accepts resize jobs.
type Enqueuer interface {
	Enqueue(ctx context.Context, jobs ...queue.Job) (int, error)
}

// Watcher monitors the upload directory and queues a resize job for every
// new original image.
type Watcher struct {
	root     string
	queue    Enqueuer
	onQueued func()
	debounce time.Duration
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*time.Timer
	wg      sync.WaitGroup
	done    chan struct{}
}

// NewWatcher creates a new upload watcher. onQueued, when set, runs after
// jobs were added (typically Worker.TriggerSignal).
func NewWatcher(root string, q Enqueuer, onQueued func(), logger zerolog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		root:     root,
		queue:    q,
		onQueued: onQueued,
		debounce: DefaultDebounce,
		logger:   logger.With().Str("component", "watcher").Logger(),
		watcher:  fsWatcher,
		pending:  map[string]*time.Timer{},
		done:     make(chan struct{}),
	}, nil
}

// SetDebounce overrides DefaultDebounce. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start watches root and every directory below it.
func (w *Watcher) Start(ctx context.Context) error {
	if err := storage.EnsureDir(w.root); err != nil {
		return fmt.Errorf("ensure upload dir: %w", err)
	}
	if err := w.addTree(w.root); err != nil {
		return err
	}
	w.logger.Info().Str("dir", w.root).Msg("watching uploads")

	w.wg.Add(1)
	go w.processEvents(ctx)
	return nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch folder %s: %w", path, err)
		}
		return nil
	})
}

// processEvents handles fsnotify events until Stop or ctx cancellation.
func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Error().Err(err).Str("dir", event.Name).Msg("failed to watch new folder")
			}
			w.queueTree(ctx, event.Name)
			return
		}
	}

	if !Wanted(event.Name) {
		return
	}
	w.schedule(ctx, event.Name)
}

// queueTree schedules files that landed in a directory before it was watched.
func (w *Watcher) queueTree(ctx context.Context, dir string) {
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && Wanted(path) {
			w.schedule(ctx, path)
		}
		return nil
	})
}

// schedule debounces path: the job is queued once no event arrived for it
// during the debounce window.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, exists := w.pending[path]; exists {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.enqueue(ctx, path)
	})
}

func (w *Watcher) enqueue(ctx context.Context, path string) {
	if ctx.Err() != nil || !storage.IsFile(path) {
		return
	}
	n, err := w.queue.Enqueue(ctx, queue.Job{ID: imageinfo.JobID(path), Path: path})
	if err != nil {
		w.logger.Error().Err(err).Str("image", path).Msg("failed to queue resize job")
		return
	}
	if n > 0 {
		w.logger.Debug().Str("image", path).Msg("queued resize job")
		if w.onQueued != nil {
			w.onQueued()
		}
	}
}

// Wanted reports whether path is an original upload that should be resized.
func Wanted(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return imageinfo.IsImageFile(name) && !imageinfo.IsResizedName(name)
}

// Stop stops the watcher and drops pending debounced events.
func (w *Watcher) Stop() error {
	close(w.done)
	w.mu.Lock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
