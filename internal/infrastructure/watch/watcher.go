package watch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeType classifies a filesystem change.
type ChangeType string

const (
	ChangeCreate ChangeType = "create"
	ChangeWrite  ChangeType = "write"
	ChangeRemove ChangeType = "remove"
	ChangeRename ChangeType = "rename"
)

// Event is a debounced change to a workspace document.
type Event struct {
	Path string
	Type ChangeType
}

// Watcher watches a single directory, usually .evmkit, for document changes.
type Watcher struct {
	fs       *fsnotify.Watcher
	dir      string
	filter   *Filter
	debounce time.Duration
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithFilter replaces the document filter.
func WithFilter(f *Filter) Option {
	return func(w *Watcher) {
		if f != nil {
			w.filter = f
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a watcher on dir. The directory is watched rather than the
// files so that editors replacing a file atomically are still observed.
func New(dir string, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	w := &Watcher{
		fs:       fw,
		dir:      dir,
		filter:   DocumentFilter(),
		debounce: 500 * time.Millisecond,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return w, nil
}

// Run delivers debounced events to onChange until the context is cancelled.
// onChange runs on a timer goroutine. The debouncer serializes the calls, so a
// slow onChange delays the next one instead of overlapping it.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context, Event)) error {
	defer w.fs.Close()

	debouncer := NewDebouncer(w.debounce, func(ev Event) {
		if ctx.Err() == nil {
			onChange(ctx, ev)
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			typ := changeTypeOf(event.Op)
			if typ == "" || !w.filter.Matches(event.Name) {
				continue
			}
			w.logger.Debug("workspace change", "path", event.Name, "type", typ)
			debouncer.Trigger(Event{Path: event.Name, Type: typ})

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func changeTypeOf(op fsnotify.Op) ChangeType {
	switch {
	case op.Has(fsnotify.Create):
		return ChangeCreate
	case op.Has(fsnotify.Write):
		return ChangeWrite
	case op.Has(fsnotify.Remove):
		return ChangeRemove
	case op.Has(fsnotify.Rename):
		return ChangeRename
	default:
		return ""
	}
}
