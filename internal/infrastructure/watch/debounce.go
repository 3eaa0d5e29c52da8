// Package watch reports changes to workspace documents, coalescing the burst
// of events an editor save produces into one notification.
package watch

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid triggers into a single callback invocation that
// receives the value of the last trigger. Callbacks never run concurrently.
type Debouncer[T any] struct {
	window   time.Duration
	mu       sync.Mutex
	running  sync.Mutex // held while the callback runs
	timer    *time.Timer
	pending  T
	callback func(T)
}

// NewDebouncer creates a debouncer with the given window duration.
func NewDebouncer[T any](window time.Duration, callback func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		window:   window,
		callback: callback,
	}
}

// Trigger records v and resets the debounce timer. The callback fires with
// the latest value after the window elapses with no further triggers.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = v
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire waits for a running callback to return, then delivers the latest
// pending value.
func (d *Debouncer[T]) fire() {
	d.running.Lock()
	defer d.running.Unlock()

	d.mu.Lock()
	v := d.pending
	d.mu.Unlock()
	d.callback(v)
}

// Stop cancels any pending callback.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}
