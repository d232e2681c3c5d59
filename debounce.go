package taskpad

import (
	"sync"
	"time"
)

// DebouncedSaver batches rapid saves: only the latest snapshot is written,
// once delay has passed without another Save. Writes are serialized, so an
// older snapshot can never land after a newer one.
type DebouncedSaver struct {
	mu      sync.Mutex
	next    Persister
	delay   time.Duration
	timer   *time.Timer
	pending []Task
	dirty   bool
}

// NewDebouncedSaver wraps next.
func NewDebouncedSaver(next Persister, delay time.Duration) *DebouncedSaver {
	return &DebouncedSaver{
		next:  next,
		delay: delay,
	}
}

// Save records tasks as the snapshot to write and restarts the delay.
func (d *DebouncedSaver) Save(tasks []Task) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = tasks
	d.dirty = true

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.Flush)
}

// Flush writes the pending snapshot now, if there is one.
func (d *DebouncedSaver) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopTimer()
	if !d.dirty {
		return
	}

	d.next.Save(d.pending)
	d.pending = nil
	d.dirty = false
}

// Load drops any pending snapshot and reads from the wrapped persister.
func (d *DebouncedSaver) Load() []Task {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopTimer()
	d.pending = nil
	d.dirty = false

	return d.next.Load()
}

// Pending reports whether a snapshot is waiting to be written, or the
// wrapped persister failed to write the last one.
func (d *DebouncedSaver) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty || pending(d.next)
}

// Close flushes the pending snapshot.
func (d *DebouncedSaver) Close() error {
	d.Flush()
	return nil
}

func (d *DebouncedSaver) stopTimer() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
