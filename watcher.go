package taskpad

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultWatchDelay coalesces the truncate and write events of one save.
const DefaultWatchDelay = 150 * time.Millisecond

// SlotWatcher calls onChange when the file behind a FileSlot is rewritten,
// created or removed by anyone, this process included.
type SlotWatcher struct {
	path     string
	delay    time.Duration
	onChange func()
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
}

// NewSlotWatcher watches the directory holding path. Bursts of events are
// collapsed into one onChange call after delay (DefaultWatchDelay if zero).
func NewSlotWatcher(path string, delay time.Duration, onChange func(), logger *zap.Logger) (*SlotWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if delay <= 0 {
		delay = DefaultWatchDelay
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory: saves that replace the file would drop a file watch.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &SlotWatcher{
		path:     abs,
		delay:    delay,
		onChange: onChange,
		watcher:  watcher,
		logger:   logger,
	}, nil
}

// Run delivers change notifications until ctx is done, then closes the watcher.
func (w *SlotWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("Slot file changed", zap.String("op", event.Op.String()))

			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Slot watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			w.onChange()
		}
	}
}
