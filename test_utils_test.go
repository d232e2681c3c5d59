package taskpad

import (
	"fmt"
	"sync"
	"time"
)

// Test utilities - shared helpers for tests

// sequentialIDs returns a generator producing t1, t2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

// tickingClock starts at a fixed instant and advances a second per call.
func tickingClock() func() time.Time {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

// recordingPersister remembers every snapshot it was asked to save.
type recordingPersister struct {
	mu      sync.Mutex
	initial []Task
	saves   [][]Task
}

func (p *recordingPersister) Load() []Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Task{}, p.initial...)
}

func (p *recordingPersister) Save(tasks []Task) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves = append(p.saves, append([]Task(nil), tasks...))
}

func (p *recordingPersister) saveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.saves)
}

func (p *recordingPersister) lastSave() []Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.saves) == 0 {
		return nil
	}
	return p.saves[len(p.saves)-1]
}

// failingSlot refuses every read and write.
type failingSlot struct{}

func (failingSlot) Read() ([]byte, error) { return nil, fmt.Errorf("disk on fire") }
func (failingSlot) Write([]byte) error    { return fmt.Errorf("disk on fire") }
func (failingSlot) Remove() error         { return fmt.Errorf("disk on fire") }

func newTestStore(opts ...Option) *Store {
	base := []Option{WithIDGenerator(sequentialIDs()), WithClock(tickingClock())}
	return NewStore(append(base, opts...)...)
}
