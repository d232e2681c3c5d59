package taskpad

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Persister loads and saves the whole task collection.
// Neither call reports failure: persistence problems are logged and the
// in-memory collection stays authoritative.
type Persister interface {
	Load() []Task
	Save(tasks []Task)
}

// Storage is the Persister backed by a single durable slot.
type Storage struct {
	slot   Slot
	logger *zap.Logger

	mu     sync.Mutex
	failed bool // last write did not reach the slot
}

// NewStorage wraps slot. A nil logger discards log output.
func NewStorage(slot Slot, logger *zap.Logger) *Storage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Storage{slot: slot, logger: logger}
}

// Load reads the collection. A missing or empty slot yields an empty
// collection, and so does unreadable or malformed content (logged).
func (s *Storage) Load() []Task {
	tasks, err := s.read()
	if err != nil {
		s.logger.Warn("Failed to load tasks, starting empty", zap.Error(err))
		return []Task{}
	}
	return tasks
}

// Save overwrites the slot with the full collection, logging failures.
func (s *Storage) Save(tasks []Task) {
	err := s.write(tasks)

	s.mu.Lock()
	s.failed = err != nil
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Failed to save tasks", zap.Int("count", len(tasks)), zap.Error(err))
		return
	}
	s.logger.Debug("Saved tasks", zap.Int("count", len(tasks)))
}

// Pending reports whether the last Save failed, leaving the slot behind
// the collection that was passed to it.
func (s *Storage) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Clear deletes the slot.
func (s *Storage) Clear() {
	if err := s.slot.Remove(); err != nil {
		s.logger.Error("Failed to clear task storage", zap.Error(err))
	}
}

func (s *Storage) read() ([]Task, error) {
	data, err := s.slot.Read()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []Task{}, nil
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tasks: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

func (s *Storage) write(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}

	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	return s.slot.Write(data)
}

// NewStoreWithPersistence creates a Store backed by the JSON file slot in
// workspaceDir. Every mutation is written to disk before the call returns.
func NewStoreWithPersistence(workspaceDir string, logger *zap.Logger, opts ...Option) (*Store, error) {
	slot, err := NewFileSlot(workspaceDir, DefaultSlotKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create file slot: %w", err)
	}

	opts = append([]Option{WithLogger(logger), WithPersister(NewStorage(slot, logger))}, opts...)
	return NewStore(opts...), nil
}
