package taskpad

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrUnknownIntent = errors.New("unknown intent")

// Store is the in-memory authoritative task collection for a session.
// It is not safe for concurrent use; one goroutine owns it.
type Store struct {
	tasks     []Task
	persister Persister
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// Option configures a Store
type Option func(*Store)

// WithPersister sets where the collection is loaded from and saved to.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithLogger sets the logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides time.Now for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the task ID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// NewStore creates a Store and loads the persisted collection once.
// Without WithPersister the collection lives in a MemorySlot.
func NewStore(opts ...Option) *Store {
	s := &Store{
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.persister == nil {
		s.persister = NewStorage(NewMemorySlot(), s.logger)
	}

	s.tasks = s.persister.Load()
	s.logger.Debug("Loaded tasks", zap.Int("count", len(s.tasks)))
	return s
}

// AddOption customizes a task created by Add
type AddOption func(*Task)

// WithPriority sets the priority of the new task. Invalid values are ignored.
func WithPriority(p Priority) AddOption {
	return func(t *Task) {
		if p.Valid() {
			t.Priority = p
		}
	}
}

// Process is the single entry point for intents coming from a presentation layer.
// Intents naming unknown tasks or carrying empty text are no-ops, not errors.
func (s *Store) Process(intent Intent) error {
	switch i := intent.(type) {
	case AddTask:
		s.Add(i.Text, WithPriority(i.Priority))
	case *AddTask:
		if i == nil {
			return fmt.Errorf("%w: nil %T", ErrUnknownIntent, intent)
		}
		s.Add(i.Text, WithPriority(i.Priority))
	case ToggleTask:
		s.Toggle(i.TaskID)
	case *ToggleTask:
		if i == nil {
			return fmt.Errorf("%w: nil %T", ErrUnknownIntent, intent)
		}
		s.Toggle(i.TaskID)
	case RemoveTask:
		s.Remove(i.TaskID)
	case *RemoveTask:
		if i == nil {
			return fmt.Errorf("%w: nil %T", ErrUnknownIntent, intent)
		}
		s.Remove(i.TaskID)
	case nil:
		return fmt.Errorf("%w: nil", ErrUnknownIntent)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownIntent, intent)
	}
	return nil
}

// Add appends a new task. Text is trimmed; if nothing is left the call is
// a no-op and reports false.
func (s *Store) Add(text string, opts ...AddOption) (Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false
	}

	task := NewTask(s.freshID(), text, s.now())
	for _, opt := range opts {
		opt(&task)
	}

	s.commit(reduceTaskAdded(s.tasks, task))
	s.logger.Debug("Task added", zap.String("id", task.ID))
	return task, true
}

// Toggle flips the completed flag of the task with id.
// Unknown ids are ignored; they are usually stale references from a previous render.
func (s *Store) Toggle(id string) bool {
	next, ok := reduceTaskToggled(s.tasks, id)
	if !ok {
		s.logger.Debug("Toggle ignored, unknown task", zap.String("id", id))
		return false
	}

	s.commit(next)
	s.logger.Debug("Task toggled", zap.String("id", id))
	return true
}

// Remove deletes the task with id. Unknown ids are ignored.
func (s *Store) Remove(id string) bool {
	next, ok := reduceTaskRemoved(s.tasks, id)
	if !ok {
		s.logger.Debug("Remove ignored, unknown task", zap.String("id", id))
		return false
	}

	s.commit(next)
	s.logger.Debug("Task removed", zap.String("id", id))
	return true
}

// Reload replaces the collection with whatever the persister holds now and
// reports whether it did. Nothing is written back. While a save is pending
// or the last one failed, the in-memory collection is newer than the slot,
// so Reload skips.
func (s *Store) Reload() bool {
	if pending(s.persister) {
		s.logger.Debug("Reload skipped, save pending")
		return false
	}

	s.tasks = s.persister.Load()
	s.logger.Debug("Reloaded tasks", zap.Int("count", len(s.tasks)))
	return true
}

// pending reports whether p holds changes the slot has not seen yet.
func pending(p Persister) bool {
	if pp, ok := p.(interface{ Pending() bool }); ok {
		return pp.Pending()
	}
	return false
}

// Tasks returns a copy of the collection in display order.
func (s *Store) Tasks() []Task {
	return append([]Task(nil), s.tasks...)
}

// Visible returns the tasks shown under mode.
func (s *Store) Visible(mode Filter) []Task {
	return Select(s.Tasks(), mode)
}

// Get returns the task with id.
func (s *Store) Get(id string) (Task, bool) {
	if idx := indexOf(s.tasks, id); idx >= 0 {
		return s.tasks[idx], true
	}
	return Task{}, false
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// commit swaps in the new collection and writes it through.
func (s *Store) commit(next []Task) {
	s.tasks = next
	s.persister.Save(next)
}

// freshID never hands out an id already present in the collection.
func (s *Store) freshID() string {
	for {
		id := s.newID()
		if indexOf(s.tasks, id) < 0 {
			return id
		}
	}
}
