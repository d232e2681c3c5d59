package taskpad

import (
	"errors"
	"fmt"
	"sync"
)

// DefaultSlotKey names the durable slot holding the task collection.
const DefaultSlotKey = "todos"

var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Slot is a single named durable location holding raw bytes.
// Read returns nil, nil when the slot has never been written.
type Slot interface {
	Read() ([]byte, error)
	Write(data []byte) error
	Remove() error
}

// MemorySlot keeps the slot in process memory. A positive Quota limits the
// size of a single write, the same way browser storage rejects large values.
type MemorySlot struct {
	mu    sync.Mutex
	data  []byte
	Quota int
}

// NewMemorySlot creates an empty in-memory slot with no quota.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, nil
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Quota > 0 && len(data) > s.Quota {
		return fmt.Errorf("%w: %d bytes over a %d byte quota", ErrQuotaExceeded, len(data), s.Quota)
	}
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *MemorySlot) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil
	return nil
}
