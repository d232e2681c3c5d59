package taskpad

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidPriority = errors.New("invalid priority")

// Priority is an optional task priority.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority accepts low, medium, high (any case) or an empty string.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return PriorityNone, fmt.Errorf("%w: %q (use low, medium or high)", ErrInvalidPriority, s)
	}
	return p, nil
}

// Valid reports whether p is unset or one of the known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities for sorting. Unset ranks as low; unknown values
// read from storage rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow, PriorityNone:
		return 1
	default:
		return 0
	}
}

// Task represents a task in the list
type Task struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority,omitempty"`
	CreatedAt int64    `json:"createdAt"`
}

// NewTask builds a task that has not been completed yet.
// The caller is responsible for passing non-empty text.
func NewTask(id, text string, now time.Time) Task {
	return Task{
		ID:        id,
		Text:      text,
		CreatedAt: now.UnixMilli(),
	}
}

// Created returns the creation time.
func (t Task) Created() time.Time {
	return time.UnixMilli(t.CreatedAt)
}
