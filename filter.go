package taskpad

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidFilter = errors.New("invalid filter")

// Filter selects which tasks are visible.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the modes in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ParseFilter maps user input to a Filter. An empty string means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	}
	return FilterAll, fmt.Errorf("%w: %q (use all, active or completed)", ErrInvalidFilter, s)
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
	for i, mode := range Filters {
		if mode == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Select returns the tasks visible under mode, keeping their order.
// Unknown modes behave like FilterAll.
func Select(tasks []Task, mode Filter) []Task {
	if mode != FilterActive && mode != FilterCompleted {
		return tasks
	}

	wantCompleted := mode == FilterCompleted
	visible := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed == wantCompleted {
			visible = append(visible, t)
		}
	}
	return visible
}
