package taskpad

// Reducers never modify the slice they are given. Each returns a fresh
// collection so callers can compare old and new by identity.

// reduceTaskAdded appends task to the end of the collection
func reduceTaskAdded(tasks []Task, task Task) []Task {
	next := make([]Task, 0, len(tasks)+1)
	next = append(next, tasks...)
	return append(next, task)
}

// reduceTaskToggled replaces the matching task with a flipped copy.
// It reports false, and returns tasks untouched, when id is unknown.
func reduceTaskToggled(tasks []Task, id string) ([]Task, bool) {
	idx := indexOf(tasks, id)
	if idx < 0 {
		return tasks, false
	}

	next := append([]Task(nil), tasks...)
	toggled := next[idx]
	toggled.Completed = !toggled.Completed
	next[idx] = toggled
	return next, true
}

// reduceTaskRemoved drops the matching task.
func reduceTaskRemoved(tasks []Task, id string) ([]Task, bool) {
	idx := indexOf(tasks, id)
	if idx < 0 {
		return tasks, false
	}

	next := make([]Task, 0, len(tasks)-1)
	next = append(next, tasks[:idx]...)
	return append(next, tasks[idx+1:]...), true
}

func indexOf(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
