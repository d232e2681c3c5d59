package taskpad

// Intent is a user request forwarded from the presentation layer.
type Intent interface {
	Type() string
}

// AddTask asks for a new task with the given text
type AddTask struct {
	Text     string
	Priority Priority
}

func (i AddTask) Type() string { return "add_task" }

// ToggleTask flips the completed flag of a task
type ToggleTask struct {
	TaskID string
}

func (i ToggleTask) Type() string { return "toggle_task" }

// RemoveTask deletes a task
type RemoveTask struct {
	TaskID string
}

func (i RemoveTask) Type() string { return "remove_task" }
