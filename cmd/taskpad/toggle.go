package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle <task-id>",
	Aliases: []string{"done"},
	Short:   "Mark a task completed, or active again",
	Long:    `Flip the completed state of a task. Any unique prefix of the task id is accepted.`,
	Args:    cobra.ExactArgs(1),
	RunE:    toggleTask,
}

func toggleTask(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	taskID, err := resolveID(s.store, args[0])
	if err != nil {
		return err
	}

	s.store.Toggle(taskID)

	task, _ := s.store.Get(taskID)
	out := cmd.OutOrStdout()
	if task.Completed {
		fmt.Fprintf(out, "✓ Task completed: %s\n", shortID(task.ID))
	} else {
		fmt.Fprintf(out, "○ Task reopened: %s\n", shortID(task.ID))
	}
	fmt.Fprintf(out, "  %s\n", task.Text)
	return nil
}
