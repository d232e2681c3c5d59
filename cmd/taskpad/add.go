package main

import (
	"fmt"
	"strings"

	"github.com/fmizzell/taskpad"
	"github.com/spf13/cobra"
)

var addPriority string

var addCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Add a new task",
	Long:  `Add a new task to the current workspace. All arguments are joined into the task text.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  addTask,
}

func init() {
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Task priority: low, medium or high")
}

func addTask(cmd *cobra.Command, args []string) error {
	priority, err := taskpad.ParsePriority(addPriority)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	task, ok := s.store.Add(strings.Join(args, " "), taskpad.WithPriority(priority))
	if !ok {
		fmt.Fprintln(out, "Nothing to add: task text is empty.")
		return nil
	}

	fmt.Fprintf(out, "✓ Task added: %s\n", shortID(task.ID))
	fmt.Fprintf(out, "  %s\n", task.Text)
	if task.Priority != taskpad.PriorityNone {
		fmt.Fprintf(out, "  Priority: %s\n", task.Priority)
	}
	return nil
}
