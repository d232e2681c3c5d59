package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <task-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    deleteTask,
}

func deleteTask(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	taskID, err := resolveID(s.store, args[0])
	if err != nil {
		return err
	}

	task, _ := s.store.Get(taskID)
	s.store.Remove(taskID)

	fmt.Fprintf(cmd.OutOrStdout(), "✗ Task deleted: %s\n  %s\n", shortID(task.ID), task.Text)
	return nil
}

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every task by removing the task storage",
	Args:  cobra.NoArgs,
	RunE:  clearTasks,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Confirm removing all tasks")
}

func clearTasks(cmd *cobra.Command, args []string) error {
	if !clearYes {
		return fmt.Errorf("refusing to remove all tasks without --yes")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	count := s.store.Len()
	s.storage.Clear()

	fmt.Fprintf(cmd.OutOrStdout(), "✗ Removed %d tasks.\n", count)
	return nil
}
