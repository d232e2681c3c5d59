package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fmizzell/taskpad"
	"github.com/spf13/cobra"
)

var (
	statusFilter string
	sortOrder    string
	markdownOut  bool
	showDates    bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `List tasks in the current workspace, optionally filtered to active or completed ones.`,
	Args:    cobra.NoArgs,
	RunE:    listTasks,
}

func init() {
	listCmd.Flags().StringVarP(&statusFilter, "filter", "f", "", "Show all, active or completed tasks (default from config)")
	listCmd.Flags().StringVarP(&sortOrder, "sort", "s", "insertion", "Order: insertion, created or priority")
	listCmd.Flags().BoolVar(&markdownOut, "markdown", false, "Render the list as a markdown checklist")
	listCmd.Flags().BoolVar(&showDates, "dates", false, "Show when each task was created")
}

func listTasks(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	filterName := statusFilter
	if filterName == "" {
		filterName = s.cfg.UI.DefaultFilter
	}
	mode, err := taskpad.ParseFilter(filterName)
	if err != nil {
		return err
	}

	visible, err := sortTasks(s.store.Visible(mode), sortOrder)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(visible) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return nil
	}

	if markdownOut {
		return renderMarkdown(out, visible, mode)
	}

	styles := newStyles(s.cfg.UI.Theme)
	for _, task := range visible {
		line := formatTaskLine(styles, task)
		if showDates {
			line += " " + styles.Muted.Render(task.Created().Format(dateLayout))
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Muted.Render(summary(s.store.Tasks())))
	return nil
}

const dateLayout = "2006-01-02 15:04"

func sortTasks(tasks []taskpad.Task, order string) ([]taskpad.Task, error) {
	switch strings.ToLower(order) {
	case "", "insertion":
		return tasks, nil
	case "created":
		return taskpad.SortByCreated(tasks), nil
	case "priority":
		return taskpad.SortByPriority(tasks), nil
	}
	return nil, fmt.Errorf("unknown sort order %q (use insertion, created or priority)", order)
}

func formatTaskLine(styles Styles, task taskpad.Task) string {
	icon := styles.Pending.Render("○")
	text := task.Text
	if task.Completed {
		icon = styles.Done.Render("✓")
		text = styles.CompletedText.Render(text)
	}

	line := fmt.Sprintf("%s [%s] %s", icon, shortID(task.ID), text)
	if task.Priority != taskpad.PriorityNone {
		line += " " + styles.priority(task.Priority).Render(string(task.Priority))
	}
	return line
}

// summary counts over the whole collection, not the filtered view.
func summary(tasks []taskpad.Task) string {
	active := len(taskpad.Select(tasks, taskpad.FilterActive))
	completed := len(tasks) - active

	noun := "items"
	if active == 1 {
		noun = "item"
	}
	return fmt.Sprintf("%d %s left, %d completed", active, noun, completed)
}

func renderMarkdown(out io.Writer, tasks []taskpad.Task, mode taskpad.Filter) error {
	var md strings.Builder
	fmt.Fprintf(&md, "# Tasks (%s)\n\n", mode)
	for _, task := range tasks {
		box := " "
		if task.Completed {
			box = "x"
		}
		fmt.Fprintf(&md, "- [%s] %s", box, task.Text)
		if task.Priority != taskpad.PriorityNone {
			fmt.Fprintf(&md, " *(%s)*", task.Priority)
		}
		md.WriteString("\n")
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	rendered, err := renderer.Render(md.String())
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = io.WriteString(out, rendered)
	return err
}
