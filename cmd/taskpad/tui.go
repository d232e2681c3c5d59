// This file implements the interactive task list using bubbletea.
package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fmizzell/taskpad"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var watchFlag bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive task list",
	Long: `Open the interactive task list.

Type a task and press enter to add it. Press esc to move to the list, where
space or enter toggles the selected task, d deletes it and tab cycles the
filter. With --watch the list reloads when another process changes the tasks.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&watchFlag, "watch", false, "Reload when the task file changes on disk")
}

// slotChangedMsg is sent when the task file is rewritten on disk.
type slotChangedMsg struct{}

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	NextFilter key.Binding
	ShowAll    key.Binding
	ShowActive key.Binding
	ShowDone   key.Binding
	New        key.Binding
	Submit     key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		Delete:     key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "delete")),
		NextFilter: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter")),
		ShowAll:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		ShowActive: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		ShowDone:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		New:        key.NewBinding(key.WithKeys("a", "i", "n"), key.WithHelp("a", "new task")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "to list")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Toggle, k.Delete, k.NextFilter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Delete},
		{k.NextFilter, k.ShowAll, k.ShowActive, k.ShowDone},
		{k.New, k.Submit, k.Back, k.Help, k.Quit},
	}
}

// tuiModel renders the filtered list and forwards intents to the store.
type tuiModel struct {
	store  *taskpad.Store
	input  textinput.Model
	keys   keyMap
	help   help.Model
	styles Styles

	filter taskpad.Filter
	cursor int
	typing bool
	status string
}

func newTUIModel(store *taskpad.Store, filter taskpad.Filter, styles Styles) tuiModel {
	ti := textinput.New()
	ti.Placeholder = "Add a new task..."
	ti.Prompt = "│ "
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = styles.Cursor
	ti.TextStyle = styles.Body
	ti.Focus()

	return tuiModel{
		store:  store,
		input:  ti,
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: styles,
		filter: filter,
		typing: true,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		if msg.Width > 10 {
			m.input.Width = msg.Width - 6
		}
		return m, nil

	case slotChangedMsg:
		before := m.store.Tasks()
		if m.store.Reload() && !slices.Equal(before, m.store.Tasks()) {
			m.status = "Reloaded from disk"
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		if m.typing {
			return m.updateTyping(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tuiModel) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		before := m.store.Len()
		m.process(taskpad.AddTask{Text: m.input.Value()})
		if m.store.Len() > before {
			m.input.Reset()
			m.cursor = len(m.visible()) - 1
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.typing = false
		m.input.Blur()
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.NextFilter):
		m.setFilter(m.filter.Next())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tuiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if task, ok := m.selected(); ok {
			m.process(taskpad.ToggleTask{TaskID: task.ID})
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.selected(); ok {
			m.process(taskpad.RemoveTask{TaskID: task.ID})
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.NextFilter):
		m.setFilter(m.filter.Next())

	case key.Matches(msg, m.keys.ShowAll):
		m.setFilter(taskpad.FilterAll)

	case key.Matches(msg, m.keys.ShowActive):
		m.setFilter(taskpad.FilterActive)

	case key.Matches(msg, m.keys.ShowDone):
		m.setFilter(taskpad.FilterCompleted)

	case key.Matches(msg, m.keys.New):
		m.typing = true
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m *tuiModel) process(intent taskpad.Intent) {
	if err := m.store.Process(intent); err != nil {
		m.status = err.Error()
	}
}

func (m *tuiModel) setFilter(f taskpad.Filter) {
	m.filter = f
	m.clampCursor()
}

func (m *tuiModel) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m tuiModel) visible() []taskpad.Task {
	return m.store.Visible(m.filter)
}

func (m tuiModel) selected() (taskpad.Task, bool) {
	visible := m.visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return taskpad.Task{}, false
	}
	return visible[m.cursor], true
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Task Manager"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Organize your work"))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(m.filterBar())
	b.WriteString("\n\n")

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(m.styles.Muted.Render("No tasks to show."))
		b.WriteString("\n")
	}
	for i, task := range visible {
		b.WriteString(m.renderTask(task, !m.typing && i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(summary(m.store.Tasks())))
	if m.status != "" {
		b.WriteString("  ")
		b.WriteString(m.styles.Status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m tuiModel) filterBar() string {
	labels := make([]string, 0, len(taskpad.Filters))
	for _, f := range taskpad.Filters {
		name := string(f)
		label := strings.ToUpper(name[:1]) + name[1:]
		if f == m.filter {
			labels = append(labels, m.styles.FilterActive.Render(label))
		} else {
			labels = append(labels, m.styles.FilterInactive.Render(label))
		}
	}
	return strings.Join(labels, " ")
}

func (m tuiModel) renderTask(task taskpad.Task, selected bool) string {
	pointer := "  "
	if selected {
		pointer = m.styles.Cursor.Render("› ")
	}

	box := "[ ]"
	text := m.styles.Body.Render(task.Text)
	if task.Completed {
		box = m.styles.Done.Render("[x]")
		text = m.styles.CompletedText.Render(task.Text)
	} else if selected {
		text = m.styles.Selected.Render(task.Text)
	}

	line := fmt.Sprintf("%s%s %s", pointer, box, text)
	if task.Priority != taskpad.PriorityNone {
		line += " " + m.styles.priority(task.Priority).Render(string(task.Priority))
	}
	return line
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	mode, err := taskpad.ParseFilter(s.cfg.UI.DefaultFilter)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	program := tea.NewProgram(
		newTUIModel(s.store, mode, newStyles(s.cfg.UI.Theme)),
		tea.WithContext(gctx),
		tea.WithAltScreen(),
	)

	if (watchFlag || s.cfg.UI.Watch) && s.slotPath != "" {
		watcher, err := taskpad.NewSlotWatcher(s.slotPath, 0, func() {
			program.Send(slotChangedMsg{})
		}, currentLogger())
		if err != nil {
			return err
		}
		g.Go(func() error {
			return watcher.Run(gctx)
		})
		currentLogger().Debug("Watching task file", zap.String("path", s.slotPath))
	}

	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	return g.Wait()
}
