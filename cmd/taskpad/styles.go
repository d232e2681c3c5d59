package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fmizzell/taskpad"
)

// Palette
var (
	green  = lipgloss.Color("#4CAF50")
	green2 = lipgloss.Color("#45a049")
	red    = lipgloss.Color("#e53935")
	amber  = lipgloss.Color("#FFC107")
	blue   = lipgloss.Color("#2196F3")

	darkText  = lipgloss.Color("#f2f2f2")
	darkMuted = lipgloss.Color("#6b7a90")

	lightText  = lipgloss.Color("#101F38")
	lightMuted = lipgloss.Color("#8a94a3")
)

// Styles holds every style used by list output and the interactive view.
type Styles struct {
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	Body           lipgloss.Style
	Muted          lipgloss.Style
	Pending        lipgloss.Style
	Done           lipgloss.Style
	CompletedText  lipgloss.Style
	Cursor         lipgloss.Style
	Selected       lipgloss.Style
	FilterActive   lipgloss.Style
	FilterInactive lipgloss.Style
	PriorityLow    lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityHigh   lipgloss.Style
	Status         lipgloss.Style
}

// newStyles returns the dark styles unless theme is "light".
func newStyles(theme string) Styles {
	text, muted := darkText, darkMuted
	if theme == "light" {
		text, muted = lightText, lightMuted
	}

	return Styles{
		Title:          lipgloss.NewStyle().Bold(true).Foreground(green),
		Subtitle:       lipgloss.NewStyle().Italic(true).Foreground(muted),
		Body:           lipgloss.NewStyle().Foreground(text),
		Muted:          lipgloss.NewStyle().Foreground(muted),
		Pending:        lipgloss.NewStyle().Foreground(muted),
		Done:           lipgloss.NewStyle().Foreground(green),
		CompletedText:  lipgloss.NewStyle().Strikethrough(true).Foreground(muted),
		Cursor:         lipgloss.NewStyle().Bold(true).Foreground(green2),
		Selected:       lipgloss.NewStyle().Bold(true).Foreground(text),
		FilterActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(green).Padding(0, 1),
		FilterInactive: lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		PriorityLow:    lipgloss.NewStyle().Foreground(blue),
		PriorityMedium: lipgloss.NewStyle().Foreground(amber),
		PriorityHigh:   lipgloss.NewStyle().Bold(true).Foreground(red),
		Status:         lipgloss.NewStyle().Foreground(amber),
	}
}

func (s Styles) priority(p taskpad.Priority) lipgloss.Style {
	switch p {
	case taskpad.PriorityHigh:
		return s.PriorityHigh
	case taskpad.PriorityMedium:
		return s.PriorityMedium
	default:
		return s.PriorityLow
	}
}
