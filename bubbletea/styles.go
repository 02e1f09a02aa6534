package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/fwojciec/fold"
)

// Styles maps a fold.Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Wrapper lipgloss.Style
	Thought lipgloss.Style
	Tool    lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t fold.Theme) Styles {
	return Styles{
		Wrapper: lipgloss.NewStyle().Foreground(ansiColor(t.Wrapper)),
		Thought: lipgloss.NewStyle().Foreground(ansiColor(t.Thought)).Faint(true),
		Tool:    lipgloss.NewStyle().Foreground(ansiColor(t.Tool)),
		Error:   lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success: lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
