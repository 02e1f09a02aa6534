// Package bubbletea provides a Bubble Tea TUI host for the fold
// console: a viewport over the rendered document, Tab toggling of
// wrapper sections, and animator ticks delivered on the program's
// update loop.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fwojciec/fold"
	"github.com/fwojciec/fold/console"
)

// Run wires a fresh console, controller, and session to the given
// feed and runs the Bubble Tea program. It blocks until the program
// exits. The context is used for graceful shutdown — when cancelled,
// the program quits.
func Run(ctx context.Context, feed fold.FeedFunc, opts ...fold.Option) error {
	cons := console.New()
	sched := NewScheduler()
	ctrl := fold.New(cons, sched, opts...)
	session := fold.NewSession()

	m := New(feed, session, ctrl, cons, fold.DefaultTheme())
	p := tea.NewProgram(m, tea.WithAltScreen())
	sched.SetProgram(p)

	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	cons.Close()
	return err
}

// StreamEventMsg wraps a turn event for delivery to the model.
type StreamEventMsg struct {
	Event fold.Event
}

// FeedDoneMsg signals that the feed has completed.
type FeedDoneMsg struct {
	Err error
}
