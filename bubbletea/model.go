package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fwojciec/fold"
	"github.com/fwojciec/fold/console"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model hosting a fold console.
type Model struct {
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	feed       fold.FeedFunc
	session    *fold.Session
	controller *fold.Controller
	console    *console.Console
	styles     Styles

	focus   int // index into collapsible fragment ids (-1 = none)
	toolSeq int

	running bool
	feedCtx context.Context
	cancel  context.CancelFunc
	eventCh chan fold.Event
	doneCh  chan error
	err     error
	ready   bool
}

// New creates a TUI Model for the given feed, session, controller,
// and console. The controller must render into the same console.
func New(feed fold.FeedFunc, session *fold.Session, controller *fold.Controller, cons *console.Console, theme fold.Theme) Model {
	return Model{
		feed:       feed,
		session:    session,
		controller: controller,
		console:    cons,
		styles:     NewStyles(theme),
		focus:      -1,
	}
}

// Running returns whether the feed is still delivering events.
func (m Model) Running() bool { return m.running }

// Err returns the feed error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model. It starts the feed.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StreamEventMsg:
		m = m.processEvent(msg.Event)
		m = m.refresh(true)
		if m.eventCh != nil {
			return m, listenForEvent(m.eventCh, m.doneCh)
		}
		return m, nil

	case FrameMsg:
		msg.Do()
		return m.refresh(false), nil

	case FeedDoneMsg:
		m.running = false
		m.cancel = nil
		m.eventCh = nil
		m.doneCh = nil
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
		}
		return m.refresh(false), nil
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	statusHeight := 2 // newline + status line
	vpHeight := msg.Height - statusHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
		m = m.startFeed()
		m = m.refresh(true)
		return m, tea.Batch(
			runFeed(m.feed, m.feedCtx, m.eventCh, m.doneCh),
			listenForEvent(m.eventCh, m.doneCh),
		)
	}
	m.Viewport.Width = msg.Width
	m.Viewport.Height = vpHeight
	return m.refresh(false), nil
}

// startFeed sets up channels and context for the feed run.
func (m Model) startFeed() Model {
	ctx, cancel := context.WithCancel(context.Background())
	m.feedCtx = ctx
	m.cancel = cancel
	m.eventCh = make(chan fold.Event, 256)
	m.doneCh = make(chan error, 1)
	m.running = true
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running && m.cancel != nil {
			m.cancel()
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyTab:
		if m.focus >= 0 {
			ids := m.console.CollapsibleIDs()
			if m.focus < len(ids) {
				id := ids[m.focus]
				m.console.Toggle(id)
				m.controller.OnUserToggle(m.session, id)
				return m.refresh(false), nil
			}
		}
		return m, nil

	case tea.KeyShiftTab:
		m = m.cycleFocusPrev()
		return m.refresh(false), nil
	}

	if msg.String() == "q" && !m.running {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// processEvent routes a turn event. Tool calls are rendered as their
// own fragments before being folded into the current group, since the
// controller organizes fragments but never creates tool output.
func (m Model) processEvent(evt fold.Event) Model {
	switch e := evt.(type) {
	case fold.EventToolCallStarted:
		m.controller.HandleEvent(m.session, e)
		m.toolSeq++
		name := e.Name
		if name == "" {
			name = "tool"
		}
		id := fmt.Sprintf("tool-%d.%d", m.session.RequestCount, m.toolSeq)
		m.console.CreateOrUpdateFragment(m.session.RequestCount, id, fold.Fragment{
			LabelLeft: "⚙ " + name,
		})
		m.controller.AttachChild(m.session, id)
	default:
		m.controller.HandleEvent(m.session, evt)
	}
	return m.updateFocus()
}

// updateFocus points focus at the last collapsible fragment, the
// active wrapper in the common case.
func (m Model) updateFocus() Model {
	ids := m.console.CollapsibleIDs()
	m.focus = len(ids) - 1
	return m
}

// cycleFocusPrev moves focus to the previous collapsible fragment,
// wrapping around.
func (m Model) cycleFocusPrev() Model {
	ids := m.console.CollapsibleIDs()
	if len(ids) == 0 {
		m.focus = -1
		return m
	}
	if m.focus <= 0 {
		m.focus = len(ids) - 1
	} else {
		m.focus--
	}
	return m
}

func (m Model) refresh(follow bool) Model {
	if !m.ready {
		return m
	}
	m.Viewport.SetContent(m.console.Render(m.Viewport.Width))
	if follow {
		m.Viewport.GotoBottom()
	}
	return m
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.running {
		return m.styles.Muted.Render("Streaming... Tab to toggle, Ctrl+C to stop")
	}
	return m.styles.Muted.Render("Tab to toggle, Shift+Tab to move, q to quit")
}

// runFeed runs the feed in a goroutine and signals completion.
func runFeed(feed fold.FeedFunc, ctx context.Context, eventCh chan<- fold.Event, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		err := feed(ctx, func(e fold.Event) {
			select {
			case eventCh <- e:
			case <-ctx.Done():
			}
		})
		close(eventCh)
		doneCh <- err
		return nil
	}
}

// listenForEvent waits for the next event from the channel. When the
// channel closes, it reads the error from doneCh and returns
// FeedDoneMsg.
func listenForEvent(ch <-chan fold.Event, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			err := <-doneCh
			return FeedDoneMsg{Err: err}
		}
		return StreamEventMsg{Event: evt}
	}
}
