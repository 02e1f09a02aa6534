package fold

import "context"

// Event is a sealed interface representing a turn event.
// Events are purely semantic. Transport errors come from the feed's
// error return, not from events.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventTurnStarted marks the beginning of a new turn. The session's
// request counter advances when it is handled.
type EventTurnStarted struct{}

func (EventTurnStarted) event() {}

// EventThoughtText carries a chunk of reasoning text. NewPhase hints
// that the chunk opens a new phase of work.
type EventThoughtText struct {
	Text     string
	NewPhase bool
}

func (EventThoughtText) event() {}

// EventToolCallStarted signals that a tool call was attributed to the
// current turn. Name is display-only and may be empty.
type EventToolCallStarted struct {
	Name string
}

func (EventToolCallStarted) event() {}

// EventTurnEnded marks the end of the current turn.
type EventTurnEnded struct{}

func (EventTurnEnded) event() {}

// EventUserToggle reports that the user expanded or collapsed a
// rendered fragment.
type EventUserToggle struct {
	FragmentID string
}

func (EventUserToggle) event() {}

// Interface compliance checks.
var (
	_ Event = EventTurnStarted{}
	_ Event = EventThoughtText{}
	_ Event = EventToolCallStarted{}
	_ Event = EventTurnEnded{}
	_ Event = EventUserToggle{}
)

// FeedFunc produces turn events. The onEvent callback is called for
// each event in arrival order. The function blocks until the feed is
// exhausted or the context is cancelled.
type FeedFunc func(ctx context.Context, onEvent func(Event)) error
