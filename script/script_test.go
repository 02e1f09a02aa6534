package script_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/fold"
	"github.com/fwojciec/fold/script"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("reads every step type", func(t *testing.T) {
		t.Parallel()
		in := strings.Join([]string{
			`{"type":"turn_started"}`,
			`{"type":"thought","text":"thinking","new_phase":true,"delay_ms":50}`,
			`{"type":"tool_call","name":"read_file"}`,
			`{"type":"toggle","fragment":"group-1.1"}`,
			`{"type":"pause","delay_ms":200}`,
			`{"type":"turn_ended"}`,
		}, "\n")

		steps, err := script.Decode(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, steps, 6)

		assert.Equal(t, fold.EventTurnStarted{}, steps[0].Event)
		assert.Equal(t, fold.EventThoughtText{Text: "thinking", NewPhase: true}, steps[1].Event)
		assert.Equal(t, 50*time.Millisecond, steps[1].Delay)
		assert.Equal(t, fold.EventToolCallStarted{Name: "read_file"}, steps[2].Event)
		assert.Equal(t, fold.EventUserToggle{FragmentID: "group-1.1"}, steps[3].Event)
		assert.Nil(t, steps[4].Event)
		assert.Equal(t, 200*time.Millisecond, steps[4].Delay)
		assert.Equal(t, fold.EventTurnEnded{}, steps[5].Event)
	})

	t.Run("skips blank lines", func(t *testing.T) {
		t.Parallel()
		in := "\n{\"type\":\"turn_started\"}\n\n  \n{\"type\":\"turn_ended\"}\n"
		steps, err := script.Decode(strings.NewReader(in))
		require.NoError(t, err)
		assert.Len(t, steps, 2)
	})

	t.Run("reports the failing line", func(t *testing.T) {
		t.Parallel()
		in := "{\"type\":\"turn_started\"}\n{\"type\":\"nope\"}\n"
		_, err := script.Decode(strings.NewReader(in))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
		assert.Contains(t, err.Error(), "nope")
	})

	t.Run("rejects malformed json with the line number", func(t *testing.T) {
		t.Parallel()
		_, err := script.Decode(strings.NewReader("{not json}\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 1")
	})

	t.Run("empty input yields no steps", func(t *testing.T) {
		t.Parallel()
		steps, err := script.Decode(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, steps)
	})
}

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("round-trips", func(t *testing.T) {
		t.Parallel()
		steps := []script.Step{
			{Event: fold.EventTurnStarted{}},
			{Event: fold.EventThoughtText{Text: "hi", NewPhase: true}, Delay: 10 * time.Millisecond},
			{Event: fold.EventToolCallStarted{Name: "grep"}},
			{Delay: 5 * time.Millisecond},
			{Event: fold.EventUserToggle{FragmentID: "group-1.1"}},
			{Event: fold.EventTurnEnded{}},
		}

		var buf bytes.Buffer
		require.NoError(t, script.Encode(&buf, steps))
		got, err := script.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, steps, got)
	})

	t.Run("rejects unknown event types", func(t *testing.T) {
		t.Parallel()
		type fake struct{ fold.Event }
		err := script.Encode(&bytes.Buffer{}, []script.Step{{Event: fake{}}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "step 0")
	})
}

func TestFeed(t *testing.T) {
	t.Parallel()

	t.Run("delivers events in order", func(t *testing.T) {
		t.Parallel()
		steps := []script.Step{
			{Event: fold.EventTurnStarted{}},
			{Event: fold.EventThoughtText{Text: "a"}},
			{Delay: time.Millisecond}, // pure pause, no event
			{Event: fold.EventTurnEnded{}},
		}

		var got []fold.Event
		err := script.Feed(steps)(context.Background(), func(e fold.Event) {
			got = append(got, e)
		})
		require.NoError(t, err)
		assert.Equal(t, []fold.Event{
			fold.EventTurnStarted{},
			fold.EventThoughtText{Text: "a"},
			fold.EventTurnEnded{},
		}, got)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		steps := []script.Step{{Event: fold.EventTurnStarted{}, Delay: time.Hour}}
		err := script.Feed(steps)(ctx, func(fold.Event) {
			t.Fatal("no event should be delivered")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
