package gemini_test

import (
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/fwojciec/fold"
	"github.com/fwojciec/fold/gemini"
)

func respSeq(resps ...*genai.GenerateContentResponse) iter.Seq2[*genai.GenerateContentResponse, error] {
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, r := range resps {
			if !yield(r, nil) {
				return
			}
		}
	}
}

func resp(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: parts}},
		},
	}
}

func collect(t *testing.T, it iter.Seq2[*genai.GenerateContentResponse, error]) []fold.Event {
	t.Helper()
	var events []fold.Event
	err := gemini.ConvertStream(it, func(e fold.Event) {
		events = append(events, e)
	})
	require.NoError(t, err)
	return events
}

func TestConvertStream(t *testing.T) {
	t.Parallel()

	t.Run("thought parts become thought events", func(t *testing.T) {
		t.Parallel()
		events := collect(t, respSeq(
			resp(&genai.Part{Thought: true, Text: "pondering"}),
			resp(&genai.Part{Thought: true, Text: " deeply"}),
		))
		assert.Equal(t, []fold.Event{
			fold.EventThoughtText{Text: "pondering"},
			fold.EventThoughtText{Text: " deeply"},
		}, events)
	})

	t.Run("thought after a function call starts a new phase", func(t *testing.T) {
		t.Parallel()
		events := collect(t, respSeq(
			resp(&genai.Part{Thought: true, Text: "looking"}),
			resp(&genai.Part{FunctionCall: &genai.FunctionCall{Name: "read_file"}}),
			resp(&genai.Part{Thought: true, Text: "found it"}),
			resp(&genai.Part{Thought: true, Text: " already"}),
		))
		assert.Equal(t, []fold.Event{
			fold.EventThoughtText{Text: "looking"},
			fold.EventToolCallStarted{Name: "read_file"},
			fold.EventThoughtText{Text: "found it", NewPhase: true},
			fold.EventThoughtText{Text: " already"},
		}, events)
	})

	t.Run("non-thought text is ignored", func(t *testing.T) {
		t.Parallel()
		events := collect(t, respSeq(
			resp(&genai.Part{Text: "final answer"}),
			resp(&genai.Part{Thought: true, Text: "hm"}),
		))
		assert.Equal(t, []fold.Event{fold.EventThoughtText{Text: "hm"}}, events)
	})

	t.Run("empty candidates are skipped", func(t *testing.T) {
		t.Parallel()
		events := collect(t, respSeq(
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			resp(&genai.Part{Thought: true, Text: "hm"}),
		))
		assert.Len(t, events, 1)
	})

	t.Run("stream errors propagate", func(t *testing.T) {
		t.Parallel()
		want := errors.New("quota exceeded")
		it := func(yield func(*genai.GenerateContentResponse, error) bool) {
			yield(nil, want)
		}
		err := gemini.ConvertStream(it, func(fold.Event) {
			t.Fatal("no event expected")
		})
		assert.ErrorIs(t, err, want)
	})
}
