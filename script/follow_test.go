package script_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/fold"
	"github.com/fwojciec/fold/script"
)

// eventRecorder collects delivered events across goroutines.
type eventRecorder struct {
	mu     sync.Mutex
	events []fold.Event
}

func (r *eventRecorder) record(e fold.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) snapshot() []fold.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]fold.Event(nil), r.events...)
}

func TestFollower(t *testing.T) {
	t.Parallel()

	t.Run("delivers existing then appended steps", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "events.jsonl")
		require.NoError(t, os.WriteFile(path, []byte("{\"type\":\"turn_started\"}\n"), 0o644))

		f, err := script.NewFollower(path)
		require.NoError(t, err)
		defer f.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		rec := &eventRecorder{}
		done := make(chan error, 1)
		go func() { done <- f.Feed()(ctx, rec.record) }()

		require.Eventually(t, func() bool {
			return len(rec.snapshot()) == 1
		}, 5*time.Second, 10*time.Millisecond)
		assert.Equal(t, fold.EventTurnStarted{}, rec.snapshot()[0])

		file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		_, err = file.WriteString("{\"type\":\"thought\",\"text\":\"hi\"}\n")
		require.NoError(t, err)
		require.NoError(t, file.Close())

		require.Eventually(t, func() bool {
			return len(rec.snapshot()) == 2
		}, 5*time.Second, 10*time.Millisecond)
		assert.Equal(t, fold.EventThoughtText{Text: "hi"}, rec.snapshot()[1])

		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})

	t.Run("ignores a partial trailing line until completed", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "events.jsonl")
		require.NoError(t, os.WriteFile(path, []byte("{\"type\":\"turn_st"), 0o644))

		f, err := script.NewFollower(path)
		require.NoError(t, err)
		defer f.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		rec := &eventRecorder{}
		go func() { _ = f.Feed()(ctx, rec.record) }()

		file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		_, err = file.WriteString("arted\"}\n")
		require.NoError(t, err)
		require.NoError(t, file.Close())

		require.Eventually(t, func() bool {
			return len(rec.snapshot()) == 1
		}, 5*time.Second, 10*time.Millisecond)
		assert.Equal(t, fold.EventTurnStarted{}, rec.snapshot()[0])
	})

	t.Run("skips malformed lines", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "events.jsonl")
		content := "{not json}\n{\"type\":\"turn_ended\"}\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		f, err := script.NewFollower(path)
		require.NoError(t, err)
		defer f.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		rec := &eventRecorder{}
		go func() { _ = f.Feed()(ctx, rec.record) }()

		require.Eventually(t, func() bool {
			return len(rec.snapshot()) == 1
		}, 5*time.Second, 10*time.Millisecond)
		assert.Equal(t, fold.EventTurnEnded{}, rec.snapshot()[0])
	})

	t.Run("works when the file does not exist yet", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "events.jsonl")

		f, err := script.NewFollower(path)
		require.NoError(t, err)
		defer f.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		rec := &eventRecorder{}
		go func() { _ = f.Feed()(ctx, rec.record) }()

		require.NoError(t, os.WriteFile(path, []byte("{\"type\":\"turn_started\"}\n"), 0o644))

		require.Eventually(t, func() bool {
			return len(rec.snapshot()) == 1
		}, 5*time.Second, 10*time.Millisecond)
	})
}
