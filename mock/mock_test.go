package mock_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/fold"
	"github.com/fwojciec/fold/mock"
)

func TestSurface(t *testing.T) {
	t.Parallel()

	t.Run("delegates to the function fields", func(t *testing.T) {
		t.Parallel()
		var gotID string
		s := &mock.Surface{
			CreateOrUpdateFragmentFn: func(requestID int, fragmentID string, frag fold.Fragment) {
				gotID = fragmentID
			},
			FragmentRangeFn: func(requestID int, fragmentID string) (fold.Range, error) {
				return fold.Range{Start: 1, End: 2}, nil
			},
			LiveFn: func() bool { return false },
		}

		s.CreateOrUpdateFragment(1, "frag", fold.Fragment{})
		assert.Equal(t, "frag", gotID)

		r, err := s.FragmentRange(1, "frag")
		require.NoError(t, err)
		assert.Equal(t, fold.Range{Start: 1, End: 2}, r)

		assert.False(t, s.Live())
	})

	t.Run("nil fields are safe", func(t *testing.T) {
		t.Parallel()
		s := &mock.Surface{}

		assert.NotPanics(t, func() {
			s.CreateOrUpdateFragment(1, "frag", fold.Fragment{})
			s.SetInvisible(fold.Range{}, true)
			s.SetIndent(fold.Range{}, "  ")
		})

		_, err := s.FragmentRange(1, "frag")
		assert.ErrorIs(t, err, fold.ErrFragmentNotFound)
		assert.True(t, s.Live())
	})

	t.Run("propagates errors", func(t *testing.T) {
		t.Parallel()
		want := errors.New("boom")
		s := &mock.Surface{
			FragmentRangeFn: func(int, string) (fold.Range, error) {
				return fold.Range{}, want
			},
		}
		_, err := s.FragmentRange(1, "frag")
		assert.ErrorIs(t, err, want)
	})
}

func TestScheduler(t *testing.T) {
	t.Parallel()

	t.Run("runs nothing until ticked", func(t *testing.T) {
		t.Parallel()
		sched := &mock.Scheduler{}
		runs := 0
		sched.Every(time.Millisecond, func() bool {
			runs++
			return true
		})
		assert.Equal(t, 0, runs)
		sched.Tick()
		sched.Tick()
		assert.Equal(t, 2, runs)
	})

	t.Run("stop cancels the schedule", func(t *testing.T) {
		t.Parallel()
		sched := &mock.Scheduler{}
		runs := 0
		stop := sched.Every(time.Millisecond, func() bool {
			runs++
			return true
		})
		require.Equal(t, 1, sched.Active())
		stop()
		assert.Equal(t, 0, sched.Active())
		sched.Tick()
		assert.Equal(t, 0, runs)
	})

	t.Run("returning false cancels the schedule", func(t *testing.T) {
		t.Parallel()
		sched := &mock.Scheduler{}
		runs := 0
		sched.Every(time.Millisecond, func() bool {
			runs++
			return false
		})
		sched.Tick()
		sched.Tick()
		assert.Equal(t, 1, runs)
		assert.Equal(t, 0, sched.Active())
	})

	t.Run("ticks every live schedule", func(t *testing.T) {
		t.Parallel()
		sched := &mock.Scheduler{}
		var order []string
		sched.Every(time.Millisecond, func() bool {
			order = append(order, "a")
			return true
		})
		sched.Every(time.Millisecond, func() bool {
			order = append(order, "b")
			return true
		})
		sched.Tick()
		assert.Equal(t, []string{"a", "b"}, order)
	})
}
