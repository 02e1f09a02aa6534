package mock

import (
	"time"

	"github.com/fwojciec/fold"
)

// Interface compliance check.
var _ fold.Scheduler = (*Scheduler)(nil)

// Scheduler is a manually ticked test double for fold.Scheduler.
// Nothing runs until Tick is called, so tests control interleaving
// exactly.
type Scheduler struct {
	schedules []*schedule
}

type schedule struct {
	interval time.Duration
	fn       func() bool
	stopped  bool
}

// Every registers a schedule and returns its stop function.
func (s *Scheduler) Every(interval time.Duration, fn func() bool) (stop func()) {
	sc := &schedule{interval: interval, fn: fn}
	s.schedules = append(s.schedules, sc)
	return func() { sc.stopped = true }
}

// Tick invokes every live schedule once. A callback returning false
// cancels its own schedule.
func (s *Scheduler) Tick() {
	for _, sc := range s.schedules {
		if sc.stopped {
			continue
		}
		if !sc.fn() {
			sc.stopped = true
		}
	}
}

// Active returns the number of live schedules.
func (s *Scheduler) Active() int {
	n := 0
	for _, sc := range s.schedules {
		if !sc.stopped {
			n++
		}
	}
	return n
}
