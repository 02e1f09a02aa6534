package bubbletea

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fwojciec/fold"
)

// Interface compliance check.
var _ fold.Scheduler = (*Scheduler)(nil)

// Scheduler delivers animator ticks as Bubble Tea messages so the
// callbacks run on the program's update loop, never on a separate
// goroutine.
type Scheduler struct {
	mu sync.Mutex
	p  *tea.Program
}

// NewScheduler creates an unbound Scheduler. Bind it with SetProgram
// before events start flowing; ticks arriving earlier are dropped.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// SetProgram binds the program that receives tick messages.
func (s *Scheduler) SetProgram(p *tea.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = p
}

func (s *Scheduler) program() *tea.Program {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p
}

// Every implements fold.Scheduler. The ticker goroutine only posts
// messages; the callback itself runs when the model handles the
// FrameMsg.
func (s *Scheduler) Every(interval time.Duration, fn func() bool) (stop func()) {
	done := make(chan struct{})
	var once sync.Once
	cancel := func() { once.Do(func() { close(done) }) }

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if p := s.program(); p != nil {
					p.Send(FrameMsg{fn: fn, cancel: cancel})
				}
			}
		}
	}()
	return cancel
}

// FrameMsg carries one animator tick into the update loop.
type FrameMsg struct {
	fn     func() bool
	cancel func()
}

// Do runs the tick, cancelling the schedule when the callback asks to
// stop.
func (f FrameMsg) Do() {
	if !f.fn() {
		f.cancel()
	}
}
