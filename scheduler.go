package fold

import "time"

// Scheduler schedules repeating callbacks on the surface's logical
// thread. The callback returns false to cancel its own schedule. The
// returned stop function cancels the schedule and is safe to call
// more than once, or when the schedule has already self-cancelled.
type Scheduler interface {
	Every(interval time.Duration, fn func() bool) (stop func())
}
