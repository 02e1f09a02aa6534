package bubbletea

// NewFrameMsg constructs a FrameMsg for tests.
func NewFrameMsg(fn func() bool, cancel func()) FrameMsg {
	return FrameMsg{fn: fn, cancel: cancel}
}
