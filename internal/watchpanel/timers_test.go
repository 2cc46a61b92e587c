package watchpanel

import (
	"sync"
	"time"
)

// fakeTimers records scheduled highlight clears so tests decide when they fire.
type fakeTimers struct {
	mu      sync.Mutex
	pending []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (ft *fakeTimers) afterFunc(d time.Duration, f func()) stopper {
	ft.mu.Lock()
	defer ft.mu.Unlock()

	timer := &fakeTimer{d: d, f: f}
	ft.pending = append(ft.pending, timer)
	return timer
}

// fireAll runs every scheduled, not yet stopped timer.
func (ft *fakeTimers) fireAll() {
	ft.mu.Lock()
	pending := ft.pending
	ft.pending = nil
	ft.mu.Unlock()

	for _, timer := range pending {
		if !timer.stopped {
			timer.stopped = true
			timer.f()
		}
	}
}

func (ft *fakeTimers) count() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()

	return len(ft.pending)
}
