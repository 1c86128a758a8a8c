package state

import (
	"sync"
	"time"
)

// Clock supplies the current time. The real implementation wraps
// time.Now; tests substitute a manual clock to drive expiry and
// snapshot windows deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// Debouncer coalesces rapid calls into a single trailing invocation.
// Schedule replaces any pending invocation so only the last function
// scheduled within the window runs.
type Debouncer interface {
	Schedule(fn func())
	Flush()
	Stop()
}

// timerDebouncer is the production Debouncer, built on time.AfterFunc.
type timerDebouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func()
}

// NewDebouncer returns a Debouncer with the given trailing delay.
func NewDebouncer(delay time.Duration) Debouncer {
	return &timerDebouncer{delay: delay}
}

func (d *timerDebouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = fn
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		run := d.pending
		d.pending = nil
		d.timer = nil
		d.mu.Unlock()
		if run != nil {
			run()
		}
	})
}

// Flush runs any pending invocation immediately.
func (d *timerDebouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	run := d.pending
	d.pending = nil
	d.mu.Unlock()
	if run != nil {
		run()
	}
}

// Stop cancels any pending invocation without running it.
func (d *timerDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}
