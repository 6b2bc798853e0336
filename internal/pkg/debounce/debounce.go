package debounce

import (
	"sync"
	"time"
)

// Debouncer propagates the most recent value only after it has been stable
// for the configured delay. Every Set before the delay elapses cancels the
// pending timer and restarts the window.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	emit    func(T)
	stopped bool
}

func New[T any](delay time.Duration, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, emit: emit}
}

// Set schedules value for emission once the input has been quiet for the
// full delay. A zero or negative delay emits synchronously.
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.delay <= 0 {
		emit := d.emit
		d.mu.Unlock()
		emit(value)
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			d.emit(value)
		}
	})
	d.mu.Unlock()
}

// Stop cancels any pending emission. No timer survives Stop.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
