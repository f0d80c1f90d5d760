// Package debounce provides per-key debouncing for rapid events such as
// keystrokes on form fields.
//
// Each key owns at most one pending call. A new Trigger for a key replaces the
// pending call and bumps the key's generation; a timer that fires for an older
// generation does nothing, so the last write always wins even when a stopped
// timer has already started running.
package debounce

import (
	"sync"
	"time"
)

type pending struct {
	timer *time.Timer
	gen   uint64
	fn    func()
}

// Keyed debounces calls independently per key. The zero value is not usable;
// create one with New.
type Keyed[K comparable] struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[K]*pending
	gens    map[K]uint64
	stopped bool
}

// New creates a keyed debouncer that runs calls after delay.
func New[K comparable](delay time.Duration) *Keyed[K] {
	return &Keyed[K]{
		delay:   delay,
		pending: make(map[K]*pending),
		gens:    make(map[K]uint64),
	}
}

// Delay returns the debounce delay.
func (d *Keyed[K]) Delay() time.Duration {
	return d.delay
}

// Trigger schedules fn for key after the delay, replacing any pending call for
// the same key. It returns the generation assigned to this call, or 0 after Stop.
func (d *Keyed[K]) Trigger(key K, fn func()) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return 0
	}

	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
	}

	gen := d.gens[key] + 1
	d.gens[key] = gen
	d.pending[key] = &pending{
		gen:   gen,
		fn:    fn,
		timer: time.AfterFunc(d.delay, func() { d.fire(key, gen) }),
	}
	return gen
}

func (d *Keyed[K]) fire(key K, gen uint64) {
	d.mu.Lock()
	p, ok := d.pending[key]
	if !ok || p.gen != gen {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	p.fn()
}

// Cancel drops the pending call for key, if any.
func (d *Keyed[K]) Cancel(key K) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
		delete(d.pending, key)
	}
}

// Flush runs the pending call for key immediately on the caller's goroutine.
// It reports whether there was anything to run.
func (d *Keyed[K]) Flush(key K) bool {
	d.mu.Lock()
	p, ok := d.pending[key]
	if ok {
		p.timer.Stop()
		delete(d.pending, key)
	}
	d.mu.Unlock()

	if !ok {
		return false
	}
	p.fn()
	return true
}

// FlushAll runs every pending call immediately, in no particular order.
func (d *Keyed[K]) FlushAll() {
	d.mu.Lock()
	calls := make([]func(), 0, len(d.pending))
	for key, p := range d.pending {
		p.timer.Stop()
		calls = append(calls, p.fn)
		delete(d.pending, key)
	}
	d.mu.Unlock()

	for _, fn := range calls {
		fn()
	}
}

// Pending reports whether key has a scheduled call.
func (d *Keyed[K]) Pending(key K) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[key]
	return ok
}

// Generation returns the number of times key has been triggered.
func (d *Keyed[K]) Generation(key K) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gens[key]
}

// Stop cancels every pending call. Later triggers are ignored.
func (d *Keyed[K]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, key)
	}
}
