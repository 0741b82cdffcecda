package watcher

import (
	"sync"
	"time"
)

// debouncer coalesces events per path: an event is delivered once no new
// event for its path has arrived for delay, carrying every op seen.
type debouncer struct {
	delay time.Duration
	out   chan<- Event

	mu      sync.Mutex
	pending map[string]*pendingEvent
	closed  bool
	dropped int
}

type pendingEvent struct {
	event Event
	timer *time.Timer
}

func newDebouncer(delay time.Duration, out chan<- Event) *debouncer {
	return &debouncer{delay: delay, out: out, pending: make(map[string]*pendingEvent)}
}

func (d *debouncer) add(ev Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	if d.delay <= 0 {
		d.send(ev)
		return
	}
	if p, ok := d.pending[ev.Path]; ok {
		p.event.Op |= ev.Op
		p.timer.Reset(d.delay)
		return
	}
	d.pending[ev.Path] = &pendingEvent{
		event: ev,
		timer: time.AfterFunc(d.delay, func() { d.fire(ev.Path) }),
	}
}

func (d *debouncer) fire(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.pending[path]
	if !ok || d.closed {
		return
	}
	delete(d.pending, path)
	d.send(p.event)
}

// send delivers without blocking; the caller holds mu, so stop cannot
// close out underneath it.
func (d *debouncer) send(ev Event) {
	select {
	case d.out <- ev:
	default:
		d.dropped++
	}
}

// flush delivers every pending event now.
func (d *debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for path, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, path)
		if !d.closed {
			d.send(p.event)
		}
	}
}

// stop cancels pending events. Nothing is sent after it returns.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	for path, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, path)
	}
}

func (d *debouncer) pendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
