package anim

import (
	"sync"
	"time"
)

// Host schedules frames. RequestFrame runs fn at the next paint
// opportunity and After runs fn once d elapsed.
type Host interface {
	RequestFrame(fn func())
	After(d time.Duration, fn func())
}

// Immediate runs callbacks synchronously on the calling goroutine. Nested
// requests are queued and drained by the outermost call, so a whole cycle
// completes before the first request returns. Pauses are skipped.
type Immediate struct {
	queue   []func()
	running bool
}

var _ Host = (*Immediate)(nil)

func (h *Immediate) RequestFrame(fn func()) {
	h.queue = append(h.queue, fn)
	if h.running {
		return
	}
	h.running = true
	defer func() { h.running = false }()
	for len(h.queue) > 0 {
		next := h.queue[0]
		h.queue = h.queue[1:]
		next()
	}
}

func (h *Immediate) After(_ time.Duration, fn func()) { h.RequestFrame(fn) }

// Ticker runs frames on timers at a fixed frame interval.
type Ticker struct {
	interval time.Duration
	mu       sync.Mutex
	timers   map[*time.Timer]struct{}
	stopped  bool
}

var _ Host = (*Ticker)(nil)

// NewTicker returns a host producing fps frames per second.
func NewTicker(fps int) *Ticker {
	if fps <= 0 {
		fps = 60
	}
	return &Ticker{
		interval: time.Second / time.Duration(fps),
		timers:   map[*time.Timer]struct{}{},
	}
}

func (t *Ticker) RequestFrame(fn func()) { t.After(t.interval, fn) }

func (t *Ticker) After(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	var tm *time.Timer
	tm = time.AfterFunc(d, func() {
		t.mu.Lock()
		delete(t.timers, tm)
		stopped := t.stopped
		t.mu.Unlock()
		if !stopped {
			fn()
		}
	})
	t.timers[tm] = struct{}{}
}

// Stop cancels pending frames. Later requests are dropped.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	for tm := range t.timers {
		tm.Stop()
	}
	clear(t.timers)
}
