package carousel

import (
	"context"
	"sync"
	"time"
)

// Rotator advances a cursor on a fixed interval and fans the new index out
// to subscribers. Slow subscribers miss ticks rather than block rotation.
type Rotator struct {
	interval time.Duration

	mu     sync.Mutex
	cursor Cursor
	subs   map[chan int]struct{}
}

// NewRotator creates a rotator over n slides
func NewRotator(n int, interval time.Duration) *Rotator {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Rotator{
		interval: interval,
		cursor:   NewCursor(n, 0),
		subs:     make(map[chan int]struct{}),
	}
}

// Interval returns the rotation period
func (r *Rotator) Interval() time.Duration {
	return r.interval
}

// Current returns the index currently shown
func (r *Rotator) Current() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursor.Current()
}

// Resize changes the slide count, keeping the current index when it still fits
func (r *Rotator) Resize(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursor = NewCursor(n, r.cursor.Current())
}

// Subscribe registers for index updates. The returned cancel func must be
// called to release the subscription.
func (r *Rotator) Subscribe() (<-chan int, func()) {
	ch := make(chan int, 1)

	r.mu.Lock()
	r.subs[ch] = struct{}{}
	r.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, ch)
			r.mu.Unlock()
		})
	}
}

// Advance moves to the next slide and notifies subscribers
func (r *Rotator) Advance() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cursor.Len() == 0 {
		return 0
	}
	r.cursor = r.cursor.Next()
	current := r.cursor.Current()

	for ch := range r.subs {
		select {
		case ch <- current:
		default:
		}
	}
	return current
}

// Run advances on every tick until ctx is done
func (r *Rotator) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Advance()
		case <-ctx.Done():
			return
		}
	}
}
