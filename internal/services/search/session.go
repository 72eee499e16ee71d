package search

import (
	"context"
	"sync"
	"time"
)

// Fetchable is anything that can produce a fresh collections snapshot
type Fetchable interface {
	Fetch(ctx context.Context) (*Collections, error)
}

// Session holds one visitor's search snapshot. The snapshot is only replaced
// when the query text changes to a new non-empty value, so tab and page
// changes reuse it. Every new query bumps the generation; a fetch that
// finishes under an older generation is discarded.
type Session struct {
	mu         sync.Mutex
	generation uint64
	query      string
	snapshot   *Collections
	pending    *inflight
	lastUsed   time.Time
}

type inflight struct {
	query  string
	gen    uint64
	done   chan struct{}
	cols   *Collections
	err    error
	cancel context.CancelFunc
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{lastUsed: time.Now()}
}

// Generation returns the current generation counter
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// LastUsed reports when the session was last resolved
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// supersedeLocked cancels any in-flight fetch and starts a new generation
func (s *Session) supersedeLocked() {
	if s.pending != nil {
		s.pending.cancel()
		s.pending = nil
	}
	s.generation++
}

// Resolve returns the snapshot for query. An empty query clears the session
// and returns nil. Concurrent calls for the same query share one fetch.
func (s *Session) Resolve(ctx context.Context, f Fetchable, query string) (*Collections, error) {
	q := NormalizeQuery(query)

	s.mu.Lock()
	s.lastUsed = time.Now()

	if q == "" {
		s.supersedeLocked()
		s.query = ""
		s.snapshot = nil
		s.mu.Unlock()
		return nil, nil
	}

	if s.snapshot != nil && s.query == q {
		snap := s.snapshot
		s.mu.Unlock()
		return snap, nil
	}

	if s.pending != nil && s.pending.query == q {
		p := s.pending
		s.mu.Unlock()
		return wait(ctx, p)
	}

	s.supersedeLocked()
	// The fetch outlives the request that started it; only a newer query
	// cancels it.
	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p := &inflight{query: q, gen: s.generation, done: make(chan struct{}), cancel: cancel}
	s.pending = p
	s.mu.Unlock()

	go s.fetch(fetchCtx, f, p)

	return wait(ctx, p)
}

// fetch runs one snapshot fetch and publishes its outcome to every waiter
func (s *Session) fetch(ctx context.Context, f Fetchable, p *inflight) {
	cols, err := f.Fetch(ctx)
	p.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.generation != p.gen:
		p.err = ErrSuperseded
	case err != nil:
		s.pending = nil
		s.query = ""
		s.snapshot = nil
		p.err = err
	default:
		s.pending = nil
		s.query = p.query
		s.snapshot = cols
		p.cols = cols
	}
	close(p.done)
}

func wait(ctx context.Context, p *inflight) (*Collections, error) {
	select {
	case <-p.done:
		if p.err != nil {
			return nil, p.err
		}
		return p.cols, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// SessionStore maps client keys to sessions and drops idle ones
type SessionStore struct {
	sessions sync.Map
	idle     time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSessionStore creates a store that evicts sessions unused for idle
func NewSessionStore(idle time.Duration) *SessionStore {
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	store := &SessionStore{idle: idle, stopCh: make(chan struct{})}

	store.wg.Add(1)
	go store.cleanup(idle / 2)

	return store
}

// Get returns the session for key, creating it on first use
func (s *SessionStore) Get(key string) *Session {
	if v, ok := s.sessions.Load(key); ok {
		return v.(*Session)
	}
	v, _ := s.sessions.LoadOrStore(key, NewSession())
	return v.(*Session)
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	n := 0
	s.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Evict removes sessions idle longer than the configured duration
func (s *SessionStore) Evict(now time.Time) {
	s.sessions.Range(func(key, value any) bool {
		if now.Sub(value.(*Session).LastUsed()) > s.idle {
			s.sessions.Delete(key)
		}
		return true
	})
}

// Stop ends the cleanup loop
func (s *SessionStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

func (s *SessionStore) cleanup(interval time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			s.Evict(now)
		case <-s.stopCh:
			return
		}
	}
}
