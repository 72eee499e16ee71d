package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firmsite/site-api/internal/services/cms"
)

// countingFetcher returns a fixed snapshot and counts calls
type countingFetcher struct {
	calls atomic.Int32
	cols  *Collections
	err   error
}

func (f *countingFetcher) Fetch(ctx context.Context) (*Collections, error) {
	f.calls.Add(1)
	return f.cols, f.err
}

// gatedFetcher blocks each call until released or cancelled
type gatedFetcher struct {
	started chan struct{}
	release chan struct{}
	cols    *Collections
}

func newGatedFetcher(cols *Collections) *gatedFetcher {
	return &gatedFetcher{started: make(chan struct{}, 10), release: make(chan struct{}), cols: cols}
}

func (f *gatedFetcher) Fetch(ctx context.Context) (*Collections, error) {
	f.started <- struct{}{}
	select {
	case <-f.release:
		return f.cols, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func snapshot() *Collections {
	return &Collections{
		Services: []cms.Service{{ID: 1, Title: "Law Consulting"}},
		Team:     []cms.TeamMember{{ID: 2, Name: "Law Smith"}},
	}
}

func TestSession_ReusesSnapshotForSameQuery(t *testing.T) {
	f := &countingFetcher{cols: snapshot()}
	s := NewSession()

	for i := 0; i < 3; i++ {
		cols, err := s.Resolve(context.Background(), f, "Law")
		require.NoError(t, err)
		assert.Len(t, cols.Services, 1)
	}
	_, err := s.Resolve(context.Background(), f, "LAW")
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.calls.Load())

	// Whitespace is significant, so a padded query is a new search
	_, err = s.Resolve(context.Background(), f, " law ")
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestSession_RefetchesOnNewQuery(t *testing.T) {
	f := &countingFetcher{cols: snapshot()}
	s := NewSession()

	_, err := s.Resolve(context.Background(), f, "law")
	require.NoError(t, err)
	_, err = s.Resolve(context.Background(), f, "smith")
	require.NoError(t, err)

	assert.Equal(t, int32(2), f.calls.Load())
}

func TestSession_EmptyQueryClears(t *testing.T) {
	f := &countingFetcher{cols: snapshot()}
	s := NewSession()

	_, err := s.Resolve(context.Background(), f, "law")
	require.NoError(t, err)
	gen := s.Generation()

	cols, err := s.Resolve(context.Background(), f, "")
	require.NoError(t, err)
	assert.Nil(t, cols)
	assert.Greater(t, s.Generation(), gen)

	// Same query again after clearing fetches again
	_, err = s.Resolve(context.Background(), f, "law")
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestSession_FailureIsNotCached(t *testing.T) {
	f := &countingFetcher{err: ErrFetchFailed}
	s := NewSession()

	_, err := s.Resolve(context.Background(), f, "law")
	assert.ErrorIs(t, err, ErrFetchFailed)

	f.err = nil
	f.cols = snapshot()
	cols, err := s.Resolve(context.Background(), f, "law")
	require.NoError(t, err)
	assert.NotNil(t, cols)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestSession_NewQuerySupersedesInFlight(t *testing.T) {
	slow := newGatedFetcher(&Collections{Services: []cms.Service{{ID: 1, Title: "stale"}}})
	fast := &countingFetcher{cols: &Collections{Services: []cms.Service{{ID: 2, Title: "fresh"}}}}
	s := NewSession()

	staleErr := make(chan error, 1)
	go func() {
		_, err := s.Resolve(context.Background(), slow, "first")
		staleErr <- err
	}()
	<-slow.started

	cols, err := s.Resolve(context.Background(), fast, "second")
	require.NoError(t, err)
	assert.Equal(t, "fresh", cols.Services[0].Title)

	select {
	case err := <-staleErr:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded fetch was not cancelled")
	}

	// The late result never replaced the fresh snapshot
	cols, err = s.Resolve(context.Background(), fast, "second")
	require.NoError(t, err)
	assert.Equal(t, "fresh", cols.Services[0].Title)
	assert.Equal(t, int32(1), fast.calls.Load())
}

func TestSession_LateResultIsDiscarded(t *testing.T) {
	s := NewSession()
	slow := &ignoringFetcher{release: make(chan struct{}), started: make(chan struct{}, 1), cols: &Collections{Services: []cms.Service{{ID: 1, Title: "stale"}}}}

	staleErr := make(chan error, 1)
	go func() {
		_, err := s.Resolve(context.Background(), slow, "first")
		staleErr <- err
	}()
	<-slow.started

	_, err := s.Resolve(context.Background(), &countingFetcher{cols: snapshot()}, "")
	require.NoError(t, err)

	// The slow fetch ignores cancellation and completes anyway
	close(slow.release)
	assert.ErrorIs(t, <-staleErr, ErrSuperseded)

	f := &countingFetcher{cols: snapshot()}
	_, err = s.Resolve(context.Background(), f, "first")
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.calls.Load(), "stale result must not be cached")
}

// ignoringFetcher completes only when released, regardless of cancellation
type ignoringFetcher struct {
	started chan struct{}
	release chan struct{}
	cols    *Collections
}

func (f *ignoringFetcher) Fetch(ctx context.Context) (*Collections, error) {
	f.started <- struct{}{}
	<-f.release
	return f.cols, nil
}

func TestSession_ConcurrentSameQueryShareFetch(t *testing.T) {
	gated := newGatedFetcher(snapshot())
	s := NewSession()

	const callers = 5
	var wg sync.WaitGroup
	errs := make(chan error, callers)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := s.Resolve(context.Background(), gated, "law")
		errs <- err
	}()
	<-gated.started

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Resolve(context.Background(), gated, "law")
			errs <- err
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(gated.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, gated.started, 0, "only one fetch was started")
}

func TestSession_WaiterHonoursContext(t *testing.T) {
	gated := newGatedFetcher(snapshot())
	s := NewSession()

	go func() { _, _ = s.Resolve(context.Background(), gated, "law") }()
	<-gated.started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Resolve(ctx, gated, "law")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	close(gated.release)
}

func TestSession_CancelledLeaderDoesNotFailWaiters(t *testing.T) {
	gated := newGatedFetcher(snapshot())
	s := NewSession()

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := s.Resolve(leaderCtx, gated, "law")
		leaderErr <- err
	}()
	<-gated.started

	waiter := make(chan error, 1)
	go func() {
		cols, err := s.Resolve(context.Background(), gated, "law")
		if err == nil && len(cols.Services) != 1 {
			err = errors.New("unexpected snapshot")
		}
		waiter <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancelLeader()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)

	close(gated.release)
	select {
	case err := <-waiter:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("waiter never completed")
	}

	// The shared result became the session snapshot
	f := &countingFetcher{cols: snapshot()}
	_, err := s.Resolve(context.Background(), f, "law")
	require.NoError(t, err)
	assert.Equal(t, int32(0), f.calls.Load())
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore(time.Minute)
	defer store.Stop()

	a := store.Get("client-a")
	assert.Same(t, a, store.Get("client-a"))
	assert.NotSame(t, a, store.Get("client-b"))
	assert.Equal(t, 2, store.Len())

	store.Evict(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, store.Len())
}

func TestSessionStore_StopIsIdempotent(t *testing.T) {
	store := NewSessionStore(10 * time.Millisecond)
	store.Stop()
	store.Stop()
}
