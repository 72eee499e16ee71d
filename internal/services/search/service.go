package search

import (
	"context"
	"errors"

	"github.com/firmsite/site-api/pkg/logging"
)

// Result is the full search view for one query state
type Result struct {
	QueryState
	State  State        `json:"state"`
	Counts Counts       `json:"counts"`
	View   PageView     `json:"view"`
	Pages  []PageMarker `json:"pages"`
}

// Service runs the fetch, filter and paginate pipeline per visitor session
type Service struct {
	fetcher  Fetchable
	sessions *SessionStore
	pageSize int
}

// Option configures a Service
type Option func(*Service)

// WithPageSize overrides the number of results per page
func WithPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// NewService creates a search service
func NewService(fetcher Fetchable, sessions *SessionStore, opts ...Option) *Service {
	s := &Service{
		fetcher:  fetcher,
		sessions: sessions,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PageSize returns the configured page size
func (s *Service) PageSize() int {
	return s.pageSize
}

// Search resolves the state for the session identified by sessionKey.
// A failed fetch yields a Result in the failed state together with an error
// wrapping ErrFetchFailed. ErrSuperseded is returned without a Result.
func (s *Service) Search(ctx context.Context, sessionKey string, q QueryState) (*Result, error) {
	q.Tab = ParseTab(string(q.Tab))
	q.Page = max(q.Page, 1)

	cols, err := s.sessions.Get(sessionKey).Resolve(ctx, s.fetcher, q.Query)
	switch {
	case errors.Is(err, ErrSuperseded):
		return nil, err
	case err != nil:
		logging.FromContext(ctx).Error().Err(err).Str("query", q.Query).Msg("search fetch failed")
		return s.build(q, FilteredSet{}, StateFailed), err
	case cols == nil:
		return s.build(q, FilteredSet{}, StateEmptyQuery), nil
	}

	set := Filter(*cols, q.Query)
	state := StateResults
	if set.Counts().All == 0 {
		state = StateNoResults
	}
	return s.build(q, set, state), nil
}

func (s *Service) build(q QueryState, set FilteredSet, state State) *Result {
	view := Paginate(set, q.Tab, q.Page, s.pageSize)

	pages := []PageMarker{}
	if view.TotalPages > 1 {
		pages = PageNumbers(view.TotalPages, view.Page)
	}

	return &Result{
		QueryState: q,
		State:      state,
		Counts:     set.Counts(),
		View:       view,
		Pages:      pages,
	}
}
