package search

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/firmsite/site-api/internal/services/cms"
)

// CollectionSource provides the two searchable collections
type CollectionSource interface {
	ListServices(ctx context.Context) ([]cms.Service, error)
	ListTeamMembers(ctx context.Context) ([]cms.TeamMember, error)
}

// Fetcher retrieves both collections concurrently
type Fetcher struct {
	source  CollectionSource
	timeout time.Duration
}

// NewFetcher creates a fetcher. A zero timeout leaves the caller's deadline alone.
func NewFetcher(source CollectionSource, timeout time.Duration) *Fetcher {
	return &Fetcher{source: source, timeout: timeout}
}

// Fetch loads services and team members in parallel. Either failure cancels
// the other request and no partial result is returned.
func (f *Fetcher) Fetch(ctx context.Context) (*Collections, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	var (
		services []cms.Service
		team     []cms.TeamMember
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		services, err = f.source.ListServices(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		team, err = f.source.ListTeamMembers(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	if services == nil {
		services = []cms.Service{}
	}
	if team == nil {
		team = []cms.TeamMember{}
	}
	return &Collections{Services: services, Team: team}, nil
}
