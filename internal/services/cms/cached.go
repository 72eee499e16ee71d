package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/firmsite/site-api/internal/services/cache"
)

// Cache keys for collection snapshots
const (
	keyServices     = "cms:services"
	keyTeamMembers  = "cms:team-members"
	keyBlogs        = "cms:blogs"
	keyTestimonials = "cms:testimonials"
	keyHeroSlides   = "cms:hero-slides:"
)

// Cached serves list calls from a cache and passes everything else through
type Cached struct {
	Source
	cache cache.Cache
	ttl   time.Duration
}

var (
	_ Source = (*Cached)(nil)
	_ Warmer = (*Cached)(nil)
)

// NewCached wraps a source with snapshot caching of its collections
func NewCached(source Source, c cache.Cache, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &Cached{Source: source, cache: c, ttl: ttl}
}

// cachedList loads key from the cache or calls fetch and stores the result
func cachedList[T any](ctx context.Context, c *Cached, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if data, ok := c.cache.Get(ctx, key); ok {
		var items []T
		if err := json.Unmarshal(data, &items); err == nil {
			return items, nil
		}
		log.Warn().Str("key", key).Msg("discarding unreadable cache entry")
		_ = c.cache.Delete(ctx, key)
	}

	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	store(ctx, c, key, items)
	return items, nil
}

func store[T any](ctx context.Context, c *Cached, key string, items []T) {
	data, err := json.Marshal(items)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to encode cache entry")
		return
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to store cache entry")
	}
}

// ListServices returns the cached service collection
func (c *Cached) ListServices(ctx context.Context) ([]Service, error) {
	return cachedList(ctx, c, keyServices, c.Source.ListServices)
}

// ListTeamMembers returns the cached team collection
func (c *Cached) ListTeamMembers(ctx context.Context) ([]TeamMember, error) {
	return cachedList(ctx, c, keyTeamMembers, c.Source.ListTeamMembers)
}

// ListBlogs returns the cached blog collection
func (c *Cached) ListBlogs(ctx context.Context) ([]Blog, error) {
	return cachedList(ctx, c, keyBlogs, c.Source.ListBlogs)
}

// ListTestimonials returns the cached testimonial collection
func (c *Cached) ListTestimonials(ctx context.Context) ([]Testimonial, error) {
	return cachedList(ctx, c, keyTestimonials, c.Source.ListTestimonials)
}

// ListHeroSlides returns the cached hero slides for a locale
func (c *Cached) ListHeroSlides(ctx context.Context, locale string) ([]HeroSlide, error) {
	return cachedList(ctx, c, keyHeroSlides+locale, func(ctx context.Context) ([]HeroSlide, error) {
		return c.Source.ListHeroSlides(ctx, locale)
	})
}

// Warm refetches the search collections and overwrites their snapshots.
// Both fetches must succeed before either snapshot is replaced.
func (c *Cached) Warm(ctx context.Context) error {
	var (
		services []Service
		team     []TeamMember
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		services, err = c.Source.ListServices(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		team, err = c.Source.ListTeamMembers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("warm cache: %w", err)
	}

	store(ctx, c, keyServices, services)
	store(ctx, c, keyTeamMembers, team)

	log.Debug().Int("services", len(services)).Int("team", len(team)).Msg("cms cache warmed")
	return nil
}
