package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/firmsite/site-api/api/types"
	"github.com/firmsite/site-api/internal/database"
	"github.com/firmsite/site-api/internal/services/cache"
	"github.com/firmsite/site-api/internal/services/carousel"
	"github.com/firmsite/site-api/internal/services/cms"
	"github.com/firmsite/site-api/internal/services/i18n"
	"github.com/firmsite/site-api/internal/services/newsletter"
	"github.com/firmsite/site-api/internal/services/scheduler"
	"github.com/firmsite/site-api/internal/services/search"
	"github.com/firmsite/site-api/pkg/config"
)

// newCMSClient builds the CMS client from configuration
func newCMSClient(cfg *config.Config) *cms.Client {
	return cms.NewClient(cms.Config{
		BaseURL:             cfg.CMS.BaseURL,
		MediaBaseURL:        cfg.CMS.MediaBaseURL,
		APIToken:            cfg.CMS.APIToken,
		UserAgent:           cfg.CMS.UserAgent,
		Timeout:             cfg.CMS.Timeout,
		RequestsPerSecond:   cfg.CMS.RateLimit,
		FallbackImage:       cfg.CMS.FallbackImage,
		ClientFallbackImage: cfg.CMS.ClientFallbackImage,
	})
}

// buildDependencies wires every service the handlers use. The returned
// cleanup releases them in reverse order.
func buildDependencies(ctx context.Context, cfg *config.Config) (*types.Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*types.Dependencies, func(), error) {
		cleanup()
		return nil, nil, err
	}

	deps := &types.Dependencies{Version: Version, Config: cfg}

	// Content source with snapshot caching
	contentCache, stopCache, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize cache: %w", err))
	}
	closers = append(closers, stopCache)
	cached := cms.NewCached(newCMSClient(cfg), contentCache, cfg.Cache.ContentTTL)
	deps.Cache = contentCache
	deps.CMS = cached

	// Search
	deps.Sessions = search.NewSessionStore(cfg.Search.SessionIdle)
	closers = append(closers, deps.Sessions.Stop)
	deps.Search = search.NewService(
		search.NewFetcher(cached, cfg.Search.FetchTimeout),
		deps.Sessions,
		search.WithPageSize(cfg.Search.PageSize),
	)

	// Language
	catalog, err := i18n.LoadCatalog()
	if err != nil {
		return fail(fmt.Errorf("failed to load translations: %w", err))
	}
	deps.Catalog = catalog
	defLang, _ := i18n.Parse(cfg.I18n.DefaultLanguage)
	deps.Resolver = i18n.NewResolver(defLang)

	// Newsletter, mirrored locally when a database is configured
	var newsletterOpts []newsletter.Option
	if cfg.Database.Path != "" {
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			return fail(fmt.Errorf("failed to initialize database: %w", err))
		}
		closers = append(closers, func() { _ = db.Close() })
		if err := db.Migrate(); err != nil {
			return fail(fmt.Errorf("failed to migrate database: %w", err))
		}
		deps.DB = db
		newsletterOpts = append(newsletterOpts, newsletter.WithRepository(newsletter.NewRepository(db.DB)))
	}
	if cfg.Newsletter.WelcomeEmail {
		newsletterOpts = append(newsletterOpts, newsletter.WithMailer(newsletter.NewSMTPMailer(cfg.Newsletter.SMTP, catalog)))
	}
	deps.Newsletter = newsletter.NewService(cached, newsletterOpts...)

	// Hero carousel; the slide count is learned on the first hero-slides request
	deps.HeroRotator = carousel.NewRotator(0, cfg.Carousel.HeroInterval)

	// Cache warm-up
	if cfg.Scheduler.Enabled {
		sched, err := scheduler.New(cached, cfg.Scheduler.WarmSpec, cfg.Search.FetchTimeout)
		if err != nil {
			return fail(err)
		}
		deps.Scheduler = sched
	}

	log.Info().
		Str("cms", cfg.CMS.BaseURL).
		Str("cache", cfg.Cache.Backend).
		Bool("database", deps.DB != nil).
		Bool("scheduler", deps.Scheduler != nil).
		Bool("welcome_email", cfg.Newsletter.WelcomeEmail).
		Msg("dependencies initialized")

	return deps, cleanup, nil
}
