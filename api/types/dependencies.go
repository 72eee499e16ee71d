package types

import (
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

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	Version     string
	Config      *config.Config
	DB          *database.DB
	Cache       cache.Cache
	CMS         cms.Source
	Search      *search.Service
	Sessions    *search.SessionStore
	Catalog     *i18n.Catalog
	Resolver    *i18n.Resolver
	Newsletter  *newsletter.Service
	HeroRotator *carousel.Rotator
	Scheduler   *scheduler.Scheduler

	// Closing is closed once the server starts shutting down
	Closing <-chan struct{}
}

// T translates key in the request language, falling back to the key itself
// when no catalog is wired
func (d *Dependencies) T(lang i18n.Language, key string, args ...any) string {
	if d == nil || d.Catalog == nil {
		return key
	}
	return d.Catalog.T(lang, key, args...)
}
