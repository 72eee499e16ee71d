package types

import (
	"github.com/firmsite/site-api/internal/services/carousel"
	"github.com/firmsite/site-api/internal/services/cms"
	"github.com/firmsite/site-api/internal/services/i18n"
	"github.com/firmsite/site-api/internal/services/search"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`            // One of the Status constants above
	Message string `json:"message,omitempty"` // Human-readable message in the request language
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`   // Error code
	Details any    `json:"details,omitempty"` // Additional error details
	// Back links to the page a visitor can return to
	Back *Link `json:"back,omitempty"`
}

// Link is a labelled navigation target
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// ServicesResponse lists practice areas
type ServicesResponse struct {
	BaseResponse
	Services []cms.Service `json:"services"`
	Count    int           `json:"count"`
}

// ServiceResponse is a single practice area
type ServiceResponse struct {
	BaseResponse
	Service *cms.Service `json:"service"`
	Back    Link         `json:"back"`
}

// TeamResponse lists team members
type TeamResponse struct {
	BaseResponse
	Team  []cms.TeamMember `json:"team"`
	Count int              `json:"count"`
}

// TeamMemberResponse is a single team member
type TeamMemberResponse struct {
	BaseResponse
	Member *cms.TeamMember `json:"member"`
	Back   Link            `json:"back"`
}

// BlogsResponse lists blog posts
type BlogsResponse struct {
	BaseResponse
	Blogs []cms.Blog `json:"blogs"`
	Count int        `json:"count"`
}

// BlogResponse is a single blog post
type BlogResponse struct {
	BaseResponse
	Blog      *cms.Blog `json:"blog"`
	Published string    `json:"published,omitempty"` // localized "Published on" line
	Back      Link      `json:"back"`
}

// TestimonialsResponse lists client testimonials
type TestimonialsResponse struct {
	BaseResponse
	Title        string            `json:"title"`
	Testimonials []cms.Testimonial `json:"testimonials"`
	Count        int               `json:"count"`
}

// HeroSlidesResponse lists the home page slides for one locale
type HeroSlidesResponse struct {
	BaseResponse
	Locale          string          `json:"locale"`
	Slides          []cms.HeroSlide `json:"slides"`
	Count           int             `json:"count"`
	Current         int             `json:"current"`
	IntervalSeconds float64         `json:"intervalSeconds"`
}

// SearchLinks are the navigation URLs of a search view
type SearchLinks struct {
	Tabs map[search.Tab]string `json:"tabs"`
	Prev string                `json:"prev,omitempty"`
	Next string                `json:"next,omitempty"`
	// Pages maps each numbered marker to its URL
	Pages map[int]string `json:"pages,omitempty"`
}

// SearchResponse is the search page payload
type SearchResponse struct {
	BaseResponse
	*search.Result
	Heading string      `json:"heading,omitempty"`
	Hint    string      `json:"hint,omitempty"`
	Links   SearchLinks `json:"links"`
}

// LocaleResponse describes the active language
type LocaleResponse struct {
	BaseResponse
	Language  i18n.Language     `json:"language"`
	Direction i18n.Direction    `json:"direction"`
	Source    i18n.Source       `json:"source"`
	Name      string            `json:"name"`
	Toggle    i18n.Language     `json:"toggle"` // the language the switcher offers
	Strings   map[string]string `json:"strings,omitempty"`
}

// SetLocaleRequest selects a language explicitly
type SetLocaleRequest struct {
	Language string `json:"language" binding:"required" example:"ar"`
}

// SubscribeRequest is the newsletter signup body
type SubscribeRequest struct {
	Email string `json:"email" example:"client@example.com"`
}

// SubscribeResponse acknowledges a newsletter signup
type SubscribeResponse struct {
	BaseResponse
	Email string `json:"email"`
}

// NeighborsResponse gives wrap-around neighbours of a testimonial
type NeighborsResponse struct {
	BaseResponse
	carousel.Neighbors
	Testimonial *cms.Testimonial `json:"testimonial,omitempty"`
}

// TeamCarouselResponse is the visible window of the team carousel
type TeamCarouselResponse struct {
	BaseResponse
	PerView int              `json:"perView"`
	Start   int              `json:"start"`
	Prev    int              `json:"prev"`
	Next    int              `json:"next"`
	Indices []int            `json:"indices"`
	Members []cms.TeamMember `json:"members"`
}

// HealthResponse for the health check endpoint
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	CMS       map[string]any `json:"cms"`
	Database  map[string]any `json:"database"`
	Cache     map[string]any `json:"cache,omitempty"`
	Scheduler any            `json:"scheduler,omitempty"`
	Sessions  int            `json:"sessions"`
}
