package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Config holds configuration for the CMS client
type Config struct {
	BaseURL      string
	MediaBaseURL string
	APIToken     string
	UserAgent    string
	Timeout      time.Duration
	// RequestsPerSecond bounds outbound traffic, 0 disables the limiter
	RequestsPerSecond int
	// FallbackImage is used for team members without a photo
	FallbackImage string
	// ClientFallbackImage is used for testimonials without a picture
	ClientFallbackImage string
}

// Client talks to the headless CMS REST API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
	userAgent  string
	limiter    *rate.Limiter
	normalize  normalizer
}

var _ Source = (*Client)(nil)

// envelope is the {"data": ..., "error": ...} wrapper of every CMS response
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Status  int    `json:"status"`
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient creates a new CMS client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:1337/api"
	}
	if cfg.MediaBaseURL == "" {
		cfg.MediaBaseURL = strings.TrimSuffix(strings.TrimRight(cfg.BaseURL, "/"), "/api")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "FirmSiteAPI/1.0"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.FallbackImage == "" {
		cfg.FallbackImage = "/images/fallback.jpg"
	}
	if cfg.ClientFallbackImage == "" {
		cfg.ClientFallbackImage = "/images/client-fallback.jpg"
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestsPerSecond)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiToken:   cfg.APIToken,
		userAgent:  cfg.UserAgent,
		limiter:    limiter,
		normalize: normalizer{
			mediaBaseURL:        cfg.MediaBaseURL,
			fallbackImage:       cfg.FallbackImage,
			clientFallbackImage: cfg.ClientFallbackImage,
		},
	}
}

// do performs one request and returns the decoded envelope
func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, body any) (*envelope, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	fullURL := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("cms request")

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)
	if errors.Is(decodeErr, io.EOF) {
		decodeErr = nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if decodeErr == nil && env.Error != nil && env.Error.Message != "" {
			apiErr.Message = env.Error.Message
		}
		return nil, apiErr
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("decoding response: %w: %v", ErrInvalidResponse, decodeErr)
	}

	return &env, nil
}

func (c *Client) list(ctx context.Context, endpoint string, params url.Values) ([]record, error) {
	env, err := c.do(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecords(env.Data)
}

func slugFilter(slug string) url.Values {
	params := url.Values{}
	params.Set("filters[slug][$eq]", slug)
	return params
}

// ListServices fetches all services
func (c *Client) ListServices(ctx context.Context) ([]Service, error) {
	records, err := c.list(ctx, "services", nil)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	services := make([]Service, 0, len(records))
	for _, r := range records {
		s := c.normalize.service(r)
		s.Description = nil
		services = append(services, s)
	}
	return services, nil
}

// GetServiceBySlug fetches one service including its description
func (c *Client) GetServiceBySlug(ctx context.Context, slug string) (*Service, error) {
	records, err := c.list(ctx, "services", slugFilter(slug))
	if err != nil {
		return nil, fmt.Errorf("get service %q: %w", slug, err)
	}
	if len(records) == 0 {
		return nil, NotFoundError{Resource: "service", ID: slug}
	}

	s := c.normalize.service(records[0])
	return &s, nil
}

// ListTeamMembers fetches all team members with their photos
func (c *Client) ListTeamMembers(ctx context.Context) ([]TeamMember, error) {
	params := url.Values{}
	params.Set("populate", "photo")

	records, err := c.list(ctx, "team-members", params)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}

	members := make([]TeamMember, 0, len(records))
	for _, r := range records {
		members = append(members, c.normalize.teamMember(r))
	}
	return members, nil
}

// GetTeamMember fetches a single team member by id
func (c *Client) GetTeamMember(ctx context.Context, id int) (*TeamMember, error) {
	params := url.Values{}
	params.Set("populate", "photo")

	records, err := c.list(ctx, "team-members/"+strconv.Itoa(id), params)
	if err != nil {
		if IsNotFound(err) {
			return nil, NotFoundError{Resource: "team member", ID: id}
		}
		return nil, fmt.Errorf("get team member %d: %w", id, err)
	}
	if len(records) == 0 {
		return nil, NotFoundError{Resource: "team member", ID: id}
	}

	m := c.normalize.teamMember(records[0])
	return &m, nil
}

// ListBlogs fetches all blog posts
func (c *Client) ListBlogs(ctx context.Context) ([]Blog, error) {
	params := url.Values{}
	params.Set("populate", "image")

	records, err := c.list(ctx, "blogs", params)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}

	blogs := make([]Blog, 0, len(records))
	for _, r := range records {
		b := c.normalize.blog(r)
		b.Content = nil
		blogs = append(blogs, b)
	}
	return blogs, nil
}

// GetBlogBySlug fetches one blog post with its full content
func (c *Client) GetBlogBySlug(ctx context.Context, slug string) (*Blog, error) {
	params := slugFilter(slug)
	params.Set("populate", "image")

	records, err := c.list(ctx, "blogs", params)
	if err != nil {
		return nil, fmt.Errorf("get blog %q: %w", slug, err)
	}
	if len(records) == 0 {
		return nil, NotFoundError{Resource: "blog", ID: slug}
	}

	b := c.normalize.blog(records[0])
	return &b, nil
}

// ListTestimonials fetches all client testimonials
func (c *Client) ListTestimonials(ctx context.Context) ([]Testimonial, error) {
	params := url.Values{}
	params.Set("populate", "image")

	records, err := c.list(ctx, "testimonials", params)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}

	testimonials := make([]Testimonial, 0, len(records))
	for _, r := range records {
		testimonials = append(testimonials, c.normalize.testimonial(r))
	}
	return testimonials, nil
}

// ListHeroSlides fetches the hero slides for a locale
func (c *Client) ListHeroSlides(ctx context.Context, locale string) ([]HeroSlide, error) {
	params := url.Values{}
	if locale != "" {
		params.Set("locale", locale)
	}
	params.Set("populate[image]", "true")
	params.Set("populate[video]", "true")

	env, err := c.do(ctx, http.MethodGet, "hero-slides", params, nil)
	if err != nil {
		return nil, fmt.Errorf("list hero slides: %w", err)
	}

	// Hero slides must come back as a list
	if !bytes.HasPrefix(bytes.TrimSpace(env.Data), []byte("[")) {
		return nil, fmt.Errorf("list hero slides: %w", ErrInvalidResponse)
	}

	records, err := decodeRecords(env.Data)
	if err != nil {
		return nil, fmt.Errorf("list hero slides: %w", err)
	}

	slides := make([]HeroSlide, 0, len(records))
	for _, r := range records {
		slides = append(slides, c.normalize.heroSlide(r))
	}
	return slides, nil
}

// CreateSubscriber registers an email address for the newsletter
func (c *Client) CreateSubscriber(ctx context.Context, email string) error {
	body := map[string]any{"data": map[string]string{"email": email}}
	if _, err := c.do(ctx, http.MethodPost, "subscribers", nil, body); err != nil {
		return fmt.Errorf("create subscriber: %w", err)
	}
	return nil
}

// Ping checks that the CMS answers a minimal services query
func (c *Client) Ping(ctx context.Context) error {
	params := url.Values{}
	params.Set("pagination[pageSize]", "1")
	if _, err := c.do(ctx, http.MethodGet, "services", params, nil); err != nil {
		return fmt.Errorf("ping cms: %w", err)
	}
	return nil
}
