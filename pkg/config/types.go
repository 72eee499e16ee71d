package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string           `mapstructure:"environment"`
	Server       ServerConfig     `mapstructure:"server"`
	CMS          CMSConfig        `mapstructure:"cms"`
	Database     DatabaseConfig   `mapstructure:"database"`
	Cache        CacheConfig      `mapstructure:"cache"`
	Search       SearchConfig     `mapstructure:"search"`
	I18n         I18nConfig       `mapstructure:"i18n"`
	Carousel     CarouselConfig   `mapstructure:"carousel"`
	Newsletter   NewsletterConfig `mapstructure:"newsletter"`
	Scheduler    SchedulerConfig  `mapstructure:"scheduler"`
	RateLimiting RateLimitConfig  `mapstructure:"rate_limiting"`
	Security     SecurityConfig   `mapstructure:"security"`
	Logging      LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// CMSConfig contains headless CMS settings
type CMSConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	MediaBaseURL string        `mapstructure:"media_base_url"`
	APIToken     string        `mapstructure:"api_token"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RateLimit    int           `mapstructure:"rate_limit"`
	UserAgent    string        `mapstructure:"user_agent"`
	// Image shown when a team member has no photo
	FallbackImage string `mapstructure:"fallback_image"`
	// Image shown when a testimonial has no picture
	ClientFallbackImage string `mapstructure:"client_fallback_image"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path                  string        `mapstructure:"path"`
	MaxConnections        int           `mapstructure:"max_connections"`
	MaxIdleConnections    int           `mapstructure:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
	LogQueries            bool          `mapstructure:"log_queries"`
}

// CacheConfig contains cache settings
type CacheConfig struct {
	Backend    string            `mapstructure:"backend"` // memory | redis
	ContentTTL time.Duration     `mapstructure:"content_ttl"`
	Memory     MemoryCacheConfig `mapstructure:"memory"`
	Redis      RedisConfig       `mapstructure:"redis"`
}

// MemoryCacheConfig contains in-memory cache settings
type MemoryCacheConfig struct {
	MaxSizeMB       int64         `mapstructure:"max_size_mb"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// SearchConfig contains search page settings
type SearchConfig struct {
	PageSize      int           `mapstructure:"page_size"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`
	SessionIdle   time.Duration `mapstructure:"session_idle"`
	SessionCookie string        `mapstructure:"session_cookie"`
}

// I18nConfig contains language settings
type I18nConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
	CookieName      string `mapstructure:"cookie_name"`
	CookieMaxAge    int    `mapstructure:"cookie_max_age"`
}

// CarouselConfig contains carousel rotation settings
type CarouselConfig struct {
	HeroInterval        time.Duration `mapstructure:"hero_interval"`
	TestimonialInterval time.Duration `mapstructure:"testimonial_interval"`
}

// NewsletterConfig contains subscription settings
type NewsletterConfig struct {
	WelcomeEmail bool       `mapstructure:"welcome_email"`
	SMTP         SMTPConfig `mapstructure:"smtp"`
}

// SMTPConfig contains outgoing mail settings
type SMTPConfig struct {
	Host      string        `mapstructure:"host"`
	Port      int           `mapstructure:"port"`
	Username  string        `mapstructure:"username"`
	Password  string        `mapstructure:"password"`
	FromEmail string        `mapstructure:"from_email"`
	FromName  string        `mapstructure:"from_name"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// SchedulerConfig contains background job settings
type SchedulerConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	WarmSpec string `mapstructure:"warm_spec"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled   bool           `mapstructure:"enabled"`
	Endpoints map[string]int `mapstructure:"endpoints"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS  bool     `mapstructure:"enable_cors"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	CORSMethods []string `mapstructure:"cors_methods"`
	CORSHeaders []string `mapstructure:"cors_headers"`
	MaxBodySize int64    `mapstructure:"max_body_size"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
