package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides (SITE_SERVER_PORT, ...)
const EnvPrefix = "SITE"

// DefaultConfigPath is where the optional settings file is looked up
const DefaultConfigPath = "./config/settings.yaml"

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		initErr = load(DefaultConfigPath)
	})

	return initErr
}

// load sets defaults, wires env overrides and reads the optional config file
func load(configPath string) error {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configPath = filepath.Clean(configPath)
	viper.SetConfigFile(configPath)

	if err := viper.ReadInConfig(); err != nil {
		// A missing file means defaults and env vars only
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	if err := validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if _, err := url.ParseRequestURI(viper.GetString("cms.base_url")); err != nil {
		return fmt.Errorf("invalid cms.base_url: %w", err)
	}

	switch viper.GetString("cache.backend") {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid cache backend: %q", viper.GetString("cache.backend"))
	}

	switch viper.GetString("i18n.default_language") {
	case "en", "ar":
	default:
		return fmt.Errorf("unsupported default language: %q", viper.GetString("i18n.default_language"))
	}

	// Auto-correct page size, the search page assumes at least one item per page
	if viper.GetInt("search.page_size") <= 0 {
		viper.Set("search.page_size", 5)
	}

	if viper.GetString("database.path") == "" {
		log.Warn().Msg("no database path configured, subscriptions will not be mirrored locally")
	}

	if viper.GetBool("newsletter.welcome_email") && viper.GetString("newsletter.smtp.host") == "" {
		env := viper.GetString("environment")
		if env == "production" || env == "prod" {
			return fmt.Errorf("newsletter.welcome_email requires newsletter.smtp.host")
		}
		log.Warn().Msg("welcome email enabled without SMTP host, disabling it")
		viper.Set("newsletter.welcome_email", false)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.CMS.BaseURL == "" {
		return fmt.Errorf("cms base url is required")
	}

	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("redis cache backend requires cache.redis.addr")
	}

	if c.Search.PageSize <= 0 {
		c.Search.PageSize = 5
	}

	if c.I18n.DefaultLanguage == "" {
		c.I18n.DefaultLanguage = "en"
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	// Zero leaves long-lived SSE responses open
	viper.SetDefault("server.write_timeout", 0)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// CMS defaults
	viper.SetDefault("cms.base_url", "http://localhost:1337/api")
	viper.SetDefault("cms.media_base_url", "http://localhost:1337")
	viper.SetDefault("cms.api_token", "")
	viper.SetDefault("cms.timeout", 10*time.Second)
	viper.SetDefault("cms.rate_limit", 20)
	viper.SetDefault("cms.user_agent", "FirmSiteAPI/1.0")
	viper.SetDefault("cms.fallback_image", "/images/fallback.jpg")
	viper.SetDefault("cms.client_fallback_image", "/images/client-fallback.jpg")

	// Database defaults
	viper.SetDefault("database.path", "./data/site.db")
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", 30*time.Minute)
	viper.SetDefault("database.log_queries", false)

	// Cache defaults
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.content_ttl", 5*time.Minute)
	viper.SetDefault("cache.memory.max_size_mb", 64)
	viper.SetDefault("cache.memory.cleanup_interval", 1*time.Minute)
	viper.SetDefault("cache.redis.addr", "localhost:6379")
	viper.SetDefault("cache.redis.db", 0)
	viper.SetDefault("cache.redis.key_prefix", "site:")

	// Search defaults
	viper.SetDefault("search.page_size", 5)
	viper.SetDefault("search.fetch_timeout", 15*time.Second)
	viper.SetDefault("search.session_idle", 30*time.Minute)
	viper.SetDefault("search.session_cookie", "site_sid")

	// Language defaults
	viper.SetDefault("i18n.default_language", "en")
	viper.SetDefault("i18n.cookie_name", "lang")
	viper.SetDefault("i18n.cookie_max_age", 365*24*60*60)

	// Carousel defaults
	viper.SetDefault("carousel.hero_interval", 5*time.Second)
	viper.SetDefault("carousel.testimonial_interval", 8*time.Second)

	// Newsletter defaults
	viper.SetDefault("newsletter.welcome_email", false)
	viper.SetDefault("newsletter.smtp.port", 587)
	viper.SetDefault("newsletter.smtp.from_name", "Law Firm")
	viper.SetDefault("newsletter.smtp.timeout", 15*time.Second)

	// Scheduler defaults
	viper.SetDefault("scheduler.enabled", true)
	viper.SetDefault("scheduler.warm_spec", "@every 10m")

	// Rate limiting defaults (requests per second per client)
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.endpoints", map[string]int{
		"search":      5,
		"subscribers": 1,
		"default":     20,
	})

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})
	viper.SetDefault("security.cors_methods", []string{"GET", "POST", "PUT", "OPTIONS"})
	viper.SetDefault("security.cors_headers", []string{"Content-Type", "Accept-Language", "X-Request-ID"})
	viper.SetDefault("security.max_body_size", 1048576)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}
