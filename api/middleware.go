package api

import (
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/firmsite/site-api/api/types"
	"github.com/firmsite/site-api/internal/services/i18n"
	"github.com/firmsite/site-api/pkg/config"
	"github.com/firmsite/site-api/pkg/logging"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// limiterIdleTTL is how long an unused client limiter is kept
const limiterIdleTTL = 10 * time.Minute

// clientLimiter holds a rate limiter and its last accessed time in UnixNano
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

func (cl *clientLimiter) touch(now time.Time) {
	cl.lastSeen.Store(now.UnixNano())
}

func (cl *clientLimiter) idleFor(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, cl.lastSeen.Load()))
}

// CORS builds the cross-origin policy from the security settings
func CORS(cfg config.SecurityConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  cfg.CORSMethods,
		AllowHeaders:  cfg.CORSHeaders,
		ExposeHeaders: []string{RequestIDHeader, "Content-Language"},
		MaxAge:        24 * time.Hour,
	}
	if len(corsCfg.AllowMethods) == 0 {
		corsCfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}
	}
	if len(corsCfg.AllowHeaders) == 0 {
		corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept-Language"}
	}

	wildcard := len(cfg.CORSOrigins) == 0
	for _, o := range cfg.CORSOrigins {
		if o == "*" {
			wildcard = true
		}
	}
	if wildcard {
		corsCfg.AllowAllOrigins = true
	} else {
		// Explicit origins may send the language and session cookies
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}

	return cors.New(corsCfg)
}

func RequestSizeLimit() gin.HandlerFunc {
	return RequestSizeLimitWithSize(1024 * 1024)
}

func RequestSizeLimitWithSize(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = 1024 * 1024
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost ||
			c.Request.Method == http.MethodPut ||
			c.Request.Method == http.MethodPatch {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// PerClientRateLimit limits each client IP to rps requests per second
func PerClientRateLimit(rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once, rps int, burst int) gin.HandlerFunc {
	cleanupInitialized.Do(func() {
		go cleanupOldRateLimiters(rateLimiters, cleanupStop)
	})
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = rps * 2
	}

	return func(c *gin.Context) {
		// Limiters are shared across groups, so the key includes the limit
		key := c.ClientIP() + "|" + strconv.Itoa(rps)

		limiterInterface, _ := rateLimiters.LoadOrStore(key, &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(rps), burst),
		})

		cl := limiterInterface.(*clientLimiter)
		cl.touch(time.Now())

		if !cl.limiter.Allow() {
			logging.FromContext(c.Request.Context()).Warn().
				Str("client_ip", c.ClientIP()).
				Str("path", c.FullPath()).
				Msg("rate limit exceeded")
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Rate limit exceeded. Please slow down your requests.",
				Error:   "API_RATE_LIMIT",
			})
			return
		}
		c.Next()
	}
}

func cleanupOldRateLimiters(rateLimiters *sync.Map, cleanupStop chan struct{}) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			pruneRateLimiters(rateLimiters, now)
		case <-cleanupStop:
			return
		}
	}
}

// pruneRateLimiters drops limiters idle longer than limiterIdleTTL
func pruneRateLimiters(rateLimiters *sync.Map, now time.Time) {
	rateLimiters.Range(func(key, value any) bool {
		if value.(*clientLimiter).idleFor(now) > limiterIdleTTL {
			rateLimiters.Delete(key)
		}
		return true
	})
}

// RequestID assigns every request an id, echoes it in the response and
// attaches a request-scoped logger to the request context
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}

		c.Set(types.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// Logger writes one structured line per request
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		logger := logging.FromContext(c.Request.Context())

		var event *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			event = logger.Error()
		case status >= http.StatusBadRequest:
			event = logger.Warn()
		default:
			event = logger.Info()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Int("size", c.Writer.Size()).
			Msg("request")
	}
}

// Locale resolves the request language from the lang query parameter, the
// language cookie and Accept-Language, in that order
func Locale(resolver *i18n.Resolver, cookieName string) gin.HandlerFunc {
	if cookieName == "" {
		cookieName = "lang"
	}
	return func(c *gin.Context) {
		cookieLang, _ := c.Cookie(cookieName)
		prefs := resolver.Resolve(c.Query("lang"), cookieLang, c.GetHeader("Accept-Language"))

		c.Set(types.PreferencesKey, prefs)
		c.Header("Content-Language", string(prefs.Language))
		c.Header("Vary", "Accept-Language, Cookie")
		c.Next()
	}
}

// ClientSession gives each visitor a stable id cookie used to key per-visitor
// state such as search sessions
func ClientSession(cookieName string, maxAge int) gin.HandlerFunc {
	if cookieName == "" {
		cookieName = "site_sid"
	}
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, id, maxAge, "/", "", false, true)
		}
		c.Set(types.ClientIDKey, id)
		c.Next()
	}
}
