package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/firmsite/site-api/api/types"
	"github.com/firmsite/site-api/internal/services/i18n"
	"github.com/firmsite/site-api/pkg/config"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		cfg             config.SecurityConfig
		method          string
		origin          string
		expectedStatus  int
		expectedHeaders map[string]string
	}{
		{
			name:           "wildcard preflight",
			cfg:            config.SecurityConfig{CORSOrigins: []string{"*"}},
			method:         http.MethodOptions,
			origin:         "https://visitor.test",
			expectedStatus: http.StatusNoContent,
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin": "*",
			},
		},
		{
			name:           "no origins configured allows all",
			cfg:            config.SecurityConfig{},
			method:         http.MethodGet,
			origin:         "https://visitor.test",
			expectedStatus: http.StatusOK,
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin": "*",
			},
		},
		{
			name:           "explicit origin allowed with credentials",
			cfg:            config.SecurityConfig{CORSOrigins: []string{"https://firm.test"}},
			method:         http.MethodGet,
			origin:         "https://firm.test",
			expectedStatus: http.StatusOK,
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin":      "https://firm.test",
				"Access-Control-Allow-Credentials": "true",
			},
		},
		{
			name:           "unknown origin rejected",
			cfg:            config.SecurityConfig{CORSOrigins: []string{"https://firm.test"}},
			method:         http.MethodGet,
			origin:         "https://evil.test",
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORS(tt.cfg))
			router.Any("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/test", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			for header, expectedValue := range tt.expectedHeaders {
				assert.Equal(t, expectedValue, w.Header().Get(header), "Header: %s", header)
			}
		})
	}
}

func TestRequestSizeLimitWithSize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	customLimit := int64(512 * 1024)

	tests := []struct {
		name           string
		bodySize       int
		expectedStatus int
	}{
		{name: "request under custom limit", bodySize: 256 * 1024, expectedStatus: http.StatusOK},
		{name: "request over custom limit", bodySize: 1024 * 1024, expectedStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestSizeLimitWithSize(customLimit))
			router.POST("/test", func(c *gin.Context) {
				if _, err := io.ReadAll(c.Request.Body); err != nil {
					c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
					return
				}
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("a", tt.bodySize)))
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestPerClientRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name              string
		requestCount      int
		requestsPerSecond int
		burstSize         int
		expectSomeBlocked bool
	}{
		{name: "requests under rate limit", requestCount: 3, requestsPerSecond: 10, burstSize: 5},
		{name: "burst requests", requestCount: 6, requestsPerSecond: 2, burstSize: 3, expectSomeBlocked: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rateLimiters := &sync.Map{}
			cleanupStop := make(chan struct{})
			defer close(cleanupStop)

			router := gin.New()
			router.Use(PerClientRateLimit(rateLimiters, cleanupStop, &sync.Once{}, tt.requestsPerSecond, tt.burstSize))
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			successCount, blockedCount := 0, 0
			for i := 0; i < tt.requestCount; i++ {
				w := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "/test", nil)
				req.RemoteAddr = "127.0.0.1:12345"
				router.ServeHTTP(w, req)

				switch w.Code {
				case http.StatusOK:
					successCount++
				case http.StatusTooManyRequests:
					blockedCount++
					assert.Equal(t, "1", w.Header().Get("Retry-After"))
					assert.Contains(t, w.Body.String(), "API_RATE_LIMIT")
				}
			}

			if tt.expectSomeBlocked {
				assert.Greater(t, blockedCount, 0, "Expected some requests to be blocked")
			} else {
				assert.Equal(t, 0, blockedCount, "Expected no requests to be blocked")
				assert.Equal(t, tt.requestCount, successCount)
			}
		})
	}
}

func TestPerClientRateLimit_DifferentClients(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rateLimiters := &sync.Map{}
	cleanupStop := make(chan struct{})
	defer close(cleanupStop)

	router := gin.New()
	router.Use(PerClientRateLimit(rateLimiters, cleanupStop, &sync.Once{}, 1, 1))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "127.0.0.1:12345"
		router.ServeHTTP(w, req)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.168.1.1:54321"
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPerClientRateLimit_SeparateLimitsPerGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rateLimiters := &sync.Map{}
	cleanupStop := make(chan struct{})
	defer close(cleanupStop)
	once := &sync.Once{}

	router := gin.New()
	router.GET("/strict", PerClientRateLimit(rateLimiters, cleanupStop, once, 1, 1), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/loose", PerClientRateLimit(rateLimiters, cleanupStop, once, 50, 50), func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(path string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.0.0.1:1000"
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("/strict"))
	assert.Equal(t, http.StatusTooManyRequests, do("/strict"))
	assert.Equal(t, http.StatusOK, do("/loose"))
}

func TestCleanupOldRateLimiters_Stops(t *testing.T) {
	rateLimiters := &sync.Map{}
	cleanupStop := make(chan struct{})

	done := make(chan struct{})
	go func() {
		cleanupOldRateLimiters(rateLimiters, cleanupStop)
		close(done)
	}()

	close(cleanupStop)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup goroutine did not stop")
	}
}

func TestPruneRateLimiters(t *testing.T) {
	now := time.Now()
	rateLimiters := &sync.Map{}

	fresh := &clientLimiter{limiter: rate.NewLimiter(1, 1)}
	fresh.touch(now.Add(-time.Minute))
	stale := &clientLimiter{limiter: rate.NewLimiter(1, 1)}
	stale.touch(now.Add(-limiterIdleTTL - time.Second))

	rateLimiters.Store("fresh", fresh)
	rateLimiters.Store("stale", stale)

	pruneRateLimiters(rateLimiters, now)

	_, ok := rateLimiters.Load("fresh")
	assert.True(t, ok)
	_, ok = rateLimiters.Load("stale")
	assert.False(t, ok)
}

func TestPerClientRateLimit_ConcurrentClients(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rateLimiters := &sync.Map{}
	cleanupStop := make(chan struct{})
	defer close(cleanupStop)

	router := gin.New()
	router.Use(PerClientRateLimit(rateLimiters, cleanupStop, &sync.Once{}, 1000, 1000))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				req := httptest.NewRequest(http.MethodGet, "/test", nil)
				req.RemoteAddr = "10.0.0.9:1000"
				router.ServeHTTP(httptest.NewRecorder(), req)
			}
			pruneRateLimiters(rateLimiters, time.Now())
		}()
	}
	wg.Wait()

	value, ok := rateLimiters.Load("10.0.0.9|1000")
	require.True(t, ok)
	assert.Less(t, value.(*clientLimiter).idleFor(time.Now()), time.Minute)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(types.RequestIDKey))
	})

	t.Run("echoes incoming id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", w.Body.String())
	})

	t.Run("generates id when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})
}

func TestLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Locale(i18n.NewResolver(i18n.English), "lang"))
	router.GET("/test", func(c *gin.Context) {
		prefs := types.Preferences(c)
		c.JSON(http.StatusOK, gin.H{"language": prefs.Language, "source": prefs.Source})
	})

	tests := []struct {
		name         string
		url          string
		cookie       string
		accept       string
		expectedLang string
	}{
		{name: "default", url: "/test", expectedLang: "en"},
		{name: "accept language", url: "/test", accept: "ar-SA,ar;q=0.9", expectedLang: "ar"},
		{name: "cookie beats header", url: "/test", cookie: "en", accept: "ar", expectedLang: "en"},
		{name: "query beats cookie", url: "/test?lang=ar", cookie: "en", expectedLang: "ar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "lang", Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expectedLang, w.Header().Get("Content-Language"))
			assert.Contains(t, w.Body.String(), `"language":"`+tt.expectedLang+`"`)
		})
	}
}

func TestClientSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ClientSession("sid", 0))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, types.ClientID(c))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, cookies[0].Value, w.Body.String())

	// A valid cookie is reused and not reissued
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.AddCookie(cookies[0])
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Result().Cookies())
	assert.Equal(t, cookies[0].Value, w.Body.String())
}

func TestNotFoundHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	catalog, err := i18n.LoadCatalog()
	require.NoError(t, err)

	router := gin.New()
	router.NoRoute(NotFoundHandler(&types.Dependencies{Catalog: catalog}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "The requested page was not found")
	assert.Contains(t, w.Body.String(), `"href":"/"`)
}

func TestRateLimitFor(t *testing.T) {
	rps, enabled := rateLimitFor(nil, "search")
	assert.True(t, enabled)
	assert.Equal(t, 5, rps)

	cfg := &config.Config{RateLimiting: config.RateLimitConfig{Enabled: false}}
	_, enabled = rateLimitFor(cfg, "search")
	assert.False(t, enabled)

	cfg.RateLimiting = config.RateLimitConfig{Enabled: true, Endpoints: map[string]int{"default": 7, "search": 3}}
	rps, _ = rateLimitFor(cfg, "search")
	assert.Equal(t, 3, rps)
	rps, _ = rateLimitFor(cfg, "subscribers")
	assert.Equal(t, 7, rps)
}
