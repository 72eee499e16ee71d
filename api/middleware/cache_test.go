package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firmsite/site-api/api/types"
	"github.com/firmsite/site-api/internal/services/cache"
	"github.com/firmsite/site-api/internal/services/i18n"
)

func newCachedRouter(t *testing.T, calls *atomic.Int32) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mc := cache.NewMemoryCache(1, time.Minute)
	t.Cleanup(mc.Stop)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		lang, _ := i18n.Parse(c.Query("lang"))
		if lang == "" {
			lang = i18n.English
		}
		c.Set(types.PreferencesKey, i18n.Preferences{Language: lang, Source: i18n.SourceQuery})
		c.Header("Content-Language", string(lang))
		c.Next()
	})
	router.Use(CacheMiddleware(CacheConfig{
		Cache:      mc,
		DefaultTTL: time.Minute,
		SkipPaths:  []string{"/live"},
		Enabled:    true,
	}))

	handler := func(c *gin.Context) {
		n := calls.Add(1)
		if c.Query("fail") != "" {
			c.JSON(http.StatusBadGateway, gin.H{"n": n})
			return
		}
		c.SetCookie("sid", "secret", 0, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"n": n, "lang": types.Language(c)})
	}
	router.GET("/services", handler)
	router.GET("/live", handler)
	return router
}

func get(router *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestCacheMiddleware_HitAndMiss(t *testing.T) {
	var calls atomic.Int32
	router := newCachedRouter(t, &calls)

	first := get(router, "/services", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := get(router, "/services", nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Empty(t, second.Header().Get("Set-Cookie"))
	assert.NotEmpty(t, second.Header().Get("ETag"))
	assert.Equal(t, int32(1), calls.Load())
}

func TestCacheMiddleware_KeyedByLanguage(t *testing.T) {
	var calls atomic.Int32
	router := newCachedRouter(t, &calls)

	en := get(router, "/services?lang=en", nil)
	ar := get(router, "/services?lang=ar", nil)

	assert.Contains(t, en.Body.String(), `"lang":"en"`)
	assert.Contains(t, ar.Body.String(), `"lang":"ar"`)
	assert.Equal(t, int32(2), calls.Load())

	cachedAr := get(router, "/services?lang=ar", nil)
	assert.Equal(t, "HIT", cachedAr.Header().Get("X-Cache"))
	assert.Equal(t, "ar", cachedAr.Header().Get("Content-Language"))
}

func TestCacheMiddleware_NotModified(t *testing.T) {
	var calls atomic.Int32
	router := newCachedRouter(t, &calls)

	get(router, "/services", nil)
	hit := get(router, "/services", nil)
	require.NotEmpty(t, hit.Header().Get("ETag"))

	revalidated := get(router, "/services", map[string]string{"If-None-Match": hit.Header().Get("ETag")})
	assert.Equal(t, http.StatusNotModified, revalidated.Code)
	assert.Empty(t, revalidated.Body.String())
}

func TestCacheMiddleware_Bypass(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		headers map[string]string
	}{
		{name: "no-cache header", path: "/services", headers: map[string]string{"Cache-Control": "no-cache"}},
		{name: "pragma", path: "/services", headers: map[string]string{"Pragma": "no-cache"}},
		{name: "skipped path", path: "/live"},
		{name: "error responses", path: "/services?fail=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			router := newCachedRouter(t, &calls)

			get(router, tt.path, tt.headers)
			get(router, tt.path, tt.headers)
			assert.Equal(t, int32(2), calls.Load())
		})
	}
}

func TestGenerateCacheKey(t *testing.T) {
	a := httptest.NewRequest(http.MethodGet, "/blogs?b=2&a=1&lang=ar", nil)
	b := httptest.NewRequest(http.MethodGet, "/blogs?a=1&b=2", nil)

	assert.Equal(t, generateCacheKey(a, "ar"), generateCacheKey(b, "ar"))
	assert.NotEqual(t, generateCacheKey(b, "ar"), generateCacheKey(b, "en"))
}
