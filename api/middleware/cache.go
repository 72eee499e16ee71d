package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/firmsite/site-api/api/types"
	"github.com/firmsite/site-api/internal/services/cache"
)

// CacheConfig holds configuration for the response cache
type CacheConfig struct {
	Cache      cache.Cache
	DefaultTTL time.Duration
	// SkipPaths are route prefixes that are never cached
	SkipPaths []string
	Enabled   bool
}

// CachedResponse is what gets stored for one rendered response
type CachedResponse struct {
	Status      int       `json:"status"`
	ContentType string    `json:"content_type"`
	Language    string    `json:"language"`
	Body        []byte    `json:"body"`
	CachedAt    time.Time `json:"cached_at"`
	ETag        string    `json:"etag"`
}

// responseWriter captures the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

// CacheMiddleware caches successful GET responses per path, query and
// resolved language. Per-request headers such as cookies and request ids
// are never replayed.
func CacheMiddleware(config CacheConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !config.Enabled || config.Cache == nil || c.Request.Method != http.MethodGet || skipped(config.SkipPaths, c.FullPath()) {
			c.Next()
			return
		}

		if shouldBypassCache(c.Request) {
			c.Header("X-Cache", "BYPASS")
			c.Next()
			return
		}

		key := generateCacheKey(c.Request, string(types.Language(c)))

		if data, found := config.Cache.Get(c.Request.Context(), key); found {
			var response CachedResponse
			if err := json.Unmarshal(data, &response); err == nil {
				c.Header("X-Cache", "HIT")
				c.Header("Age", fmt.Sprintf("%d", int(time.Since(response.CachedAt).Seconds())))
				c.Header("ETag", response.ETag)
				if response.Language != "" {
					c.Header("Content-Language", response.Language)
				}
				if match := c.GetHeader("If-None-Match"); match != "" && match == response.ETag {
					c.AbortWithStatus(http.StatusNotModified)
					return
				}
				c.Data(response.Status, response.ContentType, response.Body)
				c.Abort()
				return
			}
		}

		c.Header("X-Cache", "MISS")
		w := &responseWriter{ResponseWriter: c.Writer, body: bytes.NewBuffer(nil)}
		c.Writer = w

		c.Next()

		if w.Status() != http.StatusOK || w.body.Len() == 0 {
			return
		}

		response := CachedResponse{
			Status:      w.Status(),
			ContentType: w.Header().Get("Content-Type"),
			Language:    w.Header().Get("Content-Language"),
			Body:        w.body.Bytes(),
			CachedAt:    time.Now(),
			ETag:        generateETag(w.body.Bytes()),
		}
		if data, err := json.Marshal(response); err == nil {
			// The request may already be cancelled once the body is written
			_ = config.Cache.Set(context.WithoutCancel(c.Request.Context()), key, data, config.DefaultTTL)
		}
	}
}

func skipped(prefixes []string, route string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(route, p) {
			return true
		}
	}
	return false
}

// shouldBypassCache checks if cache should be bypassed based on request headers
func shouldBypassCache(req *http.Request) bool {
	for _, directive := range strings.Split(strings.ToLower(req.Header.Get("Cache-Control")), ",") {
		directive = strings.TrimSpace(directive)
		if directive == "no-cache" || directive == "no-store" || directive == "max-age=0" {
			return true
		}
	}
	return req.Header.Get("Pragma") == "no-cache"
}

// generateCacheKey creates a unique key for the request in one language
func generateCacheKey(req *http.Request, lang string) string {
	parts := []string{req.URL.Path, "lang=" + lang}

	params := req.URL.Query()
	keys := make([]string, 0, len(params))
	for k := range params {
		// lang is already folded into the resolved language
		if k != "lang" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range params[k] {
			parts = append(parts, k+"="+v)
		}
	}

	return "http:" + strings.Join(parts, ":")
}

// generateETag creates an ETag for the response body
func generateETag(body []byte) string {
	hash := sha256.Sum256(body)
	return fmt.Sprintf(`"%s"`, hex.EncodeToString(hash[:16]))
}
