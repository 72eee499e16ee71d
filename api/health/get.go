package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/firmsite/site-api/api/types"
	"github.com/firmsite/site-api/internal/services/cache"
)

const checkTimeout = 3 * time.Second

// Get handles health check requests
// @Summary      Health check
// @Description  Reports content service reachability, database and cache status. Responds 503 when the content service is unreachable.
// @Tags         system
// @Produce      json
// @Success      200 {object} types.HealthResponse
// @Failure      503 {object} types.HealthResponse
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		defer cancel()

		response := types.HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			CMS:       getCMSStatus(ctx, deps),
			Database:  getDatabaseStatus(ctx, deps),
			Cache:     getCacheStatus(deps),
		}
		if deps.Scheduler != nil {
			response.Scheduler = deps.Scheduler.Stats()
		}
		if deps.Sessions != nil {
			response.Sessions = deps.Sessions.Len()
		}

		status := http.StatusOK
		if response.CMS["status"] == "unreachable" {
			response.Status = "unavailable"
			status = http.StatusServiceUnavailable
		} else if response.Database["status"] == "unhealthy" {
			response.Status = "degraded"
		}

		c.JSON(status, response)
	}
}

func getCMSStatus(ctx context.Context, deps *types.Dependencies) map[string]any {
	if deps.CMS == nil {
		return map[string]any{"status": "not configured"}
	}

	start := time.Now()
	if err := deps.CMS.Ping(ctx); err != nil {
		return map[string]any{"status": "unreachable", "error": err.Error()}
	}
	return map[string]any{"status": "reachable", "latency_ms": time.Since(start).Milliseconds()}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(ctx context.Context, deps *types.Dependencies) map[string]any {
	if deps.DB == nil || deps.DB.DB == nil {
		return map[string]any{"status": "not configured"}
	}

	if err := deps.DB.HealthCheck(ctx); err != nil {
		return map[string]any{"status": "unhealthy", "error": err.Error()}
	}
	return map[string]any{"status": "healthy"}
}

func getCacheStatus(deps *types.Dependencies) map[string]any {
	if deps.Cache == nil {
		return nil
	}
	out := map[string]any{"status": "enabled"}
	if sp, ok := deps.Cache.(cache.StatsProvider); ok {
		out["stats"] = sp.Stats()
	}
	return out
}
