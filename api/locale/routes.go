package locale

import (
	"github.com/gin-gonic/gin"

	"github.com/firmsite/site-api/api/types"
)

// RegisterRoutes registers language routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", Get(deps))
	router.PUT("", Set(deps))
	router.POST("/toggle", Toggle(deps))
}
