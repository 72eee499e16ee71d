package carousel

import (
	"github.com/gin-gonic/gin"

	"github.com/firmsite/site-api/api/types"
)

// RegisterRoutes registers carousel routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/hero-slides/stream", HeroStream(deps))
	router.GET("/testimonials/:index/neighbors", TestimonialNeighbors(deps))
	router.GET("/carousel/team", TeamCarousel(deps))
}
