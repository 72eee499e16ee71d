package content

import (
	"github.com/gin-gonic/gin"

	"github.com/firmsite/site-api/api/types"
)

// RegisterRoutes registers the content routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/services", ListServices(deps))
	router.GET("/services/:slug", GetService(deps))
	router.GET("/team", ListTeam(deps))
	router.GET("/team/:id", GetTeamMember(deps))
	router.GET("/blogs", ListBlogs(deps))
	router.GET("/blogs/:slug", GetBlog(deps))
	router.GET("/testimonials", ListTestimonials(deps))
	router.GET("/hero-slides", ListHeroSlides(deps))
}
