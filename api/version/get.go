package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get handles version requests
// @Summary      Service information
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       / [get]
func Get(version string) gin.HandlerFunc {
	if version == "" {
		version = "dev"
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Firm Site API",
			"version":     version,
			"description": "Content, search, language and newsletter API for the firm website",
			"status":      "running",
		})
	}
}
