package content

import (
	"github.com/gin-gonic/gin"

	"github.com/firmsite/site-api/api/types"
)

// ListTestimonials returns client testimonials
// @Summary      List testimonials
// @Tags         content
// @Produce      json
// @Success      200 {object} types.TestimonialsResponse
// @Failure      502 {object} types.ErrorResponse "Content service unavailable"
// @Router       /api/v1/testimonials [get]
func ListTestimonials(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		testimonials, err := deps.CMS.ListTestimonials(c.Request.Context())
		if err != nil {
			types.SendError(c, cmsError(err))
			return
		}

		types.SendSuccess(c, types.TestimonialsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Title:        deps.T(types.Language(c), "clients_title"),
			Testimonials: testimonials,
			Count:        len(testimonials),
		})
	}
}
