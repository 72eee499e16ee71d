package content

import (
	"github.com/gin-gonic/gin"

	"github.com/firmsite/site-api/api/types"
	"github.com/firmsite/site-api/internal/services/cms"
	apperrors "github.com/firmsite/site-api/pkg/errors"
)

// ListServices returns every practice area
// @Summary      List services
// @Description  Practice areas for the services page and the header menu
// @Tags         content
// @Produce      json
// @Success      200 {object} types.ServicesResponse
// @Failure      502 {object} types.ErrorResponse "Content service unavailable"
// @Router       /api/v1/services [get]
func ListServices(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		services, err := deps.CMS.ListServices(c.Request.Context())
		if err != nil {
			types.SendError(c, cmsError(err))
			return
		}

		types.SendSuccess(c, types.ServicesResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Services:     services,
			Count:        len(services),
		})
	}
}

// GetService returns one practice area by slug
// @Summary      Get service
// @Description  Service detail with its description paragraphs
// @Tags         content
// @Produce      json
// @Param        slug path string true "Service slug"
// @Success      200 {object} types.ServiceResponse
// @Failure      404 {object} types.ErrorResponse "Service not found"
// @Failure      502 {object} types.ErrorResponse "Content service unavailable"
// @Router       /api/v1/services/{slug} [get]
func GetService(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := types.Language(c)
		slug := c.Param("slug")
		back := types.Link{Label: deps.T(lang, "back_to_services"), Href: "/services"}

		service, err := deps.CMS.GetServiceBySlug(c.Request.Context(), slug)
		if cms.IsNotFound(err) {
			notFound := apperrors.NotFound("service", slug)
			notFound.Message = deps.T(lang, "service_not_found")
			types.SendErrorWithBack(c, notFound, &back)
			return
		}
		if err != nil {
			types.SendError(c, cmsError(err))
			return
		}

		types.SendSuccess(c, types.ServiceResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Service:      service,
			Back:         back,
		})
	}
}
