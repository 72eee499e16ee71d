package content

import (
	"github.com/gin-gonic/gin"

	"github.com/firmsite/site-api/api/types"
)

// ListHeroSlides returns the home page slides in the request language
// @Summary      List hero slides
// @Description  Slides for the home page hero carousel, localized by the resolved language
// @Tags         content
// @Produce      json
// @Param        lang query string false "Language" Enums(en, ar)
// @Success      200 {object} types.HeroSlidesResponse
// @Failure      502 {object} types.ErrorResponse "Content service unavailable"
// @Router       /api/v1/hero-slides [get]
func ListHeroSlides(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := types.Language(c)

		slides, err := deps.CMS.ListHeroSlides(c.Request.Context(), string(lang))
		if err != nil {
			types.SendError(c, cmsError(err))
			return
		}

		resp := types.HeroSlidesResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Locale:       string(lang),
			Slides:       slides,
			Count:        len(slides),
		}
		if len(slides) == 0 {
			resp.Message = deps.T(lang, "no_slides")
		}
		if deps.HeroRotator != nil {
			deps.HeroRotator.Resize(len(slides))
			resp.Current = deps.HeroRotator.Current()
			resp.IntervalSeconds = deps.HeroRotator.Interval().Seconds()
		}
		types.SendSuccess(c, resp)
	}
}
