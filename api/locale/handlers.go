package locale

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firmsite/site-api/api/types"
	"github.com/firmsite/site-api/internal/services/i18n"
	apperrors "github.com/firmsite/site-api/pkg/errors"
)

const (
	defaultCookieName = "lang"
	defaultMaxAge     = 365 * 24 * 60 * 60
)

// Get reports the active language and its UI strings
// @Summary      Current language
// @Description  Language resolved from the lang parameter, the language cookie or Accept-Language, with text direction and translated UI strings
// @Tags         locale
// @Produce      json
// @Param        lang query string false "Language" Enums(en, ar)
// @Success      200 {object} types.LocaleResponse
// @Router       /api/v1/locale [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		types.SendSuccess(c, buildResponse(deps, types.Preferences(c), c.Query("strings") != "false"))
	}
}

// Toggle switches between English and Arabic
// @Summary      Toggle language
// @Description  Switches to the other supported language and stores the choice in the language cookie
// @Tags         locale
// @Produce      json
// @Success      200 {object} types.LocaleResponse
// @Router       /api/v1/locale/toggle [post]
func Toggle(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := types.Language(c).Toggle()
		respondWithCookie(c, deps, next)
	}
}

// Set selects a language explicitly
// @Summary      Set language
// @Tags         locale
// @Accept       json
// @Produce      json
// @Param        request body types.SetLocaleRequest true "Language to use"
// @Success      200 {object} types.LocaleResponse
// @Failure      400 {object} types.ErrorResponse "Unsupported language"
// @Router       /api/v1/locale [put]
func Set(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SetLocaleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			types.SendError(c, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "Invalid request body"))
			return
		}

		lang, ok := i18n.Parse(req.Language)
		if !ok {
			types.SendError(c, apperrors.ValidationError("language", "must be one of en, ar").
				WithDetail("value", req.Language))
			return
		}
		respondWithCookie(c, deps, lang)
	}
}

func respondWithCookie(c *gin.Context, deps *types.Dependencies, lang i18n.Language) {
	name, maxAge := defaultCookieName, defaultMaxAge
	if deps.Config != nil {
		if deps.Config.I18n.CookieName != "" {
			name = deps.Config.I18n.CookieName
		}
		if deps.Config.I18n.CookieMaxAge > 0 {
			maxAge = deps.Config.I18n.CookieMaxAge
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, string(lang), maxAge, "/", "", false, false)
	c.Header("Content-Language", string(lang))

	prefs := i18n.Preferences{Language: lang, Source: i18n.SourceCookie}
	types.SendSuccess(c, buildResponse(deps, prefs, true))
}

func buildResponse(deps *types.Dependencies, prefs i18n.Preferences, withStrings bool) types.LocaleResponse {
	resp := types.LocaleResponse{
		BaseResponse: types.BaseResponse{Status: types.StatusOK},
		Language:     prefs.Language,
		Direction:    prefs.Direction(),
		Source:       prefs.Source,
		Name:         deps.T(prefs.Language, "language_name"),
		Toggle:       prefs.Language.Toggle(),
	}
	if withStrings && deps.Catalog != nil {
		resp.Strings = deps.Catalog.All(prefs.Language)
	}
	return resp
}
