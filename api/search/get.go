package search

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firmsite/site-api/api/types"
	"github.com/firmsite/site-api/internal/services/i18n"
	"github.com/firmsite/site-api/internal/services/search"
	apperrors "github.com/firmsite/site-api/pkg/errors"
)

// Get handles site search requests
// @Summary      Search services and team members
// @Description  Case-insensitive substring search over service titles and team member names, with tabs and pagination. The collections are fetched once per query and reused while switching tabs or pages.
// @Tags         search
// @Produce      json
// @Param        query query string false "Search text"
// @Param        tab   query string false "Result tab" Enums(all, services, team)
// @Param        page  query int    false "Page number (1-based)"
// @Param        lang  query string false "Language" Enums(en, ar)
// @Success      200 {object} types.SearchResponse "Search results"
// @Failure      409 {object} types.ErrorResponse "Superseded by a newer query"
// @Failure      429 {object} types.ErrorResponse "Rate limit exceeded"
// @Failure      502 {object} types.SearchResponse "Content service unavailable"
// @Router       /api/v1/search [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.Search == nil {
			types.SendError(c, apperrors.New(apperrors.ErrCodeServiceDown, "Search service not available"))
			return
		}

		lang := types.Language(c)
		q := search.ParseQuery(c.Request.URL.Query())

		result, err := deps.Search.Search(c.Request.Context(), types.ClientID(c), q)
		if errors.Is(err, search.ErrSuperseded) {
			types.SendError(c, apperrors.Wrap(err, apperrors.ErrCodeSuperseded, "A newer search replaced this one"))
			return
		}

		resp := BuildResponse(deps, lang, result)
		if err != nil {
			_ = c.Error(err)
			resp.Status = types.StatusError
			c.JSON(http.StatusBadGateway, resp)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// BuildResponse decorates a search result with localized text and links
func BuildResponse(deps *types.Dependencies, lang i18n.Language, result *search.Result) types.SearchResponse {
	resp := types.SearchResponse{
		BaseResponse: types.BaseResponse{Status: types.StatusOK},
		Result:       result,
		Links:        Links(result),
	}

	if result.Query != "" {
		resp.Heading = deps.T(lang, "search_results_for", result.Query)
	}

	switch result.State {
	case search.StateResults:
		resp.Message = deps.T(lang, "results_found", result.Counts.All)
	case search.StateNoResults:
		resp.Message = deps.T(lang, "no_results")
		resp.Hint = deps.T(lang, "no_results_hint")
	case search.StateFailed:
		resp.Message = deps.T(lang, "search_failed")
	}
	return resp
}

// Links builds tab, previous, next and page URLs. Tab links always point at
// page 1, and prev/next are omitted at the ends of the range.
func Links(result *search.Result) types.SearchLinks {
	state := result.QueryState
	links := types.SearchLinks{Tabs: make(map[search.Tab]string, len(search.Tabs))}

	for _, tab := range search.Tabs {
		links.Tabs[tab] = state.WithTab(tab).URL(search.DefaultPath)
	}

	view := result.View
	if view.TotalPages <= 1 {
		return links
	}

	if view.Page > 1 {
		links.Prev = state.WithPage(view.Page - 1).URL(search.DefaultPath)
	}
	if view.Page < view.TotalPages {
		links.Next = state.WithPage(view.Page + 1).URL(search.DefaultPath)
	}

	links.Pages = make(map[int]string)
	for _, marker := range result.Pages {
		if marker.Ellipsis {
			continue
		}
		links.Pages[marker.Number] = state.WithPage(marker.Number).URL(search.DefaultPath)
	}
	return links
}
