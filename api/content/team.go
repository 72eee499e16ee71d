package content

import (
	"github.com/gin-gonic/gin"

	"github.com/firmsite/site-api/api/types"
	"github.com/firmsite/site-api/internal/services/cms"
	apperrors "github.com/firmsite/site-api/pkg/errors"
)

// ListTeam returns every team member
// @Summary      List team members
// @Tags         content
// @Produce      json
// @Success      200 {object} types.TeamResponse
// @Failure      502 {object} types.ErrorResponse "Content service unavailable"
// @Router       /api/v1/team [get]
func ListTeam(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		team, err := deps.CMS.ListTeamMembers(c.Request.Context())
		if err != nil {
			types.SendError(c, cmsError(err))
			return
		}

		types.SendSuccess(c, types.TeamResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Team:         team,
			Count:        len(team),
		})
	}
}

// GetTeamMember returns one team member
// @Summary      Get team member
// @Tags         content
// @Produce      json
// @Param        id path int true "Team member ID"
// @Success      200 {object} types.TeamMemberResponse
// @Failure      400 {object} types.ErrorResponse "Invalid id"
// @Failure      404 {object} types.ErrorResponse "Team member not found"
// @Failure      502 {object} types.ErrorResponse "Content service unavailable"
// @Router       /api/v1/team/{id} [get]
func GetTeamMember(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseIntParam(c, "id")
		if !ok {
			return
		}

		lang := types.Language(c)
		back := types.Link{Label: deps.T(lang, "back_to_home"), Href: "/"}

		member, err := deps.CMS.GetTeamMember(c.Request.Context(), id)
		if cms.IsNotFound(err) {
			notFound := apperrors.NotFound("team member", id)
			notFound.Message = deps.T(lang, "team_member_not_found")
			types.SendErrorWithBack(c, notFound, &back)
			return
		}
		if err != nil {
			types.SendError(c, cmsError(err))
			return
		}

		types.SendSuccess(c, types.TeamMemberResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Member:       member,
			Back:         back,
		})
	}
}
