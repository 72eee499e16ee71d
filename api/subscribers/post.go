package subscribers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firmsite/site-api/api/types"
	"github.com/firmsite/site-api/internal/services/i18n"
	"github.com/firmsite/site-api/internal/services/newsletter"
	apperrors "github.com/firmsite/site-api/pkg/errors"
)

// Post handles newsletter signups
// @Summary      Subscribe to the newsletter
// @Description  Validates the email, forwards it to the content service and records it locally. Messages are in the request language.
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        request body types.SubscribeRequest true "Subscriber email"
// @Success      201 {object} types.SubscribeResponse
// @Failure      400 {object} types.ErrorResponse "Missing or invalid email"
// @Failure      409 {object} types.ErrorResponse "Already subscribed"
// @Failure      429 {object} types.ErrorResponse "Rate limit exceeded"
// @Failure      502 {object} types.ErrorResponse "Content service rejected the subscription"
// @Router       /api/v1/subscribers [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := types.Language(c)

		if deps.Newsletter == nil {
			types.SendError(c, apperrors.New(apperrors.ErrCodeServiceDown, deps.T(lang, "something_wrong")))
			return
		}

		var req types.SubscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			types.SendError(c, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, deps.T(lang, "required")).
				WithDetail("field", "email"))
			return
		}

		sub, err := deps.Newsletter.Subscribe(c.Request.Context(), newsletter.SubscribeRequest{
			Email:    req.Email,
			Language: lang,
			SourceIP: c.ClientIP(),
		})
		if err != nil {
			types.SendError(c, subscribeError(deps, lang, err))
			return
		}

		c.JSON(http.StatusCreated, types.SubscribeResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: deps.T(lang, "subscribed"),
			},
			Email: sub.Email,
		})
	}
}

func subscribeError(deps *types.Dependencies, lang i18n.Language, err error) *apperrors.AppError {
	var verr newsletter.ValidationError
	if errors.As(err, &verr) {
		code := apperrors.ErrCodeValidation
		if verr.Key == "required" {
			code = apperrors.ErrCodeMissingField
		}
		return apperrors.Wrap(err, code, deps.T(lang, verr.Key)).WithDetail("field", verr.Field)
	}

	if errors.Is(err, newsletter.ErrAlreadySubscribed) {
		return apperrors.Wrap(err, apperrors.ErrCodeAlreadyExists, deps.T(lang, "already_subscribed"))
	}

	var uerr newsletter.UpstreamError
	if errors.As(err, &uerr) {
		msg := uerr.Message
		if msg == "" {
			msg = deps.T(lang, "something_wrong")
		}
		return apperrors.Wrap(err, apperrors.ErrCodeExternalService, msg)
	}

	return apperrors.Wrap(err, apperrors.ErrCodeInternal, deps.T(lang, "something_wrong"))
}
