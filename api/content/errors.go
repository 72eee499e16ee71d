package content

import (
	"context"
	"errors"

	"github.com/firmsite/site-api/internal/services/cms"
	apperrors "github.com/firmsite/site-api/pkg/errors"
)

// cmsError maps content service failures to application errors
func cmsError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrCodeAPITimeout, "Content service timed out")
	case errors.Is(err, cms.ErrRateLimited):
		return apperrors.Wrap(err, apperrors.ErrCodeAPIRateLimit, "Content service rate limit reached")
	default:
		return apperrors.ExternalServiceError("cms", err)
	}
}
