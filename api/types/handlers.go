package types

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/firmsite/site-api/pkg/errors"
)

// Handler utility functions to reduce duplication across handlers

// ParseIntParam extracts and parses a URL parameter as a non-negative int.
// Returns false and sends an error response if parsing fails.
func ParseIntParam(c *gin.Context, paramName string) (int, bool) {
	value, err := strconv.Atoi(c.Param(paramName))
	if err != nil || value < 0 {
		SendError(c, apperrors.ValidationError(paramName, "must be a non-negative integer"))
		return 0, false
	}
	return value, true
}

// SendError writes err as an ErrorResponse using the status carried by an
// AppError, or 500 for anything else
func SendError(c *gin.Context, err error) {
	SendErrorWithBack(c, err, nil)
}

// SendErrorWithBack is SendError with a navigation link for the visitor
func SendErrorWithBack(c *gin.Context, err error, back *Link) {
	resp := ErrorResponse{
		Status:  StatusError,
		Message: "Internal server error",
		Back:    back,
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		resp.Message = appErr.Message
		resp.Error = string(appErr.Code)
		if len(appErr.Details) > 0 {
			resp.Details = appErr.Details
		}
	}

	_ = c.Error(err)
	c.JSON(apperrors.GetHTTPCode(err), resp)
}

// SendSuccess sends a standardized success response with data
func SendSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// SendCreated sends a standardized created response with data
func SendCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}
