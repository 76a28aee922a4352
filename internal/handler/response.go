package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
)

// Response is the body of endpoints that only report an outcome
type Response struct {
	Message string `json:"message"`
}

func NewMessageResponse(message string) *Response {
	return &Response{Message: message}
}

type ErrorResponse struct {
	Status  string         `json:"status"`
	Code    apperrors.Kind `json:"code"`
	Message string         `json:"message"`
}

func NewErrorResponse(kind apperrors.Kind, message string) *ErrorResponse {
	return &ErrorResponse{
		Status:  "error",
		Code:    kind,
		Message: message,
	}
}

// RespondError writes err and aborts the handler chain. Errors that are not
// an *AppError are reported as internal without exposing their text.
func RespondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}

	if appErr.Kind == apperrors.KindInternal {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	}

	c.AbortWithStatusJSON(appErr.StatusCode(), NewErrorResponse(appErr.Kind, appErr.Message))
}
