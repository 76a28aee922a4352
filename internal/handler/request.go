package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patient-portal/internal/service/access"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
)

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// Caller returns the authenticated caller of the request, or nil
func Caller(c *gin.Context) *access.Caller {
	return access.FromContext(c.Request.Context())
}

// BindJSON decodes the request body into obj. Field rules are checked by the services.
func BindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return apperrors.InvalidInput("invalid request body: " + err.Error())
	}
	return nil
}
