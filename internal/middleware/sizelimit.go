package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patient-portal/internal/handler"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
)

// DefaultMaxBodySize fits the largest report content the portal accepts
const DefaultMaxBodySize int64 = 1 << 20

// BodyLimit rejects bodies announced larger than max and caps the reader for the rest
func BodyLimit(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > max {
			handler.RespondError(c, apperrors.InvalidInput("request body too large"))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		}
		c.Next()
	}
}
