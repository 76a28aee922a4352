// Package httputil holds small gin helpers for reading request parameters
// and writing non-JSON responses.
package httputil

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
)

// UUIDParam parses the named path parameter
func UUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.InvalidInput(fmt.Sprintf("%s must be a valid UUID", name))
	}
	return id, nil
}

// Attachment sends data as a download named filename
func Attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
