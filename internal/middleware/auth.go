package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patient-portal/internal/handler"
	"github.com/jwalitptl/patient-portal/internal/service/access"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
)

// CallerResolver turns a bearer token into the request's caller
type CallerResolver interface {
	Resolve(ctx context.Context, token string) (*access.Caller, error)
}

type AuthMiddleware struct {
	resolver CallerResolver
}

func NewAuthMiddleware(resolver CallerResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Authenticate requires a valid bearer token and stores the caller in the request context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			handler.RespondError(c, apperrors.Unauthenticated("not authenticated"))
			return
		}

		caller, err := m.resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			handler.RespondError(c, err)
			return
		}

		c.Request = c.Request.WithContext(access.WithCaller(c.Request.Context(), caller))
		c.Next()
	}
}

// OptionalAuthenticate attaches the caller when a valid token is present.
// Missing or invalid tokens continue anonymously.
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		caller, err := m.resolver.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Request = c.Request.WithContext(access.WithCaller(c.Request.Context(), caller))
		case apperrors.Is(err, apperrors.KindUnauthenticated):
			// anonymous
		default:
			handler.RespondError(c, err)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
