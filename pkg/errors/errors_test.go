package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{Unauthenticated(""), http.StatusUnauthorized},
		{Forbidden("only patients can access this resource"), http.StatusForbidden},
		{NotFound("appointment"), http.StatusNotFound},
		{InvalidInput("invalid status"), http.StatusBadRequest},
		{Conflict("email already registered"), http.StatusConflict},
		{TooManyRequests("rate limit exceeded"), http.StatusTooManyRequests},
		{Internal(stderrors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("get appointment: %w", NotFound("appointment"))

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(err, KindForbidden))
	assert.Equal(t, KindInternal, KindOf(stderrors.New("plain")))
	assert.False(t, Is(nil, KindInternal))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "appointment not found", NotFound("appointment").Error())
	assert.Equal(t, "could not validate credentials", Unauthenticated("").Message)
	assert.Equal(t, "internal server error: db down", Internal(stderrors.New("db down")).Error())
}
