package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newTestService(t *testing.T, clock *fakeClock, alg string) JWTService {
	t.Helper()
	svc, err := NewJWTService(Config{
		Secret:    "test-secret",
		Algorithm: alg,
		Now:       clock.Now,
	})
	require.NoError(t, err)
	return svc
}

func TestTokenRoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock, "HS256")

	token, err := svc.Issue("a@b.com", 60*time.Minute)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Subject)
	assert.Equal(t, clock.t.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestTokenExpires(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock, "HS256")

	token, err := svc.Issue("a@b.com", 60*time.Minute)
	require.NoError(t, err)

	clock.t = clock.t.Add(59 * time.Minute)
	_, err = svc.Validate(token)
	require.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Minute)
	_, err = svc.Validate(token)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthenticated))
}

func TestDefaultTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock, "")

	token, err := svc.Issue("a@b.com", 0)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, clock.t.Add(DefaultTokenTTL).Unix(), claims.ExpiresAt.Unix())
}

func TestValidateRejects(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestService(t, clock, "HS256")

	other, err := NewJWTService(Config{Secret: "other-secret", Now: clock.Now})
	require.NoError(t, err)
	foreign, err := other.Issue("a@b.com", time.Hour)
	require.NoError(t, err)

	hs512 := newTestService(t, clock, "HS512")
	wrongAlg, err := hs512.Issue("a@b.com", time.Hour)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "a@b.com",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"malformed":         "not-a-token",
		"wrong secret":      foreign,
		"wrong algorithm":   wrongAlg,
		"missing subject":   noSubject,
		"missing exp claim": noExpiry,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Validate(token)
			assert.True(t, apperrors.Is(err, apperrors.KindUnauthenticated))
		})
	}
}

func TestNewJWTServiceConfig(t *testing.T) {
	_, err := NewJWTService(Config{})
	assert.Error(t, err)

	_, err = NewJWTService(Config{Secret: "s", Algorithm: "RS256"})
	assert.Error(t, err)
}
