package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
)

// DefaultTokenTTL is used when neither the caller nor the configuration sets a lifetime
const DefaultTokenTTL = 60 * time.Minute

// Claims is the payload carried by an access token
type Claims struct {
	jwt.RegisteredClaims
}

// JWTService issues and validates signed bearer tokens
type JWTService interface {
	Issue(subject string, ttl time.Duration) (string, error)
	Validate(token string) (*Claims, error)
}

type Config struct {
	Secret     string
	Algorithm  string
	DefaultTTL time.Duration
	// Now overrides the clock, mainly for tests
	Now func() time.Time
}

type jwtService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService builds a token service for the HMAC family of algorithms
func NewJWTService(cfg Config) (JWTService, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", alg)
	}

	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &jwtService{
		secret: []byte(cfg.Secret),
		method: method,
		ttl:    ttl,
		now:    now,
	}, nil
}

// Issue signs a token for subject; ttl <= 0 means the default lifetime
func (s *jwtService) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	issuedAt := s.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature, algorithm and expiry and returns the claims
func (s *jwtService) Validate(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, apperrors.Unauthenticated("")
	}
	if claims.Subject == "" {
		return nil, apperrors.Unauthenticated("")
	}
	return claims, nil
}
