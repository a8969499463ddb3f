package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity extracted from a verified credential.
type Claims struct {
	Sub   string
	Email string
	Name  string
}

// Verifier turns a bearer credential into an identity. Implementations
// are injected into the auth middleware so tests can substitute a stub
// instead of patching a running instance.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrInvalidToken  = errors.New("invalid token")
	errMissingSecret = errors.New("jwt secret not configured")
)

// HS256Verifier validates HS256-signed JWTs with a shared secret.
type HS256Verifier struct {
	secret []byte
}

// NewHS256Verifier constructs a verifier from the shared secret.
func NewHS256Verifier(secret string) (*HS256Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errMissingSecret
	}
	return &HS256Verifier{secret: []byte(secret)}, nil
}

// Verify parses and validates the token, returning its claims.
func (v *HS256Verifier) Verify(token string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	tc, ok := parsed.Claims.(*tokenClaims)
	if !ok || strings.TrimSpace(tc.Subject) == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{Sub: tc.Subject, Email: tc.Email, Name: tc.Name}, nil
}

// Sign issues a token for the given claims. Used by dev tooling and tests.
func (v *HS256Verifier) Sign(claims Claims, ttl time.Duration) (string, error) {
	if claims.Sub == "" {
		return "", errors.New("sub is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now().UTC()
	tc := tokenClaims{
		Email: claims.Email,
		Name:  claims.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(v.secret)
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
