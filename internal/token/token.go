// Package token issues and verifies the JWTs used for admin authentication.
// Tokens are HS256-signed and carry the admin's id, email, name, and role.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dogukancykrn/ziyaretci-takip-api/internal/domain"
)

// Claims are the JWT claims embedded in every issued token.
type Claims struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies admin tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
	ttl    time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// NewManager constructs a Manager. ttl is how long issued tokens stay valid.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Issue mints a signed token for an authenticated admin.
func (m *Manager) Issue(admin domain.Admin) (string, error) {
	now := m.now()
	claims := Claims{
		Email:    admin.Email,
		FullName: admin.FullName(),
		Role:     admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("token.Manager.Issue: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string, returning its claims.
// Expired, malformed, or wrongly-signed tokens all return an error.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token.Manager.Verify: empty token")
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil {
		return nil, fmt.Errorf("token.Manager.Verify: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("token.Manager.Verify: invalid claims")
	}
	return claims, nil
}
