package session

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"salesdesk/admin-api/internal/utils/platformerrors"
)

// CookieName is the browser cookie that carries the session token.
const CookieName = "admin_session"

// Claims is the signed session payload.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager issues and verifies admin session tokens. There is a single admin
// credential pair; the token only proves that login succeeded recently.
type Manager struct {
	secret        []byte
	ttl           time.Duration
	adminUser     string
	adminPassword string
	now           func() time.Time
}

func NewManager(secret []byte, ttl time.Duration, adminUser, adminPassword string) *Manager {
	return &Manager{
		secret:        secret,
		ttl:           ttl,
		adminUser:     adminUser,
		adminPassword: adminPassword,
		now:           time.Now,
	}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Login checks the credential pair and issues a signed session token. Both
// comparisons run in constant time regardless of which field mismatched.
func (m *Manager) Login(ctx context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(m.adminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(m.adminPassword)) == 1
	if !userOK || !passOK {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized, "invalid credentials", nil)
	}

	issuedAt := m.now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal, "failed to sign session token", err)
	}
	return signed, nil
}

// Verify parses and validates a session token, returning its claims.
func (m *Manager) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized, "invalid or expired session", err)
	}
	return claims, nil
}
