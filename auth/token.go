package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var (
	// ErrTokenExpired marks a structurally valid token past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid marks any other verification failure. Callers must not
	// surface the underlying signature detail.
	ErrTokenInvalid = errors.New("token invalid")
)

// IssueToken signs a stateless HS256 bearer token whose payload is the user
// id, expiring tokenTTL from now.
func (m *Manager) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(m.tokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// VerifyToken checks signature and expiry and returns the embedded user id.
// No server-side state is consulted: validity is purely signature + expiry.
func (m *Manager) VerifyToken(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", ErrTokenInvalid
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrTokenInvalid
	}
	return sub, nil
}
