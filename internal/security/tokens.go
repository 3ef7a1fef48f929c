// Package security validates session tokens issued by the external identity provider.
package security

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is malformed, expired, or signed with the wrong key.
var ErrInvalidToken = errors.New("invalid session token")

// Identity is the verified caller identity carried by a session token.
type Identity struct {
	UserID      string
	Name        string
	Email       string
	LoginMethod string
}

// SessionClaims holds JWT claims for the session token. Subject is the user id.
type SessionClaims struct {
	jwt.RegisteredClaims
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	LoginMethod string `json:"login_method,omitempty"`
}

// SessionVerifier validates HS256 session tokens with the secret shared with the identity provider.
// This service never issues tokens; it only verifies them.
type SessionVerifier struct {
	secret []byte
}

// NewSessionVerifier returns a SessionVerifier for the given shared secret.
// An empty secret yields a verifier that rejects every token.
func NewSessionVerifier(secret []byte) *SessionVerifier {
	return &SessionVerifier{secret: secret}
}

// Validate parses and verifies the session token, returning the caller identity.
// Returns ErrInvalidToken for any malformed, expired, or mis-signed token.
func (v *SessionVerifier) Validate(token string) (*Identity, error) {
	if token == "" || len(v.secret) == 0 {
		return nil, ErrInvalidToken
	}

	var claims SessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UserID:      claims.Subject,
		Name:        claims.Name,
		Email:       claims.Email,
		LoginMethod: claims.LoginMethod,
	}, nil
}
