package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSubject = errors.New("token has no subject")

type TokenInspector interface {
	Subject(token string) (string, error)
}

type tokenInspector struct {
	parser *jwt.Parser
}

// NewTokenInspector reads access token claims without verifying the signature; the
// client does not hold the signing key and only uses the claims for display and logging.
func NewTokenInspector() TokenInspector {
	return &tokenInspector{
		parser: jwt.NewParser(),
	}
}

// Subject returns the sub claim, the backend's user identity.
func (that *tokenInspector) Subject(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := that.parser.ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	// flask-jwt-extended writes integer identities as numbers.
	switch sub := claims["sub"].(type) {
	case string:
		if sub == "" {
			return "", ErrNoSubject
		}
		return sub, nil
	case float64:
		return fmt.Sprintf("%.0f", sub), nil
	default:
		return "", ErrNoSubject
	}
}
