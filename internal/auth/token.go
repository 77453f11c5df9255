package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs access and refresh tokens for authenticated users.
type TokenIssuer struct {
	Secret        string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	now           func() time.Time
}

// NewTokenIssuer builds a TokenIssuer with the given secrets and lifetimes.
func NewTokenIssuer(secret, refreshSecret string, accessTTL, refreshTTL time.Duration) TokenIssuer {
	return TokenIssuer{
		Secret:        secret,
		RefreshSecret: refreshSecret,
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// Issue returns a signed access/refresh token pair for the actor.
func (t TokenIssuer) Issue(actor Actor) (access string, refresh string, err error) {
	now := t.now()

	access, err = t.sign(actor, t.Secret, now.Add(t.AccessTTL), now)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err = t.sign(actor, t.RefreshSecret, now.Add(t.RefreshTTL), now)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return access, refresh, nil
}

func (t TokenIssuer) sign(actor Actor, secret string, expires, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":       fmt.Sprintf("%d", actor.ID),
		"role":      string(actor.Role),
		"superuser": actor.Superuser,
		"iat":       now.Unix(),
		"exp":       expires.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
