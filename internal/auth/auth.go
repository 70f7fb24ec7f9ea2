// Package auth issues and verifies session tokens for connected
// league accounts.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// TokenIssuer signs and verifies league session tokens.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer creates an issuer from a shared secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// LeagueClaims are the claims carried by a league session token.
type LeagueClaims struct {
	Platform   string `json:"platform"`
	Identifier string `json:"identifier"`
	jwt.RegisteredClaims
}

// IssueLeagueToken mints a signed session token for a connected
// league account.
func (t *TokenIssuer) IssueLeagueToken(platform, identifier string) (string, error) {
	now := time.Now()
	claims := LeagueClaims{
		Platform:   platform,
		Identifier: identifier,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   platform + ":" + identifier,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// VerifyLeagueToken parses and validates a session token, returning
// its claims.
func (t *TokenIssuer) VerifyLeagueToken(tokenString string) (*LeagueClaims, error) {
	claims := &LeagueClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
