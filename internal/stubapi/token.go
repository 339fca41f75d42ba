package stubapi

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errInvalidToken = errors.New("invalid or expired token")

const tokenTTL = 12 * time.Hour

// claims is the JWT payload minted on login and registration. The email is
// enough to re-resolve the account on /api/auth/me.
type claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

func mintToken(email, secret string) (string, error) {
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "pawpals",
			Audience:  jwt.ClaimStrings{"pawpals-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString([]byte(secret))
}

func parseToken(tokenString, secret string) (*claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer("pawpals"), jwt.WithAudience("pawpals-api"))
	if err != nil {
		return nil, errInvalidToken
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, errInvalidToken
	}

	return c, nil
}
