package auth

import (
	"errors"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"
)

// Jwt verifies the HS256 access tokens issued by the identity provider.
type Jwt struct {
	Secret string
}

func NewJwtService(secret string) *Jwt {
	return &Jwt{Secret: secret}
}

// ParseTokenStr parses and verifies a signed token string.
func (j Jwt) ParseTokenStr(tokenStr string) (*jwt.Token, error) {
	signingKey := []byte(j.Secret)
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})
	if err != nil {
		slog.Error("Failed parse JWT string!", "err", err)
		return token, err
	}
	if !token.Valid {
		return token, errors.New("invalid token")
	}
	return token, nil
}
