package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeAccess is the only token type this service accepts; refresh tokens stay with the accounts service.
const TokenTypeAccess = "access"

var ErrTokenType = errors.New("token type mismatch")

type Claims struct {
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenVerifier проверяет access-токены, выпущенные сервисом аккаунтов.
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier инициализирует проверку JWT токенов.
func NewTokenVerifier(secret string, issuer string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), issuer: issuer}
}

// ParseAccessToken валидирует access-токен и возвращает claims.
func (v *TokenVerifier) ParseAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("token is invalid")
	}

	if claims.TokenType != TokenTypeAccess {
		return nil, ErrTokenType
	}

	return claims, nil
}
