package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the payload carried by every issued token.
type TokenClaims struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	IsAdmin    bool   `json:"is_admin"`
	IsCustomer bool   `json:"is_customer"`
	jwt.RegisteredClaims
}

// GenerateToken signs a new HS256 token for the user.
func GenerateToken(secret string, ttl time.Duration, userID uint, username string, isAdmin, isCustomer bool) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)

	claims := TokenClaims{
		UserID:     userID,
		Username:   username,
		IsAdmin:    isAdmin,
		IsCustomer: isCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ValidateToken parses a token string and returns its claims if valid.
func ValidateToken(secret, tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
