// Package auth issues and verifies the HS256 session tokens used by the API.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"todokeeper/internal/common"
)

// GenerateToken mints an HS256 token whose subject is the user id.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(validityDuration)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseToken verifies the signature and expiry and returns the user id and
// the token's expiry time. Expired tokens map to common.ErrTokenExpired, any
// other verification failure to common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (string, time.Time, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", time.Time{}, common.ErrTokenExpired
		}
		return "", time.Time{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", time.Time{}, common.ErrInvalidToken
	}

	expiresAt := time.Time{}
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return claims.Subject, expiresAt, nil
}
