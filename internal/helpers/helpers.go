package helpers

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminTokenTTL bounds how long a dashboard login stays valid.
const AdminTokenTTL = 12 * time.Hour

func GenerateAdminToken(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret is not configured")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, NewAdminClaims(AdminTokenTTL))
	return token.SignedString([]byte(secret))
}

func ValidateAdminToken(secret, tokenStr string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AdminClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid || !claims.IsAdmin() {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

// PasswordMatches checks the supplied dashboard password against the
// configured secret. A bcrypt hash takes precedence over a plaintext value so
// deployments can avoid keeping the real password in the environment.
func PasswordMatches(supplied, plain, bcryptHash string) bool {
	if bcryptHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(bcryptHash), []byte(supplied)) == nil
	}
	if plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(plain)) == 1
}
