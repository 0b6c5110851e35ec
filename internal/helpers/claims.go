package helpers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const adminSubject = "admin"

// AdminClaims is the payload of the dashboard session token. There is a single
// shared admin identity; presenting the token only proves the password was
// entered once.
type AdminClaims struct {
	jwt.RegisteredClaims
}

func NewAdminClaims(ttl time.Duration) *AdminClaims {
	now := time.Now()
	return &AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

func (ac *AdminClaims) IsAdmin() bool {
	return ac.Subject == adminSubject
}
