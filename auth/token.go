package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/urbantrove-ng/Urbantrove-Api/models"
)

// IssueToken signs an HS256 token carrying the claims the middleware reads.
func IssueToken(secret, userID string, role models.Role, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
