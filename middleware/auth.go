package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/urbantrove-ng/Urbantrove-Api/response"
)

// Context keys set by the token middlewares.
const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// ValidateToken rejects requests without a valid HS256 bearer token.
func ValidateToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearer(c.GetHeader("Authorization"))
		if tokenString == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.Detail{
				Path: "Authorization", Msg: "Authorization header is missing", Location: "headers",
			})
			return
		}

		claims, err := parseToken(tokenString, secret)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.Detail{
				Path: "Authorization", Msg: "Invalid or expired token", Location: "headers",
			})
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalToken identifies the caller when a valid token is present and lets
// anonymous requests through untouched.
func OptionalToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearer(c.GetHeader("Authorization")); tokenString != "" {
			if claims, err := parseToken(tokenString, secret); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func bearer(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

func parseToken(tokenString, secret string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if id, _ := claims["user_id"].(string); id == "" {
		return nil, errors.New("token has no user_id")
	}
	return claims, nil
}

func setClaims(c *gin.Context, claims jwt.MapClaims) {
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	c.Set(UserIDKey, userID)
	c.Set(RoleKey, role)
}

// GuestHeader lets token-less clients name their cart session.
const GuestHeader = "X-Guest-ID"

// SessionKey identifies the caller's cart: the token's user id, else the
// guest_id query parameter, else the X-Guest-ID header.
func SessionKey(c *gin.Context) string {
	if id := UserID(c); id != "" {
		return id
	}
	if id := strings.TrimSpace(c.Query("guest_id")); id != "" {
		return id
	}
	return strings.TrimSpace(c.GetHeader(GuestHeader))
}
