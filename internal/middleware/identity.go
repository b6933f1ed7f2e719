package middleware

import (
	"net/http"
	"strings"

	"github.com/denlahodnyi/sneakers-store-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const UserIDKey = "user_id"

// IdentityClaims are the claims read from a shopper's access token. Tokens
// are issued elsewhere; this service only verifies them.
type IdentityClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// OptionalIdentity attaches the shopper's user id when a valid Bearer token
// is present. Requests without a token pass through anonymously; a token
// that fails verification is rejected. An empty secret disables the check.
func OptionalIdentity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if secret == "" || header == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Malformed authorization header"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &IdentityClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.UserID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated shopper's id, or nil for anonymous requests.
func UserID(c *gin.Context) *int64 {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(int64)
	if !ok {
		return nil
	}
	return &id
}
