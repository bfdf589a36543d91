package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextAccountID is the gin context key holding the authenticated caller's
// account id.
const ContextAccountID = "account_id"

const CookieName = "token"

// RequireAuth validates the session token and sets the caller's account id
// on the context, aborting with 401 when the token is missing or invalid.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := callerID(c, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized. Please login.",
			})
			return
		}
		c.Set(ContextAccountID, id)
		c.Next()
	}
}

// OptionalAuth is RequireAuth's anonymous-tolerant variant: a bad or absent
// token just leaves the caller unauthenticated.
func OptionalAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := callerID(c, secret); ok {
			c.Set(ContextAccountID, id)
		}
		c.Next()
	}
}

// IssueToken signs a session token for the account, valid for 7 days.
func IssueToken(secret []byte, accountID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": accountID,
		"exp": time.Now().Add(7 * 24 * time.Hour).Unix(),
	})
	return token.SignedString(secret)
}

func callerID(c *gin.Context, secret []byte) (string, bool) {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		raw = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	if raw == "" {
		return "", false
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", false
	}
	return sub, true
}
