package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware accepts a bearer token that is either one of tokens or an
// HS256-family JWT signed with secret.
func AuthMiddleware(tokens []string, secret string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			allowed[t] = struct{}{}
		}
	}
	key := []byte(strings.TrimSpace(secret))

	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: "missing authorization"})
			return
		}
		parts := strings.Fields(auth)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: "invalid authorization format"})
			return
		}
		tokenStr := parts[1]

		if len(key) > 0 {
			_, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenMalformed
				}
				return key, nil
			}, jwt.WithLeeway(5*time.Second))
			if err == nil {
				c.Next()
				return
			}
		}

		if _, ok := allowed[tokenStr]; ok {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: "invalid token"})
	}
}
