package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"equiptrack/internal/pkg/jwt"
	"equiptrack/internal/pkg/response"
)

const OperatorKey = "operator"

// OperatorAuth checks the bearer token. Browsers cannot set headers on a
// websocket handshake, so a "token" query parameter is accepted too.
// With required=false requests without a token pass through; a token that is
// present must still be valid.
func OperatorAuth(tokens *jwt.Service, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, code, ok := bearerToken(c)
		if !ok {
			if !required && code == "AUTH_HEADER_MISSING" {
				c.Next()
				return
			}
			response.Error(c, http.StatusUnauthorized, code, "Operator token required")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(OperatorKey, claims.Operator)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, string, bool) {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if h == "" {
		if q := strings.TrimSpace(c.Query("token")); q != "" {
			return q, "", true
		}
		return "", "AUTH_HEADER_MISSING", false
	}
	if !strings.HasPrefix(h, "Bearer ") {
		return "", "INVALID_AUTH_FORMAT", false
	}
	tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if tokenStr == "" {
		return "", "INVALID_AUTH_FORMAT", false
	}
	return tokenStr, "", true
}
