package middlewares

import (
	"net/http"
	"strings"

	"frigotec.com/frigotec/security"
	"frigotec.com/frigotec/web/common"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const identityKey = "identity"

func parseJwt(tokenStr string, jwtSecret []byte) (*security.IdentityClaims, error) {
	claims := &security.IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// Authentication checks for a valid bearer token or session cookie and
// puts the typed identity into the request context.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			cookie, err := c.Cookie("frigotec.SessionCookie")
			if err != nil {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}

			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}

			tokenStr = parts[1]
		}

		claims, err := parseJwt(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		c.Set(identityKey, claims.Identity)
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity, or false on routes
// that skipped the middleware.
func IdentityFrom(c *gin.Context) (security.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return security.Identity{}, false
	}
	id, ok := v.(security.Identity)
	return id, ok
}
