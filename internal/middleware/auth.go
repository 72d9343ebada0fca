package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/OmPreetham/we-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// PrincipalKey is where AuthRequired stores the caller in the gin context.
const PrincipalKey = "principal"

// AuthRequired parses the Bearer token into a services.Principal. Token
// issuance lives in the auth service; this side only verifies the HMAC
// signature and lifts the claims.
func AuthRequired() gin.HandlerFunc {
	secret := []byte(os.Getenv("JWT_SECRET"))

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		principal := services.Principal{Role: services.RoleUser}
		if v, ok := claims["userId"].(string); ok {
			principal.UserID = v
		}
		if v, ok := claims["username"].(string); ok {
			principal.Username = v
		}
		if v, ok := claims["role"].(string); ok && v != "" {
			principal.Role = v
		}
		if principal.UserID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// CurrentPrincipal reads the principal AuthRequired stored.
func CurrentPrincipal(c *gin.Context) (services.Principal, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return services.Principal{}, false
	}
	p, ok := v.(services.Principal)
	return p, ok
}
