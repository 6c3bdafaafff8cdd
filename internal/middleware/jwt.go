package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// RoleEditor is the role allowed to change route attributes.
const RoleEditor = "editor"

// GenerateToken signs an HS256 token for the named user.
func GenerateToken(secret []byte, name, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  name,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses tokenStr and checks its signature and expiry.
func ValidateToken(secret []byte, tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
}

// authenticate checks the bearer token and stores its claims on c.
// It aborts c and returns false when the token is missing or invalid.
func authenticate(c *gin.Context, secret []byte) bool {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
		return false
	}

	token, err := ValidateToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return false
	}
	c.Set("user", claims["sub"])
	c.Set("role", claims["role"])
	return true
}

// RequireAuth ensures a valid JWT is present
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, secret) {
			return
		}
		c.Next()
	}
}

// RequireAuthWithRole ensures the JWT is valid and the user has a specific role.
// Downstream handlers only run once both checks pass.
func RequireAuthWithRole(secret []byte, requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, secret) {
			return
		}

		role, ok := c.Get("role")
		if !ok || role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}
