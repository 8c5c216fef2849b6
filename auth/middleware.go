package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jobportal/backend/models"
)

const (
	// AuthClaimsKey is the key used to store JWT claims in gin context
	AuthClaimsKey = "auth_claims"
	// TokenQueryParam carries the token for clients that cannot set headers (EventSource)
	TokenQueryParam = "access_token"
)

// bearerToken extracts the token from the Authorization header, or from the
// access_token query parameter when allowQuery is set
func bearerToken(c *gin.Context, allowQuery bool) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if allowQuery {
			if token := c.Query(TokenQueryParam); token != "" {
				return token, true
			}
		}
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context, msg, details string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   msg,
		Code:    http.StatusUnauthorized,
		Details: details,
	})
}

// AuthMiddleware creates a middleware for JWT authentication
func AuthMiddleware(jwtService *JWTService) gin.HandlerFunc {
	return authenticate(jwtService, false)
}

// StreamAuthMiddleware is AuthMiddleware that also accepts the token as a
// query parameter
func StreamAuthMiddleware(jwtService *JWTService) gin.HandlerFunc {
	return authenticate(jwtService, true)
}

func authenticate(jwtService *JWTService, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" && (!allowQuery || c.Query(TokenQueryParam) == "") {
			abortUnauthorized(c, "Authorization header required", "")
			return
		}

		tokenString, ok := bearerToken(c, allowQuery)
		if !ok {
			abortUnauthorized(c, "Invalid authorization header format", "")
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token", err.Error())
			return
		}

		c.Set(AuthClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware creates a middleware that optionally authenticates
// If token is present and valid, user info is added to context
// If token is missing or invalid, request continues without user info
func OptionalAuthMiddleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c, false)
		if !ok {
			c.Next()
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set(AuthClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose role claim differs.
// It must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetAuthClaims(c)
		if claims == nil {
			abortUnauthorized(c, "Authentication required", "")
			return
		}
		if !strings.EqualFold(claims.Role, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Error: "Insufficient permissions",
				Code:  http.StatusForbidden,
			})
			return
		}
		c.Next()
	}
}

// GetAuthClaims retrieves auth claims from gin context
func GetAuthClaims(c *gin.Context) *Claims {
	claims, exists := c.Get(AuthClaimsKey)
	if !exists {
		return nil
	}
	return claims.(*Claims)
}

// UserID returns the authenticated user's id, or "" for anonymous requests
func UserID(c *gin.Context) string {
	if claims := GetAuthClaims(c); claims != nil {
		return claims.Identity()
	}
	return ""
}
