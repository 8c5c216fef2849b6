package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jobportal/backend/config"
)

// RoleAdmin is the role claim granting moderation access
const RoleAdmin = "admin"

// JWTService validates tokens issued by the account service
type JWTService struct {
	secretKey []byte
}

// Claims represents JWT claims
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Identity returns the user id, falling back to the subject for tokens
// that only carry a username
func (c *Claims) Identity() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{secretKey: []byte(cfg.JWTSecret)}
}

// ValidateToken validates a JWT token and returns the claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Identity() == "" {
		return nil, errors.New("token has no subject")
	}

	return claims, nil
}
