package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"messmate-api/config"
	"messmate-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID   uint            `json:"userId"`
	Email    string          `json:"email"`
	UserType models.UserType `json:"userType"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for a given user
func GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Email:    user.Email,
		UserType: user.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(config.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

func parseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return config.JWTSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// AuthRequired validates the JWT and injects claims into context
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		claims, err := parseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired token"})
			c.Abort()
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("userType", string(claims.UserType))
		c.Next()
	}
}

// RoleRequired enforces that caller has one of the allowed user types
func RoleRequired(types ...models.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get("userType")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "User type not found in context"})
			c.Abort()
			return
		}
		caller := models.UserType(val.(string))
		for _, t := range types {
			if caller == t {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "Access denied. Required role(s): " + typesString(types),
		})
		c.Abort()
	}
}

func typesString(types []models.UserType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// GetUserID extracts caller user ID from context
func GetUserID(c *gin.Context) uint {
	val, _ := c.Get("userID")
	id, _ := val.(uint)
	return id
}

// GetUserType extracts caller user type from context
func GetUserType(c *gin.Context) models.UserType {
	val, _ := c.Get("userType")
	s, _ := val.(string)
	return models.UserType(s)
}
