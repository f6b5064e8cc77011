package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/DhavalSuthar-24/gully/pkg/token"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	AuthScorerIDKey = "auth_scorer_id"
)

// AuthMiddleware validates the bearer token and confirms the scorer account
// still exists before letting a request through.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			return
		}

		var exists bool
		if err := db.Table("scorers").Select("1").Where("id = ? AND deleted_at IS NULL", claims.ScorerID).Scan(&exists).Error; err != nil || !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Scorer not found or inactive"})
			return
		}

		c.Set(AuthScorerIDKey, claims.ScorerID)
		c.Next()
	}
}

// GetScorerIDFromContext extracts the authenticated scorer ID from the context
func GetScorerIDFromContext(c *gin.Context) (uint, error) {
	scorerID, exists := c.Get(AuthScorerIDKey)
	if !exists {
		return 0, errors.New("scorer ID not found in context")
	}

	sid, ok := scorerID.(uint)
	if !ok {
		return 0, fmt.Errorf("scorer ID has unexpected type: %T", scorerID)
	}

	return sid, nil
}
