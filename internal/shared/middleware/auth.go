package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"friendshavestuff-backend/internal/shared"
	appjwt "friendshavestuff-backend/pkg/jwt"
)

const principalKey = "principal"

var ErrNoPrincipal = errors.New("no authenticated principal in context")

// AuthMiddleware verifies the bearer token issued by the identity gateway and
// stores the resulting Principal in the request context.
func AuthMiddleware(manager *appjwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(401, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := manager.ValidateToken(parts[1])
		if err != nil {
			c.JSON(401, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(401, gin.H{"error": "invalid user ID in token"})
			c.Abort()
			return
		}

		c.Set(principalKey, shared.Principal{
			ID:        userID,
			Email:     claims.Email,
			Name:      claims.Name,
			AvatarURL: claims.AvatarURL,
			Admin:     claims.Admin,
		})

		c.Next()
	}
}

// AdminMiddleware rejects requests whose principal lacks the admin flag.
// Must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := GetPrincipal(c)
		if err != nil || !p.Admin {
			c.JSON(403, gin.H{
				"success": false,
				"error":   "Access denied: admin role required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the Principal set by AuthMiddleware.
func GetPrincipal(c *gin.Context) (shared.Principal, error) {
	v, exists := c.Get(principalKey)
	if !exists {
		return shared.Principal{}, ErrNoPrincipal
	}
	p, ok := v.(shared.Principal)
	if !ok {
		return shared.Principal{}, ErrNoPrincipal
	}
	return p, nil
}
