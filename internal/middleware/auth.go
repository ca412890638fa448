package middleware

import (
	"net/http"
	"strings"

	"redditradar/internal/db"
	"redditradar/internal/models"
	"redditradar/internal/services"

	"github.com/gin-gonic/gin"
)

const CurrentUserKey = "current_user"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func loadUser(c *gin.Context) *models.User {
	token := bearerToken(c)
	if token == "" {
		return nil
	}

	claims, err := services.GetTokenService().Verify(token)
	if err != nil {
		return nil
	}

	var user models.User
	if err := db.DB.First(&user, claims.UserID).Error; err != nil {
		return nil
	}

	c.Set(CurrentUserKey, &user)
	return &user
}

// OptionalAuth loads the current user into the context when a valid bearer
// token is present; anonymous requests pass through.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		loadUser(c)
		c.Next()
	}
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CurrentUserKey); !exists {
			if loadUser(c) == nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
				return
			}
		}
		c.Next()
	}
}

// RequireAdmin rejects authenticated users without the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			return
		}
		c.Next()
	}
}

// RequirePremium gates premium-only routes on the derived membership status.
func RequirePremium() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !user.IsPremium() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "premium membership required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by OptionalAuth/RequireAuth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if u, exists := c.Get(CurrentUserKey); exists {
		return u.(*models.User)
	}
	return nil
}
