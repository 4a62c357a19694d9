package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthplus/identity/internal/database"
	"github.com/healthplus/identity/internal/models"
	"github.com/healthplus/identity/internal/tokenstore"
	"github.com/healthplus/identity/pkg/auth"
)

const UserKey = "currentUser"

// AuthMiddleware verifies the bearer access token and loads the
// account it belongs to into the request context.
func AuthMiddleware(jwtManager *auth.JWTManager, tokens tokenstore.TokenStore, store database.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "missing or invalid token"})
			c.Abort()
			return
		}

		blacklisted, err := tokens.IsBlacklisted(c.Request.Context(), rawToken)
		if err != nil || blacklisted {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "token is no longer valid"})
			c.Abort()
			return
		}

		claims, err := jwtManager.Verify(rawToken, auth.TokenTypeAccess)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "invalid token"})
			c.Abort()
			return
		}

		user, err := store.GetUser(claims.Subject)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "invalid token"})
			c.Abort()
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"status": false, "message": "Account is deactivated"})
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// RequireSuperuser gates admin-only routes. Non-superusers get a
// plain-text 403 rather than the JSON failure shape.
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := c.Get(UserKey)
		if !ok {
			c.String(http.StatusForbidden, "403 Forbidden")
			c.Abort()
			return
		}
		if u, ok := user.(*models.User); !ok || !u.IsSuperuser {
			c.String(http.StatusForbidden, "403 Forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser pulls the authenticated account out of the context.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(UserKey).(*models.User)
}
