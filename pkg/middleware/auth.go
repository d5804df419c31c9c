package middleware

import (
	"net/http"
	"time"

	"velvetroom/pkg/session"

	"github.com/gin-gonic/gin"
)

// SessionAuth rejects requests without a live user session. On success the
// user id, username and token are placed into the gin context.
func SessionAuth(store session.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(session.UserCookie)
		data, err := store.Get(c.Request.Context(), session.ScopeUser, token, ttl)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			return
		}

		c.Set("user_id", data.UserID)
		c.Set("username", data.Username)
		c.Set("session_token", token)
		c.Next()
	}
}

// OptionalSessionAuth resolves the session if one exists but never rejects.
// Handlers that answer differently for anonymous callers use this.
func OptionalSessionAuth(store session.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(session.UserCookie)
		if data, err := store.Get(c.Request.Context(), session.ScopeUser, token, ttl); err == nil {
			c.Set("user_id", data.UserID)
			c.Set("username", data.Username)
			c.Set("session_token", token)
		}
		c.Next()
	}
}

// AdminAuth guards the CMS endpoints with the admin session scope.
func AdminAuth(store session.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(session.AdminCookie)
		data, err := store.Get(c.Request.Context(), session.ScopeAdmin, token, ttl)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Admin authentication required",
			})
			return
		}

		c.Set("admin_username", data.Username)
		c.Set("session_token", token)
		c.Next()
	}
}
