package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"homestead/internal/auth"
)

const callerIDKey = "callerID"

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// authRequired gates a route on a valid session cookie and stores the caller
// id in the request context. An expired token additionally clears the cookie
// so the client stops presenting it.
func (h *Handler) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not authorized."})
			return
		}

		userID, err := h.tokens.Verify(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				clearSessionCookie(c)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not authorized."})
			return
		}

		c.Set(callerIDKey, userID)
		c.Next()
	}
}

// callerID returns the authenticated user id set by authRequired, zero on
// unauthenticated routes.
func callerID(c *gin.Context) int64 {
	id, _ := c.Get(callerIDKey)
	userID, _ := id.(int64)
	return userID
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if h.logger == nil {
			return
		}
		h.logger.WithFields(map[string]any{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request")
	}
}
