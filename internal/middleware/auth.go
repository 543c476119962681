package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func abortJSON(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

// AuthRequired middleware checks if a student is logged in. API calls get a 401, pages
// are redirected to the login page.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)

		if session == nil {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				abortJSON(c, http.StatusUnauthorized, "UNAUTHENTICATED", "login required")
				return
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminRequired lets only sessions flagged as admin through. Use after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil || !session.IsAdmin {
			abortJSON(c, http.StatusForbidden, "FORBIDDEN", "admin access required")
			return
		}
		c.Next()
	}
}
