package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RedirectMiddleware sends legacy profile deep links ("/users/...") back to
// the root page, where the frontend router takes over.
func RedirectMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/users/") {
			c.Redirect(http.StatusMovedPermanently, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
