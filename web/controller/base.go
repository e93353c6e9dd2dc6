// Package controller provides the HTTP handlers of the pupupu API: account
// registration and login, works CRUD, avatars, and the admin endpoints.
package controller

import (
	"net/http"

	"github.com/khoshimi/Pupupu/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers.
type BaseController struct{}

// checkLogin is a middleware guarding endpoints that require a signed
// session.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		c.Abort()
		return
	}
	c.Next()
}
