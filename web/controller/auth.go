package controller

import (
	"net/http"

	"github.com/khoshimi/Pupupu/database/model"
	"github.com/khoshimi/Pupupu/logger"
	"github.com/khoshimi/Pupupu/web/service"
	"github.com/khoshimi/Pupupu/web/session"

	"github.com/gin-gonic/gin"
)

// RegisterForm is the register request body.
type RegisterForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Username string `json:"username" form:"username"`
}

// LoginForm is the login request body.
type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// AuthController handles registration, login and logout.
type AuthController struct {
	BaseController

	userService    service.UserService
	settingService service.SettingService
}

// NewAuthController creates an AuthController and sets up its routes.
func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.POST("/register", a.register)
	g.POST("/login", a.login)
	g.POST("/logout", a.logout)
}

// register creates an account and answers with the compatibility body the
// existing clients store in browser storage. A signed session cookie is set
// as well.
func (a *AuthController) register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := a.userService.Register(form.Email, form.Password, form.Username)
	if err != nil {
		jsonError(c, err)
		return
	}

	a.establishSession(c, user)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"userId":   user.Id,
		"email":    user.Email,
		"username": user.Username,
	})
}

// login verifies credentials. The failure answer never distinguishes a
// missing account from a wrong password.
func (a *AuthController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if form.Email == "" || form.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user := a.userService.CheckUser(form.Email, form.Password)
	if user == nil {
		logger.Warningf("failed login for %q, IP: %s", form.Email, getRemoteIp(c))
		jsonError(c, service.ErrWrongCredentials)
		return
	}

	a.establishSession(c, user)
	logger.Infof("%s logged in, IP: %s", user.Email, getRemoteIp(c))
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"userId":   user.Id,
		"email":    user.Email,
		"username": user.Username,
	})
}

func (a *AuthController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s logged out", user.Email)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a *AuthController) establishSession(c *gin.Context, user *model.User) {
	sessionMaxAge, err := a.settingService.GetSessionMaxAge()
	if err != nil {
		logger.Warning("unable to get session max age:", err)
	}
	if sessionMaxAge > 0 {
		if err := session.SetMaxAge(c, sessionMaxAge*60); err != nil {
			logger.Warning("unable to set session max age:", err)
		}
	}
	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("unable to save session:", err)
	}
}
