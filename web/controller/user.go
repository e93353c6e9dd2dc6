package controller

import (
	"net/http"
	"strconv"

	"github.com/khoshimi/Pupupu/web/entity"
	"github.com/khoshimi/Pupupu/web/service"

	"github.com/gin-gonic/gin"
)

// UserController handles user profile and avatar endpoints.
type UserController struct {
	BaseController

	userService    service.UserService
	storage        service.StorageService
	settingService service.SettingService
}

// NewUserController creates a UserController and sets up its routes.
func NewUserController(g *gin.RouterGroup) *UserController {
	a := &UserController{}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g.GET("/user/:email", a.getByEmail)
	g.GET("/user/id/:userId", a.getById)

	g.POST("/user/avatar", a.updateAvatar)
}

func (a *UserController) getByEmail(c *gin.Context) {
	user, err := a.userService.GetUserByEmail(c.Param("email"))
	if err != nil {
		jsonError(c, err)
		return
	}
	baseURL, err := a.settingService.GetBaseURL()
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewUserView(user, baseURL))
}

func (a *UserController) getById(c *gin.Context) {
	userId, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	user, err := a.userService.GetUserById(userId)
	if err != nil {
		jsonError(c, err)
		return
	}
	baseURL, err := a.settingService.GetBaseURL()
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewUserView(user, baseURL))
}

// updateAvatar accepts a multipart form with userId and an avatar file. The
// new file is stored first; the superseded one is removed best-effort after
// the row update.
func (a *UserController) updateAvatar(c *gin.Context) {
	userId, err := strconv.Atoi(c.PostForm("userId"))
	if err != nil || userId <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user id is required"})
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}

	// Reject before writing anything so an invalid upload leaves no file
	// behind for a missing user either.
	if _, err := a.userService.GetUserById(userId); err != nil {
		jsonError(c, err)
		return
	}

	avatarPath, err := a.storage.Save(file, service.UploadAvatar)
	if err != nil {
		jsonError(c, err)
		return
	}

	user, err := a.userService.UpdateAvatar(userId, avatarPath)
	if err != nil {
		a.storage.Remove(avatarPath)
		jsonError(c, err)
		return
	}

	baseURL, err := a.settingService.GetBaseURL()
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"avatar_url": baseURL + user.AvatarPath,
	})
}
