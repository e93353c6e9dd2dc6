package controller

import (
	"net/http"
	"strconv"

	"github.com/khoshimi/Pupupu/web/service"

	"github.com/gin-gonic/gin"
)

// WorkController handles the works CRUD endpoints.
type WorkController struct {
	BaseController

	workService service.WorkService
	tagService  service.TagService
	storage     service.StorageService
}

// NewWorkController creates a WorkController and sets up its routes.
func NewWorkController(g *gin.RouterGroup) *WorkController {
	a := &WorkController{}
	a.initRouter(g)
	return a
}

func (a *WorkController) initRouter(g *gin.RouterGroup) {
	g.GET("/works/user/:userId", a.listByUser)
	g.GET("/works/gallery/:gallery", a.listByGallery)
	g.GET("/works/:workId", a.getWork)

	g.POST("/works", a.createWork)
	g.DELETE("/works/:workId", a.deleteWork)
}

func (a *WorkController) listByUser(c *gin.Context) {
	userId, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	works, err := a.workService.ListByUser(userId)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, works)
}

func (a *WorkController) listByGallery(c *gin.Context) {
	works, err := a.workService.ListByGallery(c.Param("gallery"))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, works)
}

func (a *WorkController) getWork(c *gin.Context) {
	workId, err := strconv.Atoi(c.Param("workId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work id"})
		return
	}
	work, err := a.workService.GetById(workId)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, work)
}

// createWork accepts a multipart form: userId, title, description,
// comma-joined tags, gallery, and an optional image file.
func (a *WorkController) createWork(c *gin.Context) {
	userId, _ := strconv.Atoi(c.PostForm("userId"))
	title := c.PostForm("title")
	description := c.PostForm("description")
	tags := a.tagService.ParseNames(c.PostForm("tags"))
	gallery := c.PostForm("gallery")

	imagePath := ""
	if file, err := c.FormFile("image"); err == nil {
		imagePath, err = a.storage.Save(file, service.UploadWork)
		if err != nil {
			jsonError(c, err)
			return
		}
	}

	art, err := a.workService.Create(userId, title, description, tags, gallery, imagePath)
	if err != nil {
		// The uploaded file stays behind as an orphan here; the daily
		// sweep job reclaims it.
		jsonError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"workId":  art.Id,
	})
}

func (a *WorkController) deleteWork(c *gin.Context) {
	workId, err := strconv.Atoi(c.Param("workId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work id"})
		return
	}
	if err := a.workService.Delete(workId); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
