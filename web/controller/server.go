package controller

import (
	"net/http"
	"strconv"

	"github.com/khoshimi/Pupupu/logger"
	"github.com/khoshimi/Pupupu/web/service"

	"github.com/gin-gonic/gin"
)

// ServerController exposes the login-gated admin endpoints: host status and
// buffered logs.
type ServerController struct {
	BaseController

	serverService service.ServerService
}

// NewServerController creates a ServerController and sets up its routes.
func NewServerController(g *gin.RouterGroup) *ServerController {
	a := &ServerController{}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/", a.checkLogin)

	g.GET("/status", a.status)
	g.GET("/logs", a.getLogs)
}

func (a *ServerController) status(c *gin.Context) {
	c.JSON(http.StatusOK, a.serverService.GetStatus())
}

func (a *ServerController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "50"))
	if err != nil || count <= 0 {
		count = 50
	}
	level := c.DefaultQuery("level", "INFO")

	logs := logger.GetLogs(count, level)
	c.JSON(http.StatusOK, logs)
}
