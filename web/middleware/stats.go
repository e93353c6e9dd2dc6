package middleware

import (
	"github.com/khoshimi/Pupupu/web/service"

	"github.com/gin-gonic/gin"
)

// StatsMiddleware counts served requests for the status endpoint.
func StatsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		service.RequestCount.Inc()
		c.Next()
	}
}
