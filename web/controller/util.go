package controller

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/khoshimi/Pupupu/logger"
	"github.com/khoshimi/Pupupu/web/service"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or
// remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// jsonError maps a service error onto its HTTP status and renders the
// {"error": ...} body the original clients expect.
func jsonError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrDuplicateEmail):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrWrongCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		logger.Warning("request failed:", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
