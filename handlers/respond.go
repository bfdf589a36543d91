// Package handlers exposes the HTTP surface: feeds, engagement, search,
// posting and the account/session endpoints. Every response is a JSON
// envelope carrying a success flag; faults are mapped to their status class
// here and nowhere else.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"reelfeed/apperr"
	"reelfeed/middleware"
)

// fail converts any error into the uniform failure envelope. Internal
// faults are logged with their cause but reach the caller as a generic
// message.
func fail(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{
		"success": false,
		"message": apperr.PublicMessage(err),
	})
}

// callerID returns the authenticated account id, or "" for anonymous
// requests.
func callerID(c *gin.Context) string {
	id, _ := c.Get(middleware.ContextAccountID)
	s, _ := id.(string)
	return s
}
