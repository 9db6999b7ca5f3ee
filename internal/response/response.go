// Package response standardizes JSON responses and error mapping at the
// HTTP boundary.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gosafe-transit/service-routes/internal/domain"
)

// OK writes a 200 with the given body.
func OK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// Created writes a 201 with the given body.
func Created(c *gin.Context, body interface{}) {
	c.JSON(http.StatusCreated, body)
}

// BadRequest writes a 400 with an error message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// Unauthorized writes a 401 with an error message.
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// Error maps a service error to an HTTP response. AppError messages that are
// safe for end users pass through with their status; everything else
// collapses to the generic message so upstream detail never leaks.
func Error(c *gin.Context, err error) {
	if appErr, ok := domain.AsAppError(err); ok && appErr.UserFacing() {
		c.JSON(appErr.Status, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// RouteError is Error with the route-specific generic message for unknown
// failures from the plan pipeline.
func RouteError(c *gin.Context, err error) {
	if appErr, ok := domain.AsAppError(err); ok && appErr.UserFacing() {
		c.JSON(appErr.Status, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate routes."})
}
