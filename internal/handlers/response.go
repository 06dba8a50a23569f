package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/apperr"
)

// statusFor maps the service error taxonomy onto HTTP. Anything unmarked is a
// 500 so bugs stay visible.
func statusFor(err error) int {
	switch {
	case apperr.IsValidation(err):
		return http.StatusBadRequest
	case apperr.IsUnauthorized(err):
		return http.StatusUnauthorized
	case apperr.IsForbidden(err):
		return http.StatusForbidden
	case apperr.IsNotFound(err):
		return http.StatusNotFound
	case apperr.IsConflict(err):
		return http.StatusConflict
	case apperr.IsDependency(err):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func RespondError(c *gin.Context, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(statusFor(err), gin.H{"error": msg})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
