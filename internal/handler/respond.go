package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heyZakaria/01Blog/internal/middleware"
	"github.com/heyZakaria/01Blog/internal/model"
	"github.com/heyZakaria/01Blog/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service sentinels onto HTTP statuses. Anything
// unrecognized is a 500 and gets logged, never echoed to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrReportNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrAccountBanned):
		c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrDuplicateReport),
		errors.Is(err, service.ErrReportClosed):
		c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrSelfReport):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
	}
}

func currentUserID(c *gin.Context) uint64 {
	return c.GetUint64(middleware.ContextUserIDKey)
}

func isAdmin(c *gin.Context) bool {
	return c.GetString(middleware.ContextRoleKey) == model.RoleAdmin
}

func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid id"})
		return 0, false
	}
	return id, true
}
