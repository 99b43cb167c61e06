package handler

import (
	"net/http"

	"github.com/heyZakaria/01Blog/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler groups the moderation surface: report review, user
// management and platform analytics.
type AdminHandler struct {
	reports *service.ReportService
	users   *service.UserService
	stats   *service.StatsService
}

func NewAdminHandler(reports *service.ReportService, users *service.UserService, stats *service.StatsService) *AdminHandler {
	return &AdminHandler{reports: reports, users: users, stats: stats}
}

func (h *AdminHandler) ListReports(c *gin.Context) {
	var (
		views []service.ReportView
		err   error
	)
	if status := c.Query("status"); status != "" {
		views, err = h.reports.ListByStatus(c.Request.Context(), status)
	} else {
		views, err = h.reports.ListAll(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *AdminHandler) GetReport(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	report, err := h.reports.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ResolveReport sets the report's status and notes, optionally banning the
// reported user in the same step.
func (h *AdminHandler) ResolveReport(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status  string `json:"status" binding:"required"`
		Notes   string `json:"notes"`
		BanUser bool   `json:"ban_user"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	report, err := h.reports.Resolve(c.Request.Context(), id, req.Status, req.Notes, req.BanUser)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AdminHandler) DeleteReport(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.reports.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) ToggleBan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	banned, err := h.users.ToggleBan(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"banned": banned})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	overview, err := h.stats.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
