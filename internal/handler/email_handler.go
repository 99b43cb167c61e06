package handler

import (
	"net/http"

	"github.com/heyZakaria/01Blog/internal/service"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	svc *service.EmailService
}

func NewEmailHandler(svc *service.EmailService) *EmailHandler {
	return &EmailHandler{svc: svc}
}

// SendCode mails a verification code for the given scope (register, reset).
func (h *EmailHandler) SendCode(c *gin.Context) {
	scope := c.Param("scope")
	if !service.ValidEmailScope(scope) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "unknown scope"})
		return
	}

	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.SendCode(scope, req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "could not send verification code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
