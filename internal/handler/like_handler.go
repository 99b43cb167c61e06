package handler

import (
	"net/http"

	"github.com/heyZakaria/01Blog/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	svc *service.LikeService
}

func NewLikeHandler(svc *service.LikeService) *LikeHandler {
	return &LikeHandler{svc: svc}
}

// Toggle likes the post, or removes the caller's like if one exists.
func (h *LikeHandler) Toggle(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	liked, err := h.svc.Toggle(c.Request.Context(), postID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	count, err := h.svc.CountFor(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "like_count": count})
}
