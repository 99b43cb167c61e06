package handler

import (
	"net/http"

	"github.com/heyZakaria/01Blog/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	svc *service.SubscriptionService
}

func NewSubscriptionHandler(svc *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// Toggle follows the target user, or unfollows if already following.
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	following, err := h.svc.ToggleFollow(c.Request.Context(), targetID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}

func (h *SubscriptionHandler) Relation(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	following, err := h.svc.IsFollowing(c.Request.Context(), currentUserID(c), targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	followedBy, err := h.svc.IsFollowing(c.Request.Context(), targetID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following, "followed_by": followedBy})
}

func (h *SubscriptionHandler) Followers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	users, err := h.svc.Followers(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *SubscriptionHandler) Following(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	users, err := h.svc.Following(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *SubscriptionHandler) Counts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	followers, err := h.svc.FollowerCount(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	following, err := h.svc.FollowingCount(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followers": followers, "following": following})
}
