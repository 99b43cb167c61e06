package handler

import (
	"net/http"

	"github.com/heyZakaria/01Blog/internal/storage"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	store *storage.FileStore
}

func NewMediaHandler(store *storage.FileStore) *MediaHandler {
	return &MediaHandler{store: store}
}

// Serve streams a stored media file by its generated filename.
func (h *MediaHandler) Serve(c *gin.Context) {
	path, err := h.store.Path(c.Param("filename"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "file not found"})
		return
	}
	c.File(path)
}
