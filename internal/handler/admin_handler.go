package handler

import (
	"net/http"

	"ugandapi-chat/internal/services"
	"ugandapi-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes operator actions.
type AdminHandler struct {
	archive *services.ArchiveService
}

func NewAdminHandler(archive *services.ArchiveService) *AdminHandler {
	return &AdminHandler{archive: archive}
}

// Archive snapshots the chat log to object storage.
func (h *AdminHandler) Archive(c *gin.Context) {
	key, err := h.archive.Archive(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.ArchiveResponse{Key: key})
}
