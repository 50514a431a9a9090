package handler

import (
	"net/http"

	"ugandapi-chat/internal/services"
	"ugandapi-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles the chat log and the relay endpoint.
type ChatHandler struct {
	service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// List returns the full chat log in insertion order.
func (h *ChatHandler) List(c *gin.Context) {
	messages, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// Get returns one message by id.
func (h *ChatHandler) Get(c *gin.Context) {
	message, err := h.service.Get(c.Request.Context(), c.Param("messageId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}

// Post relays a chat message to the assistant and returns the produced
// message. Moderation rejections still come back 201 with the rejection
// text as content.
func (h *ChatHandler) Post(c *gin.Context) {
	var req httpdto.NewChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request body"))
		return
	}

	message, err := h.service.Post(c.Request.Context(), services.PostInput{
		Sender:   req.Sender,
		Content:  req.Content,
		ThreadID: req.ThreadID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}
