package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/pkg/response"
)

type chatService interface {
	History(ctx context.Context, principal *models.JWTClaims) (*dto.ChatHistoryResponse, error)
	Post(ctx context.Context, principal *models.JWTClaims, content string) (*models.ChatMessageView, error)
	Delete(ctx context.Context, principal *models.JWTClaims, messageID string) error
}

// ChatHandler exposes the college channel over plain HTTP for clients
// without a websocket.
type ChatHandler struct {
	chat chatService
}

// NewChatHandler constructs ChatHandler.
func NewChatHandler(chat chatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// History godoc
// @Summary Recent channel messages
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /chat [get]
func (h *ChatHandler) History(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	history, err := h.chat.History(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}

// Send godoc
// @Summary Post to the channel
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ChatSendRequest true "Message"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /chat/send [post]
func (h *ChatHandler) Send(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	var req dto.ChatSendRequest
	if !bindJSON(c, &req, "invalid message payload") {
		return
	}
	msg, err := h.chat.Post(c.Request.Context(), claims, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, msg)
}

// Delete godoc
// @Summary Delete one of your messages
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 204 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /chat/delete/{id} [post]
func (h *ChatHandler) Delete(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	if err := h.chat.Delete(c.Request.Context(), claims, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
