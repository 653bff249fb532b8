package websocket

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/middleware"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/internal/service"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
	"github.com/noah-isme/placement-portal-api/pkg/middleware/cors"
	"github.com/noah-isme/placement-portal-api/pkg/response"
)

// ChatService is the chat behaviour the websocket needs.
type ChatService interface {
	Join(ctx context.Context, principal *models.JWTClaims) (*service.ChatMember, error)
	Post(ctx context.Context, principal *models.JWTClaims, content string) (*models.ChatMessageView, error)
	Delete(ctx context.Context, principal *models.JWTClaims, messageID string) error
}

// Handler upgrades authenticated requests into chat connections.
type Handler struct {
	hub      *Hub
	chat     ChatService
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHandler builds the websocket handler. Origins follow the CORS allow list.
func NewHandler(hub *Hub, chat ChatService, allowedOrigins []string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	allowed := cors.OriginChecker(allowedOrigins)
	return &Handler{
		hub:  hub,
		chat: chat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed(origin)
			},
		},
		logger: logger,
	}
}

// Serve godoc
// @Summary Join the college chat channel
// @Description Upgrades to a websocket bound to the caller's college channel. Pass the access token as the access_token query parameter.
// @Tags Chat
// @Param access_token query string true "Access token"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} response.Envelope
// @Router /chat/ws [get]
func (h *Handler) Serve(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("chat upgrade failed", zap.String("user_id", claims.UserID), zap.Error(err))
		return
	}

	member, err := h.chat.Join(c.Request.Context(), claims)
	if err != nil {
		rejectConnection(conn, appErrors.FromError(err).Message)
		return
	}

	client := newClient(h.hub, conn, h.chat, claims, member.Channel, h.logger)
	h.hub.Register(client)
	h.hub.deliver(client, dto.ChatEvent{Type: dto.ChatEventJoined, Channel: member.Channel.GroupName()})

	go client.writePump()
	go client.readPump()
}

func rejectConnection(conn *websocket.Conn, message string) {
	defer conn.Close()
	deadline := time.Now().Add(writeWait)
	_ = conn.SetWriteDeadline(deadline)
	_ = conn.WriteJSON(errorEvent(message))
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, ""), deadline)
}
