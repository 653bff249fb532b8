package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/internal/policy"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 8 * 1024

	commandTimeout = 10 * time.Second

	sendBuffer = 32
)

// Client commands.
const (
	actionSend   = "send"
	actionDelete = "delete"
	actionLeave  = "leave"
)

// Client is one websocket connection of a chat member.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	chat    ChatService
	send    chan []byte
	user    *models.JWTClaims
	userID  string
	channel policy.ChannelID
	logger  *zap.Logger
}

func newClient(hub *Hub, conn *websocket.Conn, chat ChatService, user *models.JWTClaims, channel policy.ChannelID, logger *zap.Logger) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		chat:    chat,
		send:    make(chan []byte, sendBuffer),
		user:    user,
		userID:  user.UserID,
		channel: channel,
		logger:  logger.With(zap.String("user_id", user.UserID), zap.String("channel", channel.GroupName())),
	}
}

// readPump handles client commands until the connection closes.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { return c.conn.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn("unexpected chat close", zap.Error(err))
			} else {
				c.logger.Debug("chat connection closed", zap.Error(err))
			}
			return
		}

		var cmd dto.ChatCommand
		if err := json.Unmarshal(payload, &cmd); err != nil {
			c.hub.deliver(c, errorEvent("malformed command"))
			continue
		}
		if cmd.Action == actionLeave {
			return
		}
		if err := c.handle(cmd); err != nil {
			c.hub.deliver(c, errorEvent(appErrors.FromError(err).Message))
		}
	}
}

// handle runs a command through the chat service, which re-resolves the
// member's channel so a revoked approval takes effect immediately.
func (c *Client) handle(cmd dto.ChatCommand) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch cmd.Action {
	case actionSend:
		_, err := c.chat.Post(ctx, c.user, cmd.Content)
		return err
	case actionDelete:
		return c.chat.Delete(ctx, c.user, cmd.ID)
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unknown action")
	}
}

// writePump forwards queued events and keeps the connection alive.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func errorEvent(message string) dto.ChatEvent {
	return dto.ChatEvent{Type: dto.ChatEventError, Error: message}
}
