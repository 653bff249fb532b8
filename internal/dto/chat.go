package dto

import "github.com/noah-isme/placement-portal-api/internal/models"

// ChatSendRequest posts a message to the caller's college channel.
type ChatSendRequest struct {
	Content string `json:"content"`
}

// ChatHistoryResponse is the visible window of a channel.
type ChatHistoryResponse struct {
	Channel  string                   `json:"channel"`
	Messages []models.ChatMessageView `json:"messages"`
}

// Chat event types sent to websocket members.
const (
	ChatEventJoined            = "joined"
	ChatEventMessage           = "message"
	ChatEventDeleted           = "deleted"
	ChatEventError             = "error"
	ChatEventMembershipRevoked = "membership_revoked"
)

// ChatEvent is a server frame on the chat websocket.
type ChatEvent struct {
	Type      string                  `json:"type"`
	Channel   string                  `json:"channel,omitempty"`
	Message   *models.ChatMessageView `json:"message,omitempty"`
	MessageID string                  `json:"id,omitempty"`
	Error     string                  `json:"error,omitempty"`
}

// ChatCommand is a client frame on the chat websocket.
type ChatCommand struct {
	Action  string `json:"action"`
	Content string `json:"content,omitempty"`
	ID      string `json:"id,omitempty"`
}
