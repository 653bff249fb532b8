package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
)

type chatServiceMock struct {
	content   string
	deletedID string
	deleteErr error
}

func (m *chatServiceMock) History(ctx context.Context, principal *models.JWTClaims) (*dto.ChatHistoryResponse, error) {
	return &dto.ChatHistoryResponse{Channel: "College_iit bombay", Messages: []models.ChatMessageView{}}, nil
}

func (m *chatServiceMock) Post(ctx context.Context, principal *models.JWTClaims, content string) (*models.ChatMessageView, error) {
	m.content = content
	return &models.ChatMessageView{ChatMessage: models.ChatMessage{ID: "msg-1", Content: content}}, nil
}

func (m *chatServiceMock) Delete(ctx context.Context, principal *models.JWTClaims, messageID string) error {
	m.deletedID = messageID
	return m.deleteErr
}

func TestChatHandlerHistory(t *testing.T) {
	handler := NewChatHandler(&chatServiceMock{})

	c, w := newTestContext(http.MethodGet, "/chat", nil, studentClaims())
	handler.History(c)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "College_iit bombay", data["channel"])
}

func TestChatHandlerSendAndDelete(t *testing.T) {
	chat := &chatServiceMock{}
	handler := NewChatHandler(chat)

	c, w := newTestContext(http.MethodPost, "/chat/send", jsonBody(t, dto.ChatSendRequest{Content: "hello"}), studentClaims())
	handler.Send(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "hello", chat.content)

	chat.deleteErr = appErrors.Clone(appErrors.ErrForbidden, "you can only delete your own messages")
	c, w = newTestContext(http.MethodPost, "/chat/delete/msg-2", nil, studentClaims())
	c.AddParam("id", "msg-2")
	handler.Delete(c)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "msg-2", chat.deletedID)
}
