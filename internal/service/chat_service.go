package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/internal/policy"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
)

type chatRepository interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	FindByID(ctx context.Context, id string) (*models.ChatMessage, error)
	SoftDelete(ctx context.Context, id, senderUserID string) error
	ListChannel(ctx context.Context, collegeKey string, limit int) ([]models.ChatMessageView, error)
}

// Broadcaster fans chat events out to the live members of a channel.
type Broadcaster interface {
	Broadcast(channel policy.ChannelID, event dto.ChatEvent)
}

// ChatServiceConfig bounds chat history and message size.
type ChatServiceConfig struct {
	HistoryLimit     int
	MaxMessageLength int
}

// ChatMember is a student resolved to their college channel.
type ChatMember struct {
	Principal *models.JWTClaims
	Student   *models.Student
	Channel   policy.ChannelID
}

// ChatService posts, lists and deletes messages in college channels.
type ChatService struct {
	messages    chatRepository
	students    studentFinder
	broadcaster Broadcaster
	metrics     *MetricsService
	logger      *zap.Logger
	config      ChatServiceConfig
}

// NewChatService constructs a ChatService.
func NewChatService(messages chatRepository, students studentFinder, metrics *MetricsService, logger *zap.Logger, config ChatServiceConfig) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.HistoryLimit <= 0 {
		config.HistoryLimit = 50
	}
	if config.MaxMessageLength <= 0 {
		config.MaxMessageLength = 1000
	}
	return &ChatService{
		messages: messages,
		students: students,
		metrics:  metrics,
		logger:   logger,
		config:   config,
	}
}

// SetBroadcaster attaches the live fan-out. The hub needs the service to
// handle client frames, so it is wired after construction.
func (s *ChatService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Join resolves the caller's channel. Unapproved students get the approval
// error explaining why they cannot chat.
func (s *ChatService) Join(ctx context.Context, principal *models.JWTClaims) (*ChatMember, error) {
	if err := policy.Authorize(principal, policy.CapChat); err != nil {
		return nil, err
	}
	student, err := s.students.FindByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, notFoundOr(err, "student profile not found", "load student profile")
	}
	channel, ok := policy.ResolveChannel(student)
	if !ok {
		return nil, policy.RequireApproved(student)
	}
	return &ChatMember{Principal: principal, Student: student, Channel: channel}, nil
}

// History returns the most recent messages of the caller's channel in send
// order.
func (s *ChatService) History(ctx context.Context, principal *models.JWTClaims) (*dto.ChatHistoryResponse, error) {
	member, err := s.Join(ctx, principal)
	if err != nil {
		return nil, err
	}
	messages, err := s.messages.ListChannel(ctx, string(member.Channel), s.config.HistoryLimit)
	if err != nil {
		return nil, appErrors.Dependency(err, "list chat messages")
	}
	return &dto.ChatHistoryResponse{Channel: member.Channel.GroupName(), Messages: messages}, nil
}

// Post resolves the caller's channel and posts the message to it.
func (s *ChatService) Post(ctx context.Context, principal *models.JWTClaims, content string) (*models.ChatMessageView, error) {
	member, err := s.Join(ctx, principal)
	if err != nil {
		return nil, err
	}
	return s.PostAs(ctx, member, content)
}

// PostAs posts for an already resolved member.
func (s *ChatService) PostAs(ctx context.Context, member *ChatMember, content string) (*models.ChatMessageView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("message cannot be empty")
	}
	if utf8.RuneCountInString(content) > s.config.MaxMessageLength {
		return nil, invalid("message is too long")
	}

	msg := &models.ChatMessage{SenderUserID: member.Principal.UserID, Content: content}
	if err := s.messages.Create(ctx, msg); err != nil {
		s.logger.Error("failed to store chat message", zap.String("user_id", member.Principal.UserID), zap.Error(err))
		return nil, appErrors.Dependency(err, "store chat message")
	}
	view := &models.ChatMessageView{
		ChatMessage:     *msg,
		SenderName:      member.Principal.Name,
		SenderStudentID: member.Student.StudentID,
	}
	s.metrics.RecordChatMessage()
	s.broadcast(member.Channel, dto.ChatEvent{Type: dto.ChatEventMessage, Message: view})
	return view, nil
}

// Delete soft-deletes one of the caller's messages.
func (s *ChatService) Delete(ctx context.Context, principal *models.JWTClaims, messageID string) error {
	member, err := s.Join(ctx, principal)
	if err != nil {
		return err
	}
	return s.DeleteAs(ctx, member, messageID)
}

// DeleteAs deletes for an already resolved member.
func (s *ChatService) DeleteAs(ctx context.Context, member *ChatMember, messageID string) error {
	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return notFoundOr(err, "message not found", "load chat message")
	}
	if msg.SenderUserID != member.Principal.UserID {
		return appErrors.Clone(appErrors.ErrForbidden, "you can only delete your own messages")
	}
	if msg.IsDeleted {
		return appErrors.Clone(appErrors.ErrNotFound, "message not found")
	}
	if err := s.messages.SoftDelete(ctx, messageID, member.Principal.UserID); err != nil {
		return notFoundOr(err, "message not found", "delete chat message")
	}
	s.broadcast(member.Channel, dto.ChatEvent{Type: dto.ChatEventDeleted, MessageID: messageID})
	return nil
}

func (s *ChatService) broadcast(channel policy.ChannelID, event dto.ChatEvent) {
	if s.broadcaster == nil {
		return
	}
	event.Channel = channel.GroupName()
	s.broadcaster.Broadcast(channel, event)
}
