package message

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	messageerrors "github.com/Trivikram-Jagirdar/workflow-managmenr/internal/message/errors"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/shared/contextutil"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/user"
)

//go:generate mockgen -source=message_service.go -destination=mock/message_service_mock.go -package=mock

type Service interface {
	Send(ctx context.Context, senderID, senderName string, req SendMessageRequest) (MessageResponse, error)
	GetConversation(ctx context.Context, userID, otherID string) ([]MessageResponse, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type service struct {
	repo   Repository
	users  user.Service
	logger *zap.Logger
}

func NewService(repo Repository, users user.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("message.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("message.service")
	}
	return &service{repo: repo, users: users, logger: l}
}

func (s *service) Send(ctx context.Context, senderID, senderName string, req SendMessageRequest) (MessageResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return MessageResponse{}, messageerrors.ErrEmptyContent
	}
	if _, err := uuid.Parse(req.ReceiverID); err != nil {
		return MessageResponse{}, messageerrors.ErrInvalidReceiverID
	}
	if req.ReceiverID == senderID {
		return MessageResponse{}, messageerrors.ErrSelfMessage
	}

	receiver, err := s.users.GetByID(ctx, req.ReceiverID)
	if err != nil {
		return MessageResponse{}, err
	}

	m := &Message{
		SenderID:     senderID,
		SenderName:   senderName,
		ReceiverID:   receiver.ID,
		ReceiverName: receiver.Name,
		Content:      content,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		l.Error("failed to store message", zap.Error(err))
		return MessageResponse{}, err
	}

	l.Info("message sent",
		zap.String("message_id", m.ID.String()),
		zap.String("receiver_id", m.ReceiverID),
	)
	return mapToResponse(*m), nil
}

// GetConversation lists the thread with another user and marks their
// messages as read, so the unread count reflects what has been seen.
func (s *service) GetConversation(ctx context.Context, userID, otherID string) ([]MessageResponse, error) {
	if _, err := uuid.Parse(otherID); err != nil {
		return nil, messageerrors.ErrInvalidReceiverID
	}

	msgs, err := s.repo.FindConversation(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkConversationRead(ctx, otherID, userID); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("failed to mark conversation read", zap.Error(err))
	}

	resp := make([]MessageResponse, len(msgs))
	for i, m := range msgs {
		resp[i] = mapToResponse(m)
	}
	return resp, nil
}

func (s *service) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func mapToResponse(m Message) MessageResponse {
	return MessageResponse{
		ID:           m.ID.String(),
		SenderID:     m.SenderID,
		SenderName:   m.SenderName,
		ReceiverID:   m.ReceiverID,
		ReceiverName: m.ReceiverName,
		Content:      m.Content,
		Read:         m.Read,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
	}
}
