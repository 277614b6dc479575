package message

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	messageerrors "github.com/Trivikram-Jagirdar/workflow-managmenr/internal/message/errors"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/user"
	usererrors "github.com/Trivikram-Jagirdar/workflow-managmenr/internal/user/errors"
)

type fakeMessageRepo struct {
	messages []*Message
}

func (f *fakeMessageRepo) Create(ctx context.Context, m *Message) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	cp := *m
	f.messages = append(f.messages, &cp)
	return nil
}

func (f *fakeMessageRepo) FindConversation(ctx context.Context, userID, otherID string) ([]Message, error) {
	var out []Message
	for _, m := range f.messages {
		if (m.SenderID == userID && m.ReceiverID == otherID) ||
			(m.SenderID == otherID && m.ReceiverID == userID) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) MarkConversationRead(ctx context.Context, senderID, receiverID string) error {
	for _, m := range f.messages {
		if m.SenderID == senderID && m.ReceiverID == receiverID {
			m.Read = true
		}
	}
	return nil
}

func (f *fakeMessageRepo) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	var n int64
	for _, m := range f.messages {
		if m.ReceiverID == receiverID && !m.Read {
			n++
		}
	}
	return n, nil
}

type fakeUserService struct {
	getByIDFn func(ctx context.Context, id string) (user.UserResponse, error)
}

func (f *fakeUserService) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	return user.UserResponse{}, nil
}
func (f *fakeUserService) GetAll(ctx context.Context) ([]user.UserResponse, error) {
	return nil, nil
}
func (f *fakeUserService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeUserService) Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	return user.UserResponse{}, nil
}
func (f *fakeUserService) ToggleStatus(ctx context.Context, id string, isActive bool) error {
	return nil
}
func (f *fakeUserService) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeUserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	return nil
}
func (f *fakeUserService) ResetPassword(ctx context.Context, userID, newPassword string) error {
	return nil
}

func TestService_Send_SnapshotsBothParties(t *testing.T) {
	ctx := context.Background()
	repo := &fakeMessageRepo{}

	receiverID := uuid.New().String()
	users := &fakeUserService{
		getByIDFn: func(ctx context.Context, id string) (user.UserResponse, error) {
			assert.Equal(t, receiverID, id)
			return user.UserResponse{ID: receiverID, Name: "Ravi Kumar"}, nil
		},
	}

	svc := NewService(repo, users, zap.NewNop())

	resp, err := svc.Send(ctx, uuid.New().String(), "Asha Rao", SendMessageRequest{
		ReceiverID: receiverID,
		Content:    "  Standup moved to 10am  ",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Asha Rao", resp.SenderName)
	assert.Equal(t, "Ravi Kumar", resp.ReceiverName)
	assert.Equal(t, "Standup moved to 10am", resp.Content)
	assert.False(t, resp.Read)
	assert.Len(t, repo.messages, 1)
}

func TestService_Send_Rejections(t *testing.T) {
	ctx := context.Background()
	senderID := uuid.New().String()
	svc := NewService(&fakeMessageRepo{}, nil, zap.NewNop())

	_, err := svc.Send(ctx, senderID, "Asha", SendMessageRequest{
		ReceiverID: uuid.New().String(),
		Content:    "   ",
	})
	assert.ErrorIs(t, err, messageerrors.ErrEmptyContent)

	_, err = svc.Send(ctx, senderID, "Asha", SendMessageRequest{
		ReceiverID: "not-a-uuid",
		Content:    "hi",
	})
	assert.ErrorIs(t, err, messageerrors.ErrInvalidReceiverID)

	_, err = svc.Send(ctx, senderID, "Asha", SendMessageRequest{
		ReceiverID: senderID,
		Content:    "hi",
	})
	assert.ErrorIs(t, err, messageerrors.ErrSelfMessage)
}

func TestService_Send_UnknownReceiver(t *testing.T) {
	users := &fakeUserService{
		getByIDFn: func(ctx context.Context, id string) (user.UserResponse, error) {
			return user.UserResponse{}, usererrors.ErrUserNotFound
		},
	}
	svc := NewService(&fakeMessageRepo{}, users, zap.NewNop())

	_, err := svc.Send(context.Background(), uuid.New().String(), "Asha", SendMessageRequest{
		ReceiverID: uuid.New().String(),
		Content:    "hi",
	})
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
}

func TestService_GetConversation_MarksIncomingRead(t *testing.T) {
	ctx := context.Background()
	repo := &fakeMessageRepo{}

	me := uuid.New().String()
	other := uuid.New().String()
	third := uuid.New().String()

	repo.messages = []*Message{
		{ID: uuid.New(), SenderID: other, ReceiverID: me, Content: "hello"},
		{ID: uuid.New(), SenderID: me, ReceiverID: other, Content: "hi back"},
		{ID: uuid.New(), SenderID: third, ReceiverID: me, Content: "unrelated"},
	}

	svc := NewService(repo, nil, zap.NewNop())

	msgs, err := svc.GetConversation(ctx, me, other)
	assert.NoError(t, err)
	assert.Len(t, msgs, 2)

	// Only the other party's messages to me flip to read
	assert.True(t, repo.messages[0].Read)
	assert.False(t, repo.messages[1].Read)
	assert.False(t, repo.messages[2].Read)

	unread, err := svc.CountUnread(ctx, me)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}

func TestService_GetConversation_InvalidOtherID(t *testing.T) {
	svc := NewService(&fakeMessageRepo{}, nil, zap.NewNop())

	_, err := svc.GetConversation(context.Background(), uuid.New().String(), "nope")
	assert.ErrorIs(t, err, messageerrors.ErrInvalidReceiverID)
}
