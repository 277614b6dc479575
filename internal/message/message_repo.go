package message

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=message_repo.go -destination=mock/message_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, m *Message) error
	FindConversation(ctx context.Context, userID, otherID string) ([]Message, error)
	MarkConversationRead(ctx context.Context, senderID, receiverID string) error
	CountUnread(ctx context.Context, receiverID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Message) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// FindConversation returns both directions of a two-party thread in
// chronological order.
func (r *repository) FindConversation(ctx context.Context, userID, otherID string) ([]Message, error) {
	var msgs []Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC").
		Find(&msgs).Error
	return msgs, err
}

func (r *repository) MarkConversationRead(ctx context.Context, senderID, receiverID string) error {
	return r.db.WithContext(ctx).
		Model(&Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read = false", senderID, receiverID).
		Update("read", true).Error
}

func (r *repository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Message{}).
		Where("receiver_id = ? AND read = false", receiverID).
		Count(&count).Error
	return count, err
}
