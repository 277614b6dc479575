package message

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message snapshots both party names at send time so a thread stays
// readable after a rename or deactivation.
type Message struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID     string         `gorm:"not null;index" json:"sender_id"`
	SenderName   string         `gorm:"not null" json:"sender_name"`
	ReceiverID   string         `gorm:"not null;index" json:"receiver_id"`
	ReceiverName string         `gorm:"not null" json:"receiver_name"`
	Content      string         `gorm:"not null" json:"content"`
	Read         bool           `gorm:"not null;default:false" json:"read"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}
