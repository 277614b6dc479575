package issue

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusResolved   = "RESOLVED"

	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// Issue snapshots the project and client names at creation time so
// listings stay readable even after a rename or removal.
type Issue struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID    string         `gorm:"not null;index" json:"project_id"`
	ProjectTitle string         `gorm:"not null" json:"project_title"`
	ClientID     string         `gorm:"not null;index" json:"client_id"`
	ClientName   string         `gorm:"not null" json:"client_name"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `json:"description"`
	Status       string         `gorm:"not null;default:OPEN" json:"status"`
	Priority     string         `gorm:"not null;default:MEDIUM" json:"priority"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Issue) TableName() string {
	return "client_issues"
}

func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
