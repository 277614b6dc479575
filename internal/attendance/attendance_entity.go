package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceSession is one check-in-to-check-out work interval. The user
// fields are a snapshot taken at check-in and are never re-synced.
type AttendanceSession struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	UserName        string         `gorm:"column:user_name;type:varchar(255);not null" json:"userName"`
	UserDesignation string         `gorm:"column:user_designation;type:varchar(255)" json:"userDesignation"`
	Date            time.Time      `gorm:"column:date;type:date;not null;index" json:"date"`
	CheckInTime     time.Time      `gorm:"column:check_in_time;type:timestamptz;not null" json:"checkInTime"`
	CheckOutTime    *time.Time     `gorm:"column:check_out_time;type:timestamptz" json:"checkOutTime"`
	HoursWorked     float64        `gorm:"column:hours_worked;not null;default:0" json:"hoursWorked"`
	WorkReport      string         `gorm:"column:work_report;type:text;not null;default:''" json:"workReport"`
	IsActive        bool           `gorm:"column:is_active;not null;index" json:"isActive"`
	IsLate          bool           `gorm:"column:is_late;not null" json:"isLate"`
	Location        *string        `gorm:"column:location;type:varchar(100)" json:"location,omitempty"`
	CreatedAt       time.Time      `gorm:"column:created_at" json:"-"`
	UpdatedAt       time.Time      `gorm:"column:updated_at" json:"-"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (AttendanceSession) TableName() string {
	return "attendance_sessions"
}

// CloseFields is the partial update applied exactly once, at check-out.
type CloseFields struct {
	CheckOutTime time.Time
	HoursWorked  float64
	WorkReport   string
}
