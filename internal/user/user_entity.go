package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
	RoleClient   = "CLIENT"
)

type User struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string         `gorm:"column:name;type:varchar(255);not null"`
	Email          string         `gorm:"column:email;type:text;not null;uniqueIndex:uq_user_email"`
	Password       string         `gorm:"column:password;type:text;not null"`
	Role           string         `gorm:"column:role;type:varchar(50);not null;default:EMPLOYEE"`
	Designation    string         `gorm:"column:designation;type:varchar(255)"`
	Department     string         `gorm:"column:department;type:varchar(255)"`
	Phone          string         `gorm:"column:phone;type:varchar(50)"`
	EmploymentType string         `gorm:"column:employment_type;type:varchar(50)"`
	WorkingShift   string         `gorm:"column:working_shift;type:varchar(50)"`
	JoiningDate    *time.Time     `gorm:"column:joining_date;type:date"`
	IsActive       bool           `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEmployee, RoleClient:
		return true
	default:
		return false
	}
}
