package user

type CreateUserRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Role           string `json:"role" binding:"required"`
	Designation    string `json:"designation"`
	Department     string `json:"department"`
	Phone          string `json:"phone"`
	EmploymentType string `json:"employment_type"`
	WorkingShift   string `json:"working_shift"`
	JoiningDate    string `json:"joining_date"`
}

type UpdateUserRequest struct {
	Name           *string `json:"name"`
	Designation    *string `json:"designation"`
	Department     *string `json:"department"`
	Phone          *string `json:"phone"`
	EmploymentType *string `json:"employment_type"`
	WorkingShift   *string `json:"working_shift"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type ToggleStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type UserResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Designation    string `json:"designation,omitempty"`
	Department     string `json:"department,omitempty"`
	Phone          string `json:"phone,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
	WorkingShift   string `json:"working_shift,omitempty"`
	JoiningDate    string `json:"joining_date,omitempty"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      string `json:"created_at"`
}
