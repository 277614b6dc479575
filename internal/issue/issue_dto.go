package issue

type CreateIssueRequest struct {
	ProjectID   string `json:"project_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type IssueResponse struct {
	ID           string `json:"id"`
	ProjectID    string `json:"project_id"`
	ProjectTitle string `json:"project_title"`
	ClientID     string `json:"client_id"`
	ClientName   string `json:"client_name"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
