package project

import "time"

type SubtaskInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type TaskInput struct {
	Title          string         `json:"title" binding:"required"`
	Description    string         `json:"description"`
	Status         string         `json:"status"`
	Priority       string         `json:"priority"`
	AssignedTo     string         `json:"assigned_to"`
	AssignedToName string         `json:"assigned_to_name"`
	DueDate        *time.Time     `json:"due_date"`
	Subtasks       []SubtaskInput `json:"subtasks"`
}

type CreateProjectRequest struct {
	Title           string      `json:"title" binding:"required"`
	Description     string      `json:"description"`
	Status          string      `json:"status"`
	Priority        string      `json:"priority"`
	StartDate       *time.Time  `json:"start_date"`
	EndDate         *time.Time  `json:"end_date"`
	AssignedClients []string    `json:"assigned_clients"`
	Tasks           []TaskInput `json:"tasks"`
}

type UpdateProjectRequest struct {
	Title           *string     `json:"title"`
	Description     *string     `json:"description"`
	Status          *string     `json:"status"`
	Priority        *string     `json:"priority"`
	StartDate       *time.Time  `json:"start_date"`
	EndDate         *time.Time  `json:"end_date"`
	AssignedClients *[]string   `json:"assigned_clients"`
	Tasks           []TaskInput `json:"tasks"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ProjectResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	CreatedBy       string     `json:"created_by"`
	AssignedClients []string   `json:"assigned_clients"`
	Tasks           []Task     `json:"tasks"`
	CreatedAt       string     `json:"created_at"`
}
