package project

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	projecterrors "github.com/Trivikram-Jagirdar/workflow-managmenr/internal/project/errors"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/shared/contextutil"
)

//go:generate mockgen -source=project_service.go -destination=mock/project_service_mock.go -package=mock

type Service interface {
	Create(ctx context.Context, createdBy string, req CreateProjectRequest) (ProjectResponse, error)
	GetAll(ctx context.Context) ([]ProjectResponse, error)
	GetByID(ctx context.Context, id string) (ProjectResponse, error)
	GetByClient(ctx context.Context, clientID string) ([]ProjectResponse, error)
	Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error)
	UpdateTaskStatus(ctx context.Context, projectID, taskID, userID, status string) (ProjectResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("project.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("project.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, createdBy string, req CreateProjectRequest) (ProjectResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	status := req.Status
	if status == "" {
		status = StatusPlanning
	}
	if !ValidStatus(status) {
		return ProjectResponse{}, projecterrors.ErrInvalidStatus
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !ValidPriority(priority) {
		return ProjectResponse{}, projecterrors.ErrInvalidPriority
	}

	tasks, err := buildTasks(req.Tasks)
	if err != nil {
		return ProjectResponse{}, err
	}

	p := &Project{
		Title:           req.Title,
		Description:     req.Description,
		Status:          status,
		Priority:        priority,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		CreatedBy:       createdBy,
		AssignedClients: req.AssignedClients,
		Tasks:           tasks,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		l.Error("failed to create project", zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}

	l.Info("project created", zap.String("project_id", p.ID.String()))
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]ProjectResponse, error) {
	projects, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		resp[i] = mapToResponse(p)
	}

	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProjectResponse, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidProjectID
	}

	p, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		return ProjectResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*p), nil
}

func (s *service) GetByClient(ctx context.Context, clientID string) ([]ProjectResponse, error) {
	projects, err := s.repo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		resp[i] = mapToResponse(p)
	}

	return resp, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidProjectID
	}

	p, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		return ProjectResponse{}, mapRepositoryError(err)
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return ProjectResponse{}, projecterrors.ErrInvalidStatus
		}
		p.Status = *req.Status
	}
	if req.Priority != nil {
		if !ValidPriority(*req.Priority) {
			return ProjectResponse{}, projecterrors.ErrInvalidPriority
		}
		p.Priority = *req.Priority
	}
	if req.StartDate != nil {
		p.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		p.EndDate = req.EndDate
	}
	if req.AssignedClients != nil {
		p.AssignedClients = *req.AssignedClients
	}
	if req.Tasks != nil {
		tasks, terr := buildTasks(req.Tasks)
		if terr != nil {
			return ProjectResponse{}, terr
		}
		p.Tasks = tasks
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return ProjectResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*p), nil
}

// UpdateTaskStatus is the one mutation employees get: moving their own
// task between TODO, IN_PROGRESS and DONE. The whole task list is read
// back and written as a unit since tasks live inside the project row.
func (s *service) UpdateTaskStatus(ctx context.Context, projectID, taskID, userID, status string) (ProjectResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	pid, err := uuid.Parse(projectID)
	if err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidProjectID
	}
	if !ValidTaskStatus(status) {
		return ProjectResponse{}, projecterrors.ErrInvalidTaskStatus
	}

	p, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		return ProjectResponse{}, mapRepositoryError(err)
	}

	found := false
	for i := range p.Tasks {
		if p.Tasks[i].ID != taskID {
			continue
		}
		if p.Tasks[i].AssignedTo != userID {
			return ProjectResponse{}, projecterrors.ErrTaskNotAssigned
		}
		p.Tasks[i].Status = status
		found = true
		break
	}
	if !found {
		return ProjectResponse{}, projecterrors.ErrTaskNotFound
	}

	if err := s.repo.Update(ctx, p); err != nil {
		l.Error("failed to update task status", zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return projecterrors.ErrInvalidProjectID
	}

	if _, err := s.repo.FindByID(ctx, pid); err != nil {
		return mapRepositoryError(err)
	}

	return s.repo.Delete(ctx, pid)
}

func buildTasks(inputs []TaskInput) (TaskList, error) {
	tasks := make(TaskList, len(inputs))
	for i, in := range inputs {
		status := in.Status
		if status == "" {
			status = TaskStatusTodo
		}
		if !ValidTaskStatus(status) {
			return nil, projecterrors.ErrInvalidTaskStatus
		}

		priority := in.Priority
		if priority == "" {
			priority = PriorityMedium
		}
		if !ValidPriority(priority) {
			return nil, projecterrors.ErrInvalidPriority
		}

		subtasks := make([]Subtask, len(in.Subtasks))
		for j, sub := range in.Subtasks {
			subStatus := sub.Status
			if subStatus == "" {
				subStatus = TaskStatusTodo
			}
			if !ValidTaskStatus(subStatus) {
				return nil, projecterrors.ErrInvalidTaskStatus
			}
			subtasks[j] = Subtask{
				ID:          uuid.New().String(),
				Title:       sub.Title,
				Description: sub.Description,
				Status:      subStatus,
			}
		}

		tasks[i] = Task{
			ID:             uuid.New().String(),
			Title:          in.Title,
			Description:    in.Description,
			Status:         status,
			Priority:       priority,
			AssignedTo:     in.AssignedTo,
			AssignedToName: in.AssignedToName,
			DueDate:        in.DueDate,
			Subtasks:       subtasks,
		}
	}
	return tasks, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return projecterrors.ErrProjectNotFound
	}
	return err
}

func mapToResponse(p Project) ProjectResponse {
	clients := p.AssignedClients
	if clients == nil {
		clients = []string{}
	}
	tasks := []Task(p.Tasks)
	if tasks == nil {
		tasks = []Task{}
	}
	return ProjectResponse{
		ID:              p.ID.String(),
		Title:           p.Title,
		Description:     p.Description,
		Status:          p.Status,
		Priority:        p.Priority,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		CreatedBy:       p.CreatedBy,
		AssignedClients: clients,
		Tasks:           tasks,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
}
