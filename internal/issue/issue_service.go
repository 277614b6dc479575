package issue

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	issueerrors "github.com/Trivikram-Jagirdar/workflow-managmenr/internal/issue/errors"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/project"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/shared/contextutil"
)

//go:generate mockgen -source=issue_service.go -destination=mock/issue_service_mock.go -package=mock

type Service interface {
	Create(ctx context.Context, clientID, clientName string, req CreateIssueRequest) (IssueResponse, error)
	GetAll(ctx context.Context) ([]IssueResponse, error)
	GetMine(ctx context.Context, clientID string) ([]IssueResponse, error)
	UpdateStatus(ctx context.Context, id, status string) (IssueResponse, error)
}

type service struct {
	repo     Repository
	projects project.Service
	logger   *zap.Logger
}

func NewService(repo Repository, projects project.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("issue.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("issue.service")
	}
	return &service{repo: repo, projects: projects, logger: l}
}

func (s *service) Create(ctx context.Context, clientID, clientName string, req CreateIssueRequest) (IssueResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !ValidPriority(priority) {
		return IssueResponse{}, issueerrors.ErrInvalidPriority
	}

	p, err := s.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		return IssueResponse{}, err
	}

	assigned := false
	for _, c := range p.AssignedClients {
		if c == clientID {
			assigned = true
			break
		}
	}
	if !assigned {
		return IssueResponse{}, issueerrors.ErrProjectNotAssigned
	}

	i := &Issue{
		ProjectID:    p.ID,
		ProjectTitle: p.Title,
		ClientID:     clientID,
		ClientName:   clientName,
		Title:        req.Title,
		Description:  req.Description,
		Status:       StatusOpen,
		Priority:     priority,
	}

	if err := s.repo.Create(ctx, i); err != nil {
		l.Error("failed to create issue", zap.Error(err))
		return IssueResponse{}, mapRepositoryError(err)
	}

	l.Info("issue created",
		zap.String("issue_id", i.ID.String()),
		zap.String("project_id", i.ProjectID),
	)
	return mapToResponse(*i), nil
}

func (s *service) GetAll(ctx context.Context) ([]IssueResponse, error) {
	issues, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]IssueResponse, len(issues))
	for i, it := range issues {
		resp[i] = mapToResponse(it)
	}

	return resp, nil
}

func (s *service) GetMine(ctx context.Context, clientID string) ([]IssueResponse, error) {
	issues, err := s.repo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]IssueResponse, len(issues))
	for i, it := range issues {
		resp[i] = mapToResponse(it)
	}

	return resp, nil
}

func (s *service) UpdateStatus(ctx context.Context, id, status string) (IssueResponse, error) {
	iid, err := uuid.Parse(id)
	if err != nil {
		return IssueResponse{}, issueerrors.ErrInvalidIssueID
	}
	if !ValidStatus(status) {
		return IssueResponse{}, issueerrors.ErrInvalidStatus
	}

	i, err := s.repo.FindByID(ctx, iid)
	if err != nil {
		return IssueResponse{}, mapRepositoryError(err)
	}

	i.Status = status
	if err := s.repo.Update(ctx, i); err != nil {
		return IssueResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*i), nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return issueerrors.ErrIssueNotFound
	}
	return err
}

func mapToResponse(i Issue) IssueResponse {
	return IssueResponse{
		ID:           i.ID.String(),
		ProjectID:    i.ProjectID,
		ProjectTitle: i.ProjectTitle,
		ClientID:     i.ClientID,
		ClientName:   i.ClientName,
		Title:        i.Title,
		Description:  i.Description,
		Status:       i.Status,
		Priority:     i.Priority,
		CreatedAt:    i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    i.UpdatedAt.Format(time.RFC3339),
	}
}
