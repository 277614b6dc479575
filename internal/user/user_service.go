package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/events"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/messaging/kafka"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/shared/contextutil"
	usererrors "github.com/Trivikram-Jagirdar/workflow-managmenr/internal/user/errors"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	ToggleStatus(ctx context.Context, id string, isActive bool) error
	Delete(ctx context.Context, id string) error

	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	ResetPassword(ctx context.Context, userID, newPassword string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	l.Info("creating user",
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	if !ValidRole(req.Role) {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		Name:           req.Name,
		Email:          req.Email,
		Password:       string(hashedPassword),
		Role:           req.Role,
		Designation:    req.Designation,
		Department:     req.Department,
		Phone:          req.Phone,
		EmploymentType: req.EmploymentType,
		WorkingShift:   req.WorkingShift,
		IsActive:       true,
	}

	if req.JoiningDate != "" {
		if d, perr := time.Parse("2006-01-02", req.JoiningDate); perr == nil {
			u.JoiningDate = &d
		}
	}

	// The row and its lifecycle event commit together; losing one but
	// not the other would strand the downstream consumers.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, u); err != nil {
		l.Error("failed to create user", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueUserCreated(ctx, tx, u); err != nil {
		return UserResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}

	l.Info("user created successfully", zap.String("email", u.Email))
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}

	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Designation != nil {
		u.Designation = *req.Designation
	}
	if req.Department != nil {
		u.Department = *req.Department
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.EmploymentType != nil {
		u.EmploymentType = *req.EmploymentType
	}
	if req.WorkingShift != nil {
		u.WorkingShift = *req.WorkingShift
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*u), nil
}

func (s *service) ToggleStatus(ctx context.Context, id string, isActive bool) error {
	l := contextutil.GetLogger(ctx, s.logger)

	uid, err := uuid.Parse(id)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		l.Error("failed to find user", zap.Error(err))
		return mapRepositoryError(err)
	}

	u.IsActive = isActive

	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("failed to update user status", zap.Error(err))
		return mapRepositoryError(err)
	}

	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	if _, err := s.repo.FindByID(ctx, uid); err != nil {
		return mapRepositoryError(err)
	}

	return s.repo.Delete(ctx, uid)
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	l := contextutil.GetLogger(ctx, s.logger)

	uid, err := uuid.Parse(userID)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(currentPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		l.Error("failed to hash new password", zap.Error(err))
		return err
	}

	u.Password = string(hashed)
	return mapRepositoryError(s.repo.Update(ctx, u))
}

func (s *service) ResetPassword(ctx context.Context, userID, newPassword string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return mapRepositoryError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.Password = string(hashed)
	return mapRepositoryError(s.repo.Update(ctx, u))
}

func (s *service) enqueueUserCreated(ctx context.Context, tx *sql.Tx, u *User) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.UserCreatedEvent{
		EventType:  "user.created",
		UserID:     u.ID.String(),
		Role:       u.Role,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("marshal user created event failed", zap.Error(err))
		return err
	}

	event := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "user",
		AggregateID:   u.ID.String(),
		EventType:     "user.created",
		Topic:         events.UserLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}

	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("enqueue user created event failed", zap.Error(err))
		return err
	}
	return nil
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:             u.ID.String(),
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		Designation:    u.Designation,
		Department:     u.Department,
		Phone:          u.Phone,
		EmploymentType: u.EmploymentType,
		WorkingShift:   u.WorkingShift,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if u.JoiningDate != nil {
		resp.JoiningDate = u.JoiningDate.Format("2006-01-02")
	}
	return resp
}
