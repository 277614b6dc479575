package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	attendanceerrors "github.com/Trivikram-Jagirdar/workflow-managmenr/internal/attendance/errors"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/location"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/shared/contextutil"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Status(ctx context.Context, userID string) (StatusResponse, error)
	RecordConsent(ctx context.Context, userID string, req ConsentRequest) error
	CheckIn(ctx context.Context, userID, userName, designation string) (SessionResponse, error)
	CheckOut(ctx context.Context, userID string, req CheckOutRequest) (SessionResponse, error)
	GetMine(ctx context.Context, userID string) ([]SessionResponse, error)
	GetAll(ctx context.Context) ([]SessionResponse, error)
}

type service struct {
	manager  *Manager
	repo     Repository
	location location.Service
	consent  location.ConsentStore
	logger   *zap.Logger
}

func NewService(
	manager *Manager,
	repo Repository,
	loc location.Service,
	consent location.ConsentStore,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		manager:  manager,
		repo:     repo,
		location: loc,
		consent:  consent,
		logger:   l,
	}
}

func (s *service) Status(ctx context.Context, userID string) (StatusResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return StatusResponse{}, attendanceerrors.ErrMissingUserID
	}

	st, err := s.manager.Restore(ctx, uid)
	if err != nil {
		return StatusResponse{}, err
	}

	resp := StatusResponse{State: string(st.State)}
	if st.State == StateCheckedIn {
		resp.SessionID = st.SessionID.String()
		checkIn := st.CheckInTime.Format(time.RFC3339)
		resp.CheckInTime = &checkIn
		resp.ElapsedHours = st.ElapsedHours
		resp.Elapsed = FormatElapsed(st.ElapsedHours)
	}
	return resp, nil
}

func (s *service) RecordConsent(ctx context.Context, userID string, req ConsentRequest) error {
	if _, err := uuid.Parse(userID); err != nil {
		return attendanceerrors.ErrMissingUserID
	}
	return s.consent.Set(ctx, userID, location.ConsentDecision(req.Decision))
}

func (s *service) CheckIn(ctx context.Context, userID, userName, designation string) (SessionResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	uid, err := uuid.Parse(userID)
	if err != nil {
		return SessionResponse{}, attendanceerrors.ErrMissingUserID
	}

	// Rebuild state first so a restarted process refuses a second
	// check-in for a still-open session
	st, err := s.manager.Restore(ctx, uid)
	if err != nil {
		return SessionResponse{}, err
	}
	if st.State == StateCheckedIn {
		return SessionResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	// Location failures must never create a session
	loc, err := s.location.Acquire(ctx, userID)
	if err != nil {
		l.Warn("location acquisition failed", zap.Error(err))
		return SessionResponse{}, err
	}

	sess, err := s.manager.CheckIn(ctx, UserSnapshot{
		ID:          uid,
		Name:        userName,
		Designation: designation,
	}, loc)
	if err != nil {
		return SessionResponse{}, err
	}

	return mapToResponse(*sess), nil
}

func (s *service) CheckOut(ctx context.Context, userID string, req CheckOutRequest) (SessionResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return SessionResponse{}, attendanceerrors.ErrMissingUserID
	}

	if _, err := s.manager.Restore(ctx, uid); err != nil {
		return SessionResponse{}, err
	}

	sess, err := s.manager.CheckOut(ctx, uid, req.WorkReport)
	if err != nil {
		return SessionResponse{}, err
	}

	return mapToResponse(*sess), nil
}

func (s *service) GetMine(ctx context.Context, userID string) ([]SessionResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, attendanceerrors.ErrMissingUserID
	}

	rows, err := s.repo.FindAllByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	return mapAll(rows), nil
}

func (s *service) GetAll(ctx context.Context) ([]SessionResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return mapAll(rows), nil
}

func mapAll(rows []AttendanceSession) []SessionResponse {
	res := make([]SessionResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
