package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/events"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/messaging/kafka"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/shared/contextutil"
)

// eventedRepository writes the session row and its outbox event in one
// transaction, so the store never holds a transition without its event
// or the other way round.
type eventedRepository struct {
	db     *sql.DB
	inner  Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewEventedRepository(db *sql.DB, inner Repository, outbox kafka.OutboxRepository, logger *zap.Logger) Repository {
	return &eventedRepository{
		db:     db,
		inner:  inner,
		outbox: outbox,
		logger: logger.Named("attendance.outbox"),
	}
}

func (r *eventedRepository) WithTx(tx *sql.Tx) Repository {
	// Already inside a caller-owned transaction; ride it directly.
	return r.inner.WithTx(tx)
}

func (r *eventedRepository) Create(ctx context.Context, s *AttendanceSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	loc := ""
	if s.Location != nil {
		loc = *s.Location
	}
	payload, err := json.Marshal(events.AttendanceCheckedInEvent{
		EventType:   events.EventAttendanceCheckedIn,
		SessionID:   s.ID.String(),
		UserID:      s.UserID.String(),
		IsLate:      s.IsLate,
		Location:    loc,
		CheckInTime: s.CheckInTime,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.inner.WithTx(tx).Create(ctx, s); err != nil {
		return err
	}
	if err := r.enqueue(ctx, tx, s.ID, events.EventAttendanceCheckedIn, payload); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *eventedRepository) Close(ctx context.Context, userID, id uuid.UUID, fields CloseFields) error {
	payload, err := json.Marshal(events.AttendanceCheckedOutEvent{
		EventType:    events.EventAttendanceCheckedOut,
		SessionID:    id.String(),
		UserID:       userID.String(),
		HoursWorked:  fields.HoursWorked,
		CheckOutTime: fields.CheckOutTime,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.inner.WithTx(tx).Close(ctx, userID, id, fields); err != nil {
		return err
	}
	if err := r.enqueue(ctx, tx, id, events.EventAttendanceCheckedOut, payload); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *eventedRepository) enqueue(ctx context.Context, tx *sql.Tx, sessionID uuid.UUID, eventType string, payload []byte) error {
	err := r.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "attendance_session",
		AggregateID:   sessionID.String(),
		EventType:     eventType,
		Topic:         events.AttendanceSessionTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		r.logger.Error("enqueue outbox event failed",
			zap.String("event_type", eventType),
			zap.String("session_id", sessionID.String()),
			zap.Error(err),
		)
	}
	return err
}

func (r *eventedRepository) FindTodayByUser(ctx context.Context, userID uuid.UUID, day time.Time) (*AttendanceSession, error) {
	return r.inner.FindTodayByUser(ctx, userID, day)
}

func (r *eventedRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]AttendanceSession, error) {
	return r.inner.FindAllByUser(ctx, userID)
}

func (r *eventedRepository) FindAll(ctx context.Context) ([]AttendanceSession, error) {
	return r.inner.FindAll(ctx)
}
