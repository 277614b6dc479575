package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/events"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/messaging/kafka"
)

func TestEventedRepo_CreateWritesRowAndEventTogether(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := map[uuid.UUID]*AttendanceSession{}
	outbox := &fakeOutbox{}
	repo := NewEventedRepository(db, okRepo(&store), outbox, zap.NewNop())

	loc := "12.971599, 77.594566"
	s := &AttendanceSession{
		UserID:      uuid.New(),
		CheckInTime: time.Date(2026, 3, 2, 9, 40, 0, 0, time.Local),
		IsLate:      true,
		IsActive:    true,
		Location:    &loc,
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	assert.NoError(t, repo.Create(ctx, s))

	assert.Len(t, store, 1)
	if assert.Len(t, outbox.created, 1) {
		evt := outbox.created[0]
		assert.Equal(t, events.EventAttendanceCheckedIn, evt.EventType)
		assert.Equal(t, events.AttendanceSessionTopic, evt.Topic)
		assert.Equal(t, "attendance_session", evt.AggregateType)
		assert.Equal(t, s.ID.String(), evt.AggregateID)
		assert.Equal(t, kafka.OutboxStatusPending, evt.Status)

		var payload events.AttendanceCheckedInEvent
		assert.NoError(t, json.Unmarshal(evt.Payload, &payload))
		assert.Equal(t, s.ID.String(), payload.SessionID)
		assert.True(t, payload.IsLate)
		assert.Equal(t, loc, payload.Location)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventedRepo_OutboxFailureRollsBackCreate(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := map[uuid.UUID]*AttendanceSession{}
	outbox := &fakeOutbox{err: errors.New("outbox table missing")}
	repo := NewEventedRepository(db, okRepo(&store), outbox, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectRollback()

	s := &AttendanceSession{UserID: uuid.New(), CheckInTime: time.Now(), IsActive: true}
	assert.Error(t, repo.Create(ctx, s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventedRepo_CloseWritesCheckedOutEvent(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := map[uuid.UUID]*AttendanceSession{}
	outbox := &fakeOutbox{}
	repo := NewEventedRepository(db, okRepo(&store), outbox, zap.NewNop())

	userID := uuid.New()
	s := &AttendanceSession{UserID: userID, CheckInTime: time.Now().Add(-8 * time.Hour), IsActive: true}

	mock.ExpectBegin()
	mock.ExpectCommit()
	assert.NoError(t, repo.Create(ctx, s))

	out := time.Now()
	mock.ExpectBegin()
	mock.ExpectCommit()
	err = repo.Close(ctx, userID, s.ID, CloseFields{
		CheckOutTime: out,
		HoursWorked:  8,
		WorkReport:   "Wrapped up the sprint",
	})
	assert.NoError(t, err)

	if assert.Len(t, outbox.created, 2) {
		evt := outbox.created[1]
		assert.Equal(t, events.EventAttendanceCheckedOut, evt.EventType)

		var payload events.AttendanceCheckedOutEvent
		assert.NoError(t, json.Unmarshal(evt.Payload, &payload))
		assert.Equal(t, userID.String(), payload.UserID)
		assert.Equal(t, 8.0, payload.HoursWorked)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventedRepo_StoreFailureSkipsEvent(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	outbox := &fakeOutbox{}
	inner := downRepo()
	repo := NewEventedRepository(db, inner, outbox, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectRollback()

	err = repo.Close(ctx, uuid.New(), uuid.New(), CloseFields{CheckOutTime: time.Now(), WorkReport: "x"})
	assert.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, outbox.created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventedRepo_ReadsPassThrough(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := map[uuid.UUID]*AttendanceSession{}
	inner := okRepo(&store)
	inner.findAllByUserFn = func(ctx context.Context, userID uuid.UUID) ([]AttendanceSession, error) {
		var rows []AttendanceSession
		for _, s := range store {
			if s.UserID == userID {
				rows = append(rows, *s)
			}
		}
		return rows, nil
	}
	inner.findAllFn = func(ctx context.Context) ([]AttendanceSession, error) {
		var rows []AttendanceSession
		for _, s := range store {
			rows = append(rows, *s)
		}
		return rows, nil
	}
	repo := NewEventedRepository(db, inner, &fakeOutbox{}, zap.NewNop())

	userID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	store[uuid.New()] = &AttendanceSession{UserID: userID, Date: day, CheckInTime: day.Add(9 * time.Hour)}

	// No transaction is opened for queries
	rows, err := repo.FindAllByUser(ctx, userID)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)

	all, err := repo.FindAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	got, err := repo.FindTodayByUser(ctx, userID, day)
	assert.NoError(t, err)
	assert.Equal(t, userID, got.UserID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
