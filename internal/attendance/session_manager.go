package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attendanceerrors "github.com/Trivikram-Jagirdar/workflow-managmenr/internal/attendance/errors"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/localstate"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/shared/apperror"
)

type State string

const (
	StateCheckedOut State = "CHECKED_OUT"
	StateCheckedIn  State = "CHECKED_IN"
)

const (
	pointerKeyPrefix    = "attendance:open:"
	defaultTickInterval = time.Second
)

// OpenSessionPointer mirrors the active session in the fast local store
// so a restart can recover without the durable store.
type OpenSessionPointer struct {
	ID          string    `json:"id"`
	CheckInTime time.Time `json:"checkInTime"`
}

// UserSnapshot carries the acting user's identity as denormalized onto
// the session at check-in.
type UserSnapshot struct {
	ID          uuid.UUID
	Name        string
	Designation string
}

// Status is the manager's published view of one user's state.
type Status struct {
	State        State
	SessionID    uuid.UUID
	CheckInTime  time.Time
	ElapsedHours float64
}

type openSession struct {
	sessionID    uuid.UUID
	checkInTime  time.Time
	elapsedHours float64
	stop         chan struct{}
}

// Manager owns the attendance session lifecycle: at most one open
// session per user, the open-session pointer, and the per-second
// elapsed-time ticker that runs exactly while a user is checked in.
type Manager struct {
	repo         Repository
	pointers     localstate.PointerStore
	logger       *zap.Logger
	now          func() time.Time
	tickInterval time.Duration

	stateMu sync.Mutex
	open    map[uuid.UUID]*openSession
	locks   sync.Map // uuid.UUID -> *sync.Mutex
}

func NewManager(repo Repository, pointers localstate.PointerStore, logger *zap.Logger) *Manager {
	return &Manager{
		repo:         repo,
		pointers:     pointers,
		logger:       logger.Named("attendance.manager"),
		now:          time.Now,
		tickInterval: defaultTickInterval,
		open:         make(map[uuid.UUID]*openSession),
	}
}

func pointerKey(userID uuid.UUID) string {
	return pointerKeyPrefix + userID.String()
}

func (m *Manager) userLock(userID uuid.UUID) *sync.Mutex {
	v, _ := m.locks.LoadOrStore(userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// lateAt applies the 09:15 wall-clock cutoff, decided once at check-in.
func lateAt(t time.Time) bool {
	return t.Hour() > 9 || (t.Hour() == 9 && t.Minute() > 15)
}

// Restore rebuilds the in-memory state after a restart. The local
// pointer is treated as authoritative when present; only when it is
// absent does the durable store get queried for today's record. A
// session closed from another device can therefore leave a stale
// pointer that still reads as checked-in here.
func (m *Manager) Restore(ctx context.Context, userID uuid.UUID) (Status, error) {
	if userID == uuid.Nil {
		return Status{}, attendanceerrors.ErrMissingUserID
	}

	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if st, ok := m.status(userID); ok {
		return st, nil
	}

	raw, err := m.pointers.Get(pointerKey(userID))
	if err == nil {
		var ptr OpenSessionPointer
		if uerr := json.Unmarshal([]byte(raw), &ptr); uerr == nil {
			id, perr := uuid.Parse(ptr.ID)
			if perr == nil {
				m.adopt(userID, id, ptr.CheckInTime)
				st, _ := m.status(userID)
				return st, nil
			}
		}
		// Unreadable pointer, fall through to the durable store
		m.logger.Warn("discarding malformed open-session pointer",
			zap.String("user_id", userID.String()),
		)
	} else if !errors.Is(err, localstate.ErrNotFound) {
		return Status{}, apperror.Persistence(err)
	}

	now := m.now()
	s, err := m.repo.FindTodayByUser(ctx, userID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Status{State: StateCheckedOut}, nil
		}
		return Status{}, apperror.Persistence(err)
	}

	if !s.IsActive {
		return Status{State: StateCheckedOut}, nil
	}

	m.adopt(userID, s.ID, s.CheckInTime)
	st, _ := m.status(userID)
	return st, nil
}

// CheckIn opens a session. On any failure the user stays CheckedOut
// and nothing is persisted.
func (m *Manager) CheckIn(ctx context.Context, user UserSnapshot, location string) (*AttendanceSession, error) {
	if user.ID == uuid.Nil {
		return nil, attendanceerrors.ErrMissingUserID
	}
	if strings.TrimSpace(location) == "" {
		return nil, apperror.RequiredField("Location")
	}

	lock := m.userLock(user.ID)
	lock.Lock()
	defer lock.Unlock()

	m.stateMu.Lock()
	_, active := m.open[user.ID]
	m.stateMu.Unlock()
	if active {
		return nil, attendanceerrors.ErrAlreadyCheckedIn
	}

	now := m.now()
	loc := location
	s := &AttendanceSession{
		UserID:          user.ID,
		UserName:        user.Name,
		UserDesignation: user.Designation,
		Date:            time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		CheckInTime:     now,
		CheckOutTime:    nil,
		HoursWorked:     0,
		WorkReport:      "",
		IsActive:        true,
		IsLate:          lateAt(now),
		Location:        &loc,
	}

	if err := m.repo.Create(ctx, s); err != nil {
		m.logger.Error("check-in persist failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, apperror.Persistence(err)
	}

	m.writePointer(user.ID, s.ID, s.CheckInTime)
	m.adopt(user.ID, s.ID, s.CheckInTime)

	m.logger.Info("checked in",
		zap.String("user_id", user.ID.String()),
		zap.String("session_id", s.ID.String()),
		zap.Bool("is_late", s.IsLate),
	)

	return s, nil
}

// CheckOut closes the open session. An empty or whitespace-only report
// is rejected before any side effect; a persistence failure leaves the
// session open and the ticker running.
func (m *Manager) CheckOut(ctx context.Context, userID uuid.UUID, workReport string) (*AttendanceSession, error) {
	if userID == uuid.Nil {
		return nil, attendanceerrors.ErrMissingUserID
	}

	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	m.stateMu.Lock()
	sess, active := m.open[userID]
	m.stateMu.Unlock()
	if !active {
		return nil, attendanceerrors.ErrNoActiveSession
	}

	report := strings.TrimSpace(workReport)
	if report == "" {
		return nil, attendanceerrors.ErrEmptyWorkReport
	}

	now := m.now()
	fields := CloseFields{
		CheckOutTime: now,
		HoursWorked:  now.Sub(sess.checkInTime).Hours(),
		WorkReport:   report,
	}

	if err := m.repo.Close(ctx, userID, sess.sessionID, fields); err != nil {
		m.logger.Error("check-out persist failed",
			zap.String("user_id", userID.String()),
			zap.String("session_id", sess.sessionID.String()),
			zap.Error(err),
		)
		return nil, apperror.Persistence(err)
	}

	if err := m.pointers.Delete(pointerKey(userID)); err != nil {
		m.logger.Warn("delete open-session pointer failed", zap.Error(err))
	}

	m.stateMu.Lock()
	close(sess.stop)
	delete(m.open, userID)
	m.stateMu.Unlock()

	m.logger.Info("checked out",
		zap.String("user_id", userID.String()),
		zap.String("session_id", sess.sessionID.String()),
		zap.Float64("hours_worked", fields.HoursWorked),
	)

	out := fields.CheckOutTime
	return &AttendanceSession{
		ID:           sess.sessionID,
		UserID:       userID,
		CheckInTime:  sess.checkInTime,
		CheckOutTime: &out,
		HoursWorked:  fields.HoursWorked,
		WorkReport:   fields.WorkReport,
		IsActive:     false,
	}, nil
}

// Elapsed reports the ticker-published working hours for a checked-in
// user.
func (m *Manager) Elapsed(userID uuid.UUID) (float64, bool) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	sess, ok := m.open[userID]
	if !ok {
		return 0, false
	}
	return sess.elapsedHours, true
}

// Shutdown cancels every running ticker. Sessions stay open in the
// stores; Restore picks them back up on the next start.
func (m *Manager) Shutdown() {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	for userID, sess := range m.open {
		close(sess.stop)
		delete(m.open, userID)
	}
}

func (m *Manager) status(userID uuid.UUID) (Status, bool) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	sess, ok := m.open[userID]
	if !ok {
		return Status{State: StateCheckedOut}, false
	}
	return Status{
		State:        StateCheckedIn,
		SessionID:    sess.sessionID,
		CheckInTime:  sess.checkInTime,
		ElapsedHours: sess.elapsedHours,
	}, true
}

// adopt installs an in-memory open session and starts its ticker.
// Callers hold the per-user lock.
func (m *Manager) adopt(userID, sessionID uuid.UUID, checkInTime time.Time) {
	sess := &openSession{
		sessionID:    sessionID,
		checkInTime:  checkInTime,
		elapsedHours: m.now().Sub(checkInTime).Hours(),
		stop:         make(chan struct{}),
	}

	m.stateMu.Lock()
	m.open[userID] = sess
	m.stateMu.Unlock()

	go m.runTicker(userID, sess)
}

func (m *Manager) runTicker(userID uuid.UUID, sess *openSession) {
	ticker := time.NewTicker(m.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sess.stop:
			return
		case <-ticker.C:
			m.stateMu.Lock()
			if current, ok := m.open[userID]; ok && current == sess {
				sess.elapsedHours = m.now().Sub(sess.checkInTime).Hours()
			}
			m.stateMu.Unlock()
		}
	}
}

func (m *Manager) writePointer(userID, sessionID uuid.UUID, checkInTime time.Time) {
	raw, err := json.Marshal(OpenSessionPointer{
		ID:          sessionID.String(),
		CheckInTime: checkInTime,
	})
	if err != nil {
		m.logger.Warn("marshal open-session pointer failed", zap.Error(err))
		return
	}

	// The durable record already exists; a pointer write failure only
	// costs the fast-restore path
	if err := m.pointers.Set(pointerKey(userID), string(raw)); err != nil {
		m.logger.Warn("write open-session pointer failed", zap.Error(err))
	}
}
