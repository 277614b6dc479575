package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attendanceerrors "github.com/Trivikram-Jagirdar/workflow-managmenr/internal/attendance/errors"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/localstate"
)

type fakeSessionRepo struct {
	createFn          func(ctx context.Context, s *AttendanceSession) error
	closeFn           func(ctx context.Context, userID, id uuid.UUID, fields CloseFields) error
	findTodayByUserFn func(ctx context.Context, userID uuid.UUID, day time.Time) (*AttendanceSession, error)
	findAllByUserFn   func(ctx context.Context, userID uuid.UUID) ([]AttendanceSession, error)
	findAllFn         func(ctx context.Context) ([]AttendanceSession, error)
}

func (f *fakeSessionRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeSessionRepo) Create(ctx context.Context, s *AttendanceSession) error {
	return f.createFn(ctx, s)
}
func (f *fakeSessionRepo) Close(ctx context.Context, userID, id uuid.UUID, fields CloseFields) error {
	return f.closeFn(ctx, userID, id, fields)
}
func (f *fakeSessionRepo) FindTodayByUser(ctx context.Context, userID uuid.UUID, day time.Time) (*AttendanceSession, error) {
	return f.findTodayByUserFn(ctx, userID, day)
}
func (f *fakeSessionRepo) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]AttendanceSession, error) {
	return f.findAllByUserFn(ctx, userID)
}
func (f *fakeSessionRepo) FindAll(ctx context.Context) ([]AttendanceSession, error) {
	return f.findAllFn(ctx)
}

type fakePointerStore struct {
	mu   sync.Mutex
	data map[string]string

	setErr    error
	getErr    error
	deleteErr error
}

func newFakePointerStore() *fakePointerStore {
	return &fakePointerStore{data: map[string]string{}}
}

func (f *fakePointerStore) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return "", localstate.ErrNotFound
	}
	return v, nil
}

func (f *fakePointerStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakePointerStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.data, key)
	return nil
}

func okRepo(store *map[uuid.UUID]*AttendanceSession) *fakeSessionRepo {
	repo := &fakeSessionRepo{}
	repo.createFn = func(ctx context.Context, s *AttendanceSession) error {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		cp := *s
		(*store)[s.ID] = &cp
		return nil
	}
	repo.closeFn = func(ctx context.Context, userID, id uuid.UUID, fields CloseFields) error {
		s, ok := (*store)[id]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		out := fields.CheckOutTime
		s.CheckOutTime = &out
		s.HoursWorked = fields.HoursWorked
		s.WorkReport = fields.WorkReport
		s.IsActive = false
		return nil
	}
	repo.findTodayByUserFn = func(ctx context.Context, userID uuid.UUID, day time.Time) (*AttendanceSession, error) {
		var latest *AttendanceSession
		for _, s := range *store {
			if s.UserID != userID {
				continue
			}
			if latest == nil || s.CheckInTime.After(latest.CheckInTime) {
				latest = s
			}
		}
		if latest == nil {
			return nil, gorm.ErrRecordNotFound
		}
		return latest, nil
	}
	repo.findAllByUserFn = func(ctx context.Context, userID uuid.UUID) ([]AttendanceSession, error) {
		return nil, nil
	}
	repo.findAllFn = func(ctx context.Context) ([]AttendanceSession, error) { return nil, nil }
	return repo
}

// testClock lets a test move time while ticker goroutines read it.
type testClock struct {
	mu sync.Mutex
	at time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = c.at.Add(d)
}

func (c *testClock) SetTo(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = t
}

func newTestManager(repo Repository, pointers localstate.PointerStore) (*Manager, *testClock) {
	m := NewManager(repo, pointers, zap.NewNop())
	m.tickInterval = 5 * time.Millisecond
	clock := &testClock{at: time.Now()}
	m.now = clock.Now
	return m, clock
}

func TestManager_CheckInThenCheckOut(t *testing.T) {
	ctx := context.Background()
	store := map[uuid.UUID]*AttendanceSession{}
	repo := okRepo(&store)
	pointers := newFakePointerStore()
	m, clock := newTestManager(repo, pointers)
	defer m.Shutdown()

	userID := uuid.New()
	base := time.Date(2026, 3, 2, 8, 50, 0, 0, time.Local)
	clock.SetTo(base)

	s, err := m.CheckIn(ctx, UserSnapshot{ID: userID, Name: "Asha", Designation: "Engineer"}, "12.971599, 77.594566")
	assert.NoError(t, err)
	assert.True(t, s.IsActive)
	assert.False(t, s.IsLate)
	assert.Equal(t, base, s.CheckInTime)

	// Pointer mirrors the open session
	raw, perr := pointers.Get(pointerKey(userID))
	assert.NoError(t, perr)
	var ptr OpenSessionPointer
	assert.NoError(t, json.Unmarshal([]byte(raw), &ptr))
	assert.Equal(t, s.ID.String(), ptr.ID)

	// Second check-in while active is rejected
	_, err = m.CheckIn(ctx, UserSnapshot{ID: userID}, "12.971599, 77.594566")
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)

	// One hour later
	clock.Advance(time.Hour)

	closed, err := m.CheckOut(ctx, userID, "Wrote the quarterly report")
	assert.NoError(t, err)
	assert.False(t, closed.IsActive)
	assert.InDelta(t, 1.0, closed.HoursWorked, 0.0001)
	assert.Equal(t, "Wrote the quarterly report", closed.WorkReport)

	// Pointer cleared, no open session left
	_, perr = pointers.Get(pointerKey(userID))
	assert.ErrorIs(t, perr, localstate.ErrNotFound)
	_, active := m.Elapsed(userID)
	assert.False(t, active)

	// Durable record closed
	assert.False(t, store[s.ID].IsActive)
	assert.NotNil(t, store[s.ID].CheckOutTime)
}

func TestManager_CheckIn_LateCutoff(t *testing.T) {
	ctx := context.Background()
	store := map[uuid.UUID]*AttendanceSession{}
	pointers := newFakePointerStore()
	m, clock := newTestManager(okRepo(&store), pointers)
	defer m.Shutdown()

	cases := []struct {
		name string
		at   time.Time
		late bool
	}{
		{"before cutoff", time.Date(2026, 3, 2, 8, 50, 0, 0, time.Local), false},
		{"at cutoff", time.Date(2026, 3, 2, 9, 15, 59, 0, time.Local), false},
		{"after cutoff", time.Date(2026, 3, 2, 9, 16, 0, 0, time.Local), true},
		{"mid morning", time.Date(2026, 3, 2, 10, 5, 0, 0, time.Local), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clock.SetTo(tc.at)
			s, err := m.CheckIn(ctx, UserSnapshot{ID: uuid.New()}, "1.000000, 2.000000")
			assert.NoError(t, err)
			assert.Equal(t, tc.late, s.IsLate)
		})
	}
}

func TestManager_CheckIn_MissingLocation(t *testing.T) {
	ctx := context.Background()
	store := map[uuid.UUID]*AttendanceSession{}
	m, _ := newTestManager(okRepo(&store), newFakePointerStore())
	defer m.Shutdown()

	_, err := m.CheckIn(ctx, UserSnapshot{ID: uuid.New()}, "   ")
	assert.Error(t, err)
	assert.Empty(t, store)
}

func TestManager_CheckIn_PersistFailureNoTransition(t *testing.T) {
	ctx := context.Background()
	repo := &fakeSessionRepo{
		createFn: func(ctx context.Context, s *AttendanceSession) error {
			return errors.New("connection refused")
		},
	}
	pointers := newFakePointerStore()
	m, _ := newTestManager(repo, pointers)
	defer m.Shutdown()

	userID := uuid.New()
	_, err := m.CheckIn(ctx, UserSnapshot{ID: userID}, "1.000000, 2.000000")
	assert.Error(t, err)

	// Still checked out: no pointer, no ticker, and a retry is allowed
	assert.Empty(t, pointers.data)
	_, active := m.Elapsed(userID)
	assert.False(t, active)
}

func TestManager_CheckOut_EmptyReportKeepsSessionOpen(t *testing.T) {
	ctx := context.Background()
	store := map[uuid.UUID]*AttendanceSession{}
	m, _ := newTestManager(okRepo(&store), newFakePointerStore())
	defer m.Shutdown()

	userID := uuid.New()
	s, err := m.CheckIn(ctx, UserSnapshot{ID: userID}, "1.000000, 2.000000")
	assert.NoError(t, err)

	for _, report := range []string{"", "   ", "\n\t"} {
		_, err = m.CheckOut(ctx, userID, report)
		assert.ErrorIs(t, err, attendanceerrors.ErrEmptyWorkReport)
	}

	// Session untouched
	assert.True(t, store[s.ID].IsActive)
	_, active := m.Elapsed(userID)
	assert.True(t, active)
}

func TestManager_CheckOut_NoActiveSession(t *testing.T) {
	ctx := context.Background()
	store := map[uuid.UUID]*AttendanceSession{}
	m, _ := newTestManager(okRepo(&store), newFakePointerStore())
	defer m.Shutdown()

	_, err := m.CheckOut(ctx, uuid.New(), "did things")
	assert.ErrorIs(t, err, attendanceerrors.ErrNoActiveSession)
}

func TestManager_CheckOut_PersistFailureStaysCheckedIn(t *testing.T) {
	ctx := context.Background()
	store := map[uuid.UUID]*AttendanceSession{}
	repo := okRepo(&store)
	pointers := newFakePointerStore()
	m, _ := newTestManager(repo, pointers)
	defer m.Shutdown()

	userID := uuid.New()
	_, err := m.CheckIn(ctx, UserSnapshot{ID: userID}, "1.000000, 2.000000")
	assert.NoError(t, err)

	repo.closeFn = func(ctx context.Context, userID, id uuid.UUID, fields CloseFields) error {
		return errors.New("connection refused")
	}

	_, err = m.CheckOut(ctx, userID, "valid report")
	assert.Error(t, err)

	// Still checked in: pointer intact, ticker alive, retry possible
	_, perr := pointers.Get(pointerKey(userID))
	assert.NoError(t, perr)
	_, active := m.Elapsed(userID)
	assert.True(t, active)
}

func TestManager_Restore_FromPointer(t *testing.T) {
	ctx := context.Background()
	store := map[uuid.UUID]*AttendanceSession{}
	pointers := newFakePointerStore()

	userID := uuid.New()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)

	first, firstClock := newTestManager(okRepo(&store), pointers)
	firstClock.SetTo(base)
	s, err := first.CheckIn(ctx, UserSnapshot{ID: userID}, "1.000000, 2.000000")
	assert.NoError(t, err)
	first.Shutdown()

	// "Restart": a fresh manager over the same stores
	second, secondClock := newTestManager(okRepo(&store), pointers)
	defer second.Shutdown()
	secondClock.SetTo(base.Add(30 * time.Minute))

	st, err := second.Restore(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, StateCheckedIn, st.State)
	assert.Equal(t, s.ID, st.SessionID)
	assert.Equal(t, s.CheckInTime.Unix(), st.CheckInTime.Unix())
	assert.InDelta(t, 0.5, st.ElapsedHours, 0.0001)
}

func TestManager_Restore_FromDurableStoreWhenPointerMissing(t *testing.T) {
	ctx := context.Background()
	store := map[uuid.UUID]*AttendanceSession{}
	repo := okRepo(&store)

	userID := uuid.New()
	sessionID := uuid.New()
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	store[sessionID] = &AttendanceSession{
		ID:          sessionID,
		UserID:      userID,
		CheckInTime: checkIn,
		IsActive:    true,
	}

	m, clock := newTestManager(repo, newFakePointerStore())
	defer m.Shutdown()
	clock.SetTo(checkIn.Add(15 * time.Minute))

	st, err := m.Restore(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, StateCheckedIn, st.State)
	assert.Equal(t, sessionID, st.SessionID)
}

func TestManager_Restore_ClosedSessionReadsCheckedOut(t *testing.T) {
	ctx := context.Background()
	store := map[uuid.UUID]*AttendanceSession{}

	userID := uuid.New()
	sessionID := uuid.New()
	out := time.Date(2026, 3, 2, 18, 0, 0, 0, time.Local)
	store[sessionID] = &AttendanceSession{
		ID:           sessionID,
		UserID:       userID,
		CheckInTime:  out.Add(-9 * time.Hour),
		CheckOutTime: &out,
		IsActive:     false,
	}

	m, _ := newTestManager(okRepo(&store), newFakePointerStore())
	defer m.Shutdown()

	st, err := m.Restore(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, StateCheckedOut, st.State)
}

func TestManager_Restore_NoHistory(t *testing.T) {
	ctx := context.Background()
	store := map[uuid.UUID]*AttendanceSession{}
	m, _ := newTestManager(okRepo(&store), newFakePointerStore())
	defer m.Shutdown()

	st, err := m.Restore(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, StateCheckedOut, st.State)
}

func TestManager_Restore_MalformedPointerFallsBack(t *testing.T) {
	ctx := context.Background()
	store := map[uuid.UUID]*AttendanceSession{}
	pointers := newFakePointerStore()

	userID := uuid.New()
	pointers.data[pointerKey(userID)] = "{not json"

	m, _ := newTestManager(okRepo(&store), pointers)
	defer m.Shutdown()

	st, err := m.Restore(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, StateCheckedOut, st.State)
}

func TestManager_TickerUpdatesElapsedOnlyWhileCheckedIn(t *testing.T) {
	ctx := context.Background()
	store := map[uuid.UUID]*AttendanceSession{}
	m, clock := newTestManager(okRepo(&store), newFakePointerStore())
	defer m.Shutdown()

	userID := uuid.New()

	_, err := m.CheckIn(ctx, UserSnapshot{ID: userID}, "1.000000, 2.000000")
	assert.NoError(t, err)

	clock.Advance(2 * time.Hour)

	assert.Eventually(t, func() bool {
		h, ok := m.Elapsed(userID)
		return ok && h > 1.9
	}, time.Second, 10*time.Millisecond)

	_, err = m.CheckOut(ctx, userID, "done for the day")
	assert.NoError(t, err)

	_, active := m.Elapsed(userID)
	assert.False(t, active)
}
