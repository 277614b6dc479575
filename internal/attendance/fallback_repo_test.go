package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/localstate"
)

var errStoreDown = errors.New("dial tcp 127.0.0.1:5432: connection refused")

type fakeRecordStore struct {
	records map[string]map[string][]byte
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{records: map[string]map[string][]byte{}}
}

func (f *fakeRecordStore) PutRecord(entityType, id string, value []byte) error {
	if f.records[entityType] == nil {
		f.records[entityType] = map[string][]byte{}
	}
	f.records[entityType][id] = value
	return nil
}

func (f *fakeRecordStore) GetRecord(entityType, id string) ([]byte, error) {
	v, ok := f.records[entityType][id]
	if !ok {
		return nil, localstate.ErrNotFound
	}
	return v, nil
}

func (f *fakeRecordStore) ListRecords(entityType string) ([][]byte, error) {
	var out [][]byte
	for _, v := range f.records[entityType] {
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeRecordStore) DeleteRecord(entityType, id string) error {
	delete(f.records[entityType], id)
	return nil
}

func downRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		createFn: func(ctx context.Context, s *AttendanceSession) error { return errStoreDown },
		closeFn: func(ctx context.Context, userID, id uuid.UUID, fields CloseFields) error {
			return errStoreDown
		},
		findTodayByUserFn: func(ctx context.Context, userID uuid.UUID, day time.Time) (*AttendanceSession, error) {
			return nil, errStoreDown
		},
		findAllByUserFn: func(ctx context.Context, userID uuid.UUID) ([]AttendanceSession, error) {
			return nil, errStoreDown
		},
		findAllFn: func(ctx context.Context) ([]AttendanceSession, error) { return nil, errStoreDown },
	}
}

func TestFallbackRepo_PrimaryHealthyPassesThrough(t *testing.T) {
	ctx := context.Background()
	store := map[uuid.UUID]*AttendanceSession{}
	local := newFakeRecordStore()
	repo := NewFallbackRepository(okRepo(&store), local, zap.NewNop())

	s := &AttendanceSession{UserID: uuid.New(), CheckInTime: time.Now(), IsActive: true}
	assert.NoError(t, repo.Create(ctx, s))

	// The local record store stays untouched
	assert.Empty(t, local.records)
	assert.Len(t, store, 1)
}

func TestFallbackRepo_CreateFallsBackWhenPrimaryDown(t *testing.T) {
	ctx := context.Background()
	local := newFakeRecordStore()
	repo := NewFallbackRepository(downRepo(), local, zap.NewNop())

	userID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	s := &AttendanceSession{
		UserID:      userID,
		Date:        day,
		CheckInTime: day.Add(9 * time.Hour),
		IsActive:    true,
	}
	assert.NoError(t, repo.Create(ctx, s))
	assert.NotEqual(t, uuid.Nil, s.ID)

	// The locally written row is queryable
	got, err := repo.FindTodayByUser(ctx, userID, day)
	assert.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.True(t, got.IsActive)
}

func TestFallbackRepo_FindTodayPicksLatestForUserAndDay(t *testing.T) {
	ctx := context.Background()
	local := newFakeRecordStore()
	repo := NewFallbackRepository(downRepo(), local, zap.NewNop())

	userID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)

	early := &AttendanceSession{UserID: userID, Date: day, CheckInTime: day.Add(8 * time.Hour)}
	late := &AttendanceSession{UserID: userID, Date: day, CheckInTime: day.Add(13 * time.Hour)}
	otherUser := &AttendanceSession{UserID: uuid.New(), Date: day, CheckInTime: day.Add(14 * time.Hour)}
	otherDay := &AttendanceSession{UserID: userID, Date: day.AddDate(0, 0, -1), CheckInTime: day.Add(-10 * time.Hour)}

	for _, s := range []*AttendanceSession{early, late, otherUser, otherDay} {
		assert.NoError(t, repo.Create(ctx, s))
	}

	got, err := repo.FindTodayByUser(ctx, userID, day)
	assert.NoError(t, err)
	assert.Equal(t, late.ID, got.ID)
}

func TestFallbackRepo_FindTodayNoLocalMatch(t *testing.T) {
	ctx := context.Background()
	repo := NewFallbackRepository(downRepo(), newFakeRecordStore(), zap.NewNop())

	_, err := repo.FindTodayByUser(ctx, uuid.New(), time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFallbackRepo_CloseMutatesLocalRecord(t *testing.T) {
	ctx := context.Background()
	local := newFakeRecordStore()
	repo := NewFallbackRepository(downRepo(), local, zap.NewNop())

	userID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	s := &AttendanceSession{UserID: userID, Date: day, CheckInTime: day.Add(9 * time.Hour), IsActive: true}
	assert.NoError(t, repo.Create(ctx, s))

	out := day.Add(17 * time.Hour)
	err := repo.Close(ctx, userID, s.ID, CloseFields{
		CheckOutTime: out,
		HoursWorked:  8,
		WorkReport:   "Wrapped up the sprint",
	})
	assert.NoError(t, err)

	got, err := repo.FindTodayByUser(ctx, userID, day)
	assert.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, 8.0, got.HoursWorked)
	assert.Equal(t, "Wrapped up the sprint", got.WorkReport)
	assert.NotNil(t, got.CheckOutTime)
}

func TestFallbackRepo_CloseUnknownLocalID(t *testing.T) {
	ctx := context.Background()
	repo := NewFallbackRepository(downRepo(), newFakeRecordStore(), zap.NewNop())

	err := repo.Close(ctx, uuid.New(), uuid.New(), CloseFields{CheckOutTime: time.Now(), WorkReport: "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFallbackRepo_NotFoundIsNotAFallbackTrigger(t *testing.T) {
	ctx := context.Background()
	local := newFakeRecordStore()

	// Primary answers definitively: no row today
	primary := downRepo()
	primary.findTodayByUserFn = func(ctx context.Context, userID uuid.UUID, day time.Time) (*AttendanceSession, error) {
		return nil, gorm.ErrRecordNotFound
	}

	// A local row exists but must not be consulted
	_ = local.PutRecord("attendance", uuid.New().String(), []byte(`{"is_active":true}`))

	repo := NewFallbackRepository(primary, local, zap.NewNop())
	_, err := repo.FindTodayByUser(ctx, uuid.New(), time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFallbackRepo_FindAllByUserFiltersLocal(t *testing.T) {
	ctx := context.Background()
	local := newFakeRecordStore()
	repo := NewFallbackRepository(downRepo(), local, zap.NewNop())

	userID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	mine := &AttendanceSession{UserID: userID, Date: day, CheckInTime: day.Add(9 * time.Hour)}
	other := &AttendanceSession{UserID: uuid.New(), Date: day, CheckInTime: day.Add(9 * time.Hour)}
	assert.NoError(t, repo.Create(ctx, mine))
	assert.NoError(t, repo.Create(ctx, other))

	rows, err := repo.FindAllByUser(ctx, userID)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, mine.ID, rows[0].ID)

	all, err := repo.FindAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
