package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/localstate"
)

const entityType = "attendance"

// fallbackRepository decorates the Postgres repository with a local
// bbolt substitute. When the primary store is unreachable the call is
// served locally instead; the next call tries the primary again, so
// promotion back is implicit.
type fallbackRepository struct {
	primary Repository
	local   localstate.RecordStore
	logger  *zap.Logger
}

func NewFallbackRepository(primary Repository, local localstate.RecordStore, logger *zap.Logger) Repository {
	return &fallbackRepository{
		primary: primary,
		local:   local,
		logger:  logger.Named("attendance.fallback"),
	}
}

// storeUnreachable reports whether err means the primary store failed,
// as opposed to answering "no such row".
func storeUnreachable(err error) bool {
	return err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
}

func (r *fallbackRepository) WithTx(tx *sql.Tx) Repository {
	return &fallbackRepository{
		primary: r.primary.WithTx(tx),
		local:   r.local,
		logger:  r.logger,
	}
}

func (r *fallbackRepository) Create(ctx context.Context, s *AttendanceSession) error {
	err := r.primary.Create(ctx, s)
	if !storeUnreachable(err) {
		return err
	}

	r.logger.Warn("primary create failed, using local store", zap.Error(err))

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	raw, merr := json.Marshal(s)
	if merr != nil {
		return merr
	}
	return r.local.PutRecord(entityType, s.ID.String(), raw)
}

func (r *fallbackRepository) Close(ctx context.Context, userID, id uuid.UUID, fields CloseFields) error {
	err := r.primary.Close(ctx, userID, id, fields)
	if !storeUnreachable(err) {
		return err
	}

	r.logger.Warn("primary close failed, using local store", zap.Error(err))

	raw, gerr := r.local.GetRecord(entityType, id.String())
	if gerr != nil {
		if errors.Is(gerr, localstate.ErrNotFound) {
			return gorm.ErrRecordNotFound
		}
		return gerr
	}

	var s AttendanceSession
	if uerr := json.Unmarshal(raw, &s); uerr != nil {
		return uerr
	}

	out := fields.CheckOutTime
	s.CheckOutTime = &out
	s.HoursWorked = fields.HoursWorked
	s.WorkReport = fields.WorkReport
	s.IsActive = false

	updated, merr := json.Marshal(&s)
	if merr != nil {
		return merr
	}
	return r.local.PutRecord(entityType, id.String(), updated)
}

func (r *fallbackRepository) FindTodayByUser(ctx context.Context, userID uuid.UUID, day time.Time) (*AttendanceSession, error) {
	s, err := r.primary.FindTodayByUser(ctx, userID, day)
	if !storeUnreachable(err) {
		return s, err
	}

	r.logger.Warn("primary query failed, using local store", zap.Error(err))

	rows, lerr := r.listLocal()
	if lerr != nil {
		return nil, lerr
	}

	wanted := day.Format("2006-01-02")
	var latest *AttendanceSession
	for i := range rows {
		row := &rows[i]
		if row.UserID != userID || row.Date.Format("2006-01-02") != wanted {
			continue
		}
		if latest == nil || row.CheckInTime.After(latest.CheckInTime) {
			latest = row
		}
	}

	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (r *fallbackRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]AttendanceSession, error) {
	rows, err := r.primary.FindAllByUser(ctx, userID)
	if !storeUnreachable(err) {
		return rows, err
	}

	r.logger.Warn("primary query failed, using local store", zap.Error(err))

	local, lerr := r.listLocal()
	if lerr != nil {
		return nil, lerr
	}

	filtered := make([]AttendanceSession, 0, len(local))
	for _, row := range local {
		if row.UserID == userID {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}

func (r *fallbackRepository) FindAll(ctx context.Context) ([]AttendanceSession, error) {
	rows, err := r.primary.FindAll(ctx)
	if !storeUnreachable(err) {
		return rows, err
	}

	r.logger.Warn("primary query failed, using local store", zap.Error(err))

	return r.listLocal()
}

func (r *fallbackRepository) listLocal() ([]AttendanceSession, error) {
	raws, err := r.local.ListRecords(entityType)
	if err != nil {
		return nil, err
	}

	rows := make([]AttendanceSession, 0, len(raws))
	for _, raw := range raws {
		var s AttendanceSession
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		rows = append(rows, s)
	}
	return rows, nil
}
