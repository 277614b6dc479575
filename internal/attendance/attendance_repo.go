package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *AttendanceSession) error
	// Close applies the check-out fields and clears is_active in one
	// partial update, keyed by user and session id.
	Close(ctx context.Context, userID, id uuid.UUID, fields CloseFields) error
	FindTodayByUser(ctx context.Context, userID uuid.UUID, day time.Time) (*AttendanceSession, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]AttendanceSession, error)
	FindAll(ctx context.Context) ([]AttendanceSession, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn routes statements through the bound sql.Tx when one is set, so
// writes commit or roll back together with the caller's transaction.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, s *AttendanceSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return r.conn(ctx).Create(s).Error
}

func (r *repository) Close(ctx context.Context, userID, id uuid.UUID, fields CloseFields) error {
	return r.conn(ctx).
		Model(&AttendanceSession{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"check_out_time": fields.CheckOutTime,
			"hours_worked":   fields.HoursWorked,
			"work_report":    fields.WorkReport,
			"is_active":      false,
		}).Error
}

func (r *repository) FindTodayByUser(ctx context.Context, userID uuid.UUID, day time.Time) (*AttendanceSession, error) {
	var s AttendanceSession
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Where("date = ?", day.Format("2006-01-02")).
		Order("check_in_time DESC").
		First(&s).Error
	return &s, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]AttendanceSession, error) {
	var rows []AttendanceSession
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, check_in_time DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context) ([]AttendanceSession, error) {
	var rows []AttendanceSession
	err := r.conn(ctx).
		Order("date DESC, check_in_time DESC").
		Find(&rows).Error
	return rows, err
}
