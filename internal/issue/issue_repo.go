package issue

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=issue_repo.go -destination=mock/issue_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, i *Issue) error
	FindAll(ctx context.Context) ([]Issue, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Issue, error)
	FindByClient(ctx context.Context, clientID string) ([]Issue, error)
	Update(ctx context.Context, i *Issue) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, i *Issue) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Issue, error) {
	var issues []Issue
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&issues).Error
	return issues, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Issue, error) {
	var i Issue
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&i).Error
	return &i, err
}

func (r *repository) FindByClient(ctx context.Context, clientID string) ([]Issue, error) {
	var issues []Issue
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&issues).Error
	return issues, err
}

func (r *repository) Update(ctx context.Context, i *Issue) error {
	return r.db.WithContext(ctx).Save(i).Error
}
