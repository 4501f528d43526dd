package tracking

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/caribeway/caribeway-backend/pkg/db/models"
	"github.com/caribeway/caribeway-backend/pkg/enums"
)

// StepCount is one row of the funnel summary.
type StepCount struct {
	Step     enums.FunnelStep `json:"step"`
	Count    int64            `json:"count"`
	Sessions int64            `json:"sessions"`
}

// Repository defines persistence operations for conversion events.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, event *models.ConversionEvent) error
	Summary(ctx context.Context, since time.Time) ([]StepCount, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a tracking repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, event *models.ConversionEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) Summary(ctx context.Context, since time.Time) ([]StepCount, error) {
	var rows []StepCount
	err := r.db.WithContext(ctx).
		Model(&models.ConversionEvent{}).
		Select("step, COUNT(*) AS count, COUNT(DISTINCT session_id) AS sessions").
		Where("occurred_at >= ?", since).
		Group("step").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.ConversionEvent{})
	return result.RowsAffected, result.Error
}
