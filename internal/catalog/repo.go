package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caribeway/caribeway-backend/pkg/db/models"
	"github.com/caribeway/caribeway-backend/pkg/enums"
	"github.com/caribeway/caribeway-backend/pkg/pagination"
)

// ItemFilters describe the inputs supported by the catalog list.
type ItemFilters struct {
	Category   *enums.ServiceCategory
	ActiveOnly bool
	Query      string
}

// ItemList wraps the paginated catalog rows plus the next page cursor.
type ItemList struct {
	Items      []models.ServiceItem `json:"items"`
	NextCursor string               `json:"next_cursor,omitempty"`
}

// Repository defines persistence operations for the service catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, item *models.ServiceItem) (*models.ServiceItem, error)
	Update(ctx context.Context, item *models.ServiceItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceItem, error)
	List(ctx context.Context, filters ItemFilters, params pagination.Params) (*ItemList, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, item *models.ServiceItem) (*models.ServiceItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) Update(ctx context.Context, item *models.ServiceItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceItem, error) {
	var item models.ServiceItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) List(ctx context.Context, filters ItemFilters, params pagination.Params) (*ItemList, error) {
	query := r.db.WithContext(ctx).Model(&models.ServiceItem{})

	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.Where("name ILIKE ? OR location ILIKE ?", like, like)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	limit := pagination.NormalizeLimit(params.Limit)
	var rows []models.ServiceItem
	if err := query.Order("created_at DESC, id DESC").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, err
	}

	list := &ItemList{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	list.Items = rows
	return list, nil
}
