package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/caribeway/caribeway-backend/pkg/enums"
)

// ConversionEvent records one funnel step for conversion tracking. Rows are
// fire-and-forget from the API edge and pruned by the retention job.
type ConversionEvent struct {
	ID         uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID  string                 `gorm:"column:session_id;type:text;not null;index"`
	Step       enums.FunnelStep       `gorm:"column:step;type:funnel_step;not null"`
	Category   *enums.ServiceCategory `gorm:"column:category;type:service_category"`
	BookingRef *string                `gorm:"column:booking_ref;type:text"`
	OccurredAt time.Time              `gorm:"column:occurred_at;not null"`
	CreatedAt  time.Time              `gorm:"column:created_at;autoCreateTime;index"`
}
