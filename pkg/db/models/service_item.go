package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/caribeway/caribeway-backend/pkg/enums"
)

// ServiceItem is a bookable catalog entry. PriceCents is interpreted per
// category: nightly rate for hotels, daily rate for rentals, adult price for
// tours, base fare for flights. Transfers price off the vehicle-tier table
// instead.
type ServiceItem struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Category    enums.ServiceCategory `gorm:"column:category;type:service_category;not null;index"`
	Name        string                `gorm:"column:name;type:text;not null"`
	Description string                `gorm:"column:description;type:text"`
	Location    string                `gorm:"column:location;type:text"`
	PriceCents  int                   `gorm:"column:price_cents;not null;default:0"`
	Currency    string                `gorm:"column:currency;type:text;not null;default:'USD'"`
	IsActive    bool                  `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
