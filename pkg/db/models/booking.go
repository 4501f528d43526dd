package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/caribeway/caribeway-backend/pkg/enums"
	"github.com/caribeway/caribeway-backend/pkg/types"
)

// Booking is a funnel submission with its server-computed quote snapshot.
// The total is always recomputed from the published rules at creation; the
// client never supplies it.
type Booking struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Reference string                `gorm:"column:reference;type:text;not null;uniqueIndex"`
	Category  enums.ServiceCategory `gorm:"column:category;type:service_category;not null"`
	ItemID    *uuid.UUID            `gorm:"column:item_id;type:uuid"`

	CustomerName  string `gorm:"column:customer_name;type:text;not null"`
	CustomerEmail string `gorm:"column:customer_email;type:text;not null;index"`
	CustomerPhone string `gorm:"column:customer_phone;type:text"`

	PickupAddress  string     `gorm:"column:pickup_address;type:text"`
	DropoffAddress string     `gorm:"column:dropoff_address;type:text"`
	FlightNumber   string     `gorm:"column:flight_number;type:text"`
	StartAt        *time.Time `gorm:"column:start_at"`
	EndAt          *time.Time `gorm:"column:end_at"`

	Adults   int `gorm:"column:adults;not null;default:0"`
	Children int `gorm:"column:children;not null;default:0"`
	Infants  int `gorm:"column:infants;not null;default:0"`

	Options types.QuoteOptions `gorm:"column:options;type:jsonb;serializer:json"`

	TotalCents  int               `gorm:"column:total_cents;not null;default:0"`
	Currency    string            `gorm:"column:currency;type:text;not null;default:'USD'"`
	PriceSource enums.PriceSource `gorm:"column:price_source;type:price_source;not null;default:'standard'"`

	RouteName        *string             `gorm:"column:route_name;type:text"`
	RouteOrigin      *string             `gorm:"column:route_origin;type:text"`
	RouteDestination *string             `gorm:"column:route_destination;type:text"`
	PaymentBranch    enums.PaymentBranch `gorm:"column:payment_branch;type:payment_branch;not null;default:'record_confirm'"`
	PaymentLinkID    *string             `gorm:"column:payment_link_id;type:text"`
	PaymentLinkURL   *string             `gorm:"column:payment_link_url;type:text"`
	PaymentOrderID   *string             `gorm:"column:payment_order_id;type:text;index"`

	Status        enums.BookingStatus `gorm:"column:status;type:booking_status;not null;default:'pending';index"`
	DriverID      *uuid.UUID          `gorm:"column:driver_id;type:uuid;index"`
	HoldExpiresAt *time.Time          `gorm:"column:hold_expires_at"`
	ConfirmedAt   *time.Time          `gorm:"column:confirmed_at"`
	CompletedAt   *time.Time          `gorm:"column:completed_at"`
	CancelledAt   *time.Time          `gorm:"column:cancelled_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
