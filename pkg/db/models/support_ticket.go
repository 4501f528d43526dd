package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/caribeway/caribeway-backend/pkg/enums"
)

// SupportTicket is a customer inquiry, optionally tied to a booking.
type SupportTicket struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BookingID     *uuid.UUID         `gorm:"column:booking_id;type:uuid;index"`
	CustomerEmail string             `gorm:"column:customer_email;type:text;not null;index"`
	Subject       string             `gorm:"column:subject;type:text;not null"`
	Message       string             `gorm:"column:message;type:text;not null"`
	Status        enums.TicketStatus `gorm:"column:status;type:ticket_status;not null;default:'open';index"`
	AssigneeID    *uuid.UUID         `gorm:"column:assignee_id;type:uuid"`
	ResolvedAt    *time.Time         `gorm:"column:resolved_at"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
