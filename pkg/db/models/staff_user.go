package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/caribeway/caribeway-backend/pkg/enums"
)

// StaffUser is a back-office account for the admin, driver, and support
// portals. The public funnel has no accounts.
type StaffUser struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string          `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string          `gorm:"column:password_hash;type:text;not null"`
	Name         string          `gorm:"column:name;type:text;not null"`
	Role         enums.StaffRole `gorm:"column:role;type:staff_role;not null"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time      `gorm:"column:last_login_at"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// DriverProfile extends a driver StaffUser with dispatch details.
type DriverProfile struct {
	UserID      uuid.UUID         `gorm:"column:user_id;type:uuid;primaryKey"`
	Phone       string            `gorm:"column:phone;type:text"`
	VehicleTier enums.VehicleTier `gorm:"column:vehicle_tier;type:vehicle_tier"`
	PlateNumber string            `gorm:"column:plate_number;type:text"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
