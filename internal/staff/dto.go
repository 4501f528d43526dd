package staff

import (
	"time"

	"github.com/google/uuid"

	"github.com/caribeway/caribeway-backend/pkg/db/models"
	"github.com/caribeway/caribeway-backend/pkg/enums"
)

// LoginRequest carries the staff credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the token pair plus the account summary.
type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         UserSummary `json:"user"`
}

// RefreshRequest rotates a refresh token against the prior access token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserSummary is the staff account shape returned to portals.
type UserSummary struct {
	ID          uuid.UUID       `json:"id"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Role        enums.StaffRole `json:"role"`
	LastLoginAt *time.Time      `json:"last_login_at,omitempty"`
}

// CreateStaffInput is the admin payload for provisioning an account.
type CreateStaffInput struct {
	Email    string          `json:"email" validate:"required,email"`
	Name     string          `json:"name" validate:"required,max=200"`
	Role     enums.StaffRole `json:"role" validate:"required"`
	Password string          `json:"password" validate:"required,min=10"`
}

// DriverProfileInput upserts dispatch details for a driver account.
type DriverProfileInput struct {
	Phone       string `json:"phone" validate:"max=30"`
	VehicleTier string `json:"vehicle_tier"`
	PlateNumber string `json:"plate_number" validate:"max=20"`
}

// Driver pairs the account with its dispatch profile.
type Driver struct {
	User    UserSummary           `json:"user"`
	Profile *models.DriverProfile `json:"profile,omitempty"`
}

// FromModel maps a staff account to its API summary.
func FromModel(user *models.StaffUser) UserSummary {
	return UserSummary{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		LastLoginAt: user.LastLoginAt,
	}
}
