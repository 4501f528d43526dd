package bookings

import (
	"time"

	"github.com/google/uuid"

	"github.com/caribeway/caribeway-backend/pkg/db/models"
	"github.com/caribeway/caribeway-backend/pkg/enums"
)

// QuoteRequest is the shared payload for the stateless quote endpoint and
// booking creation. Option fields outside the selected category are ignored.
type QuoteRequest struct {
	Category enums.ServiceCategory `json:"category" validate:"required"`
	ItemID   *uuid.UUID            `json:"item_id"`

	PickupAddress  string     `json:"pickup_address" validate:"max=300"`
	DropoffAddress string     `json:"dropoff_address" validate:"max=300"`
	FlightNumber   string     `json:"flight_number" validate:"max=20"`
	StartAt        *time.Time `json:"start_at"`
	EndAt          *time.Time `json:"end_at"`

	Adults   int `json:"adults" validate:"gte=0"`
	Children int `json:"children" validate:"gte=0"`
	Infants  int `json:"infants" validate:"gte=0"`

	VehicleTier      string `json:"vehicle_tier"`
	RoundTrip        bool   `json:"round_trip"`
	CustomRate       string `json:"custom_rate"`
	RoomType         string `json:"room_type"`
	Rooms            int    `json:"rooms" validate:"gte=0"`
	Insurance        string `json:"insurance"`
	GPS              bool   `json:"gps"`
	ChildSeat        bool   `json:"child_seat"`
	AdditionalDriver bool   `json:"additional_driver"`
	CabinClass       string `json:"cabin_class"`
	CheckedBags      int    `json:"checked_bags" validate:"gte=0"`
	CarryOnBags      int    `json:"carry_on_bags" validate:"gte=0"`
	HotelPickup      bool   `json:"hotel_pickup"`
}

// CreateInput adds the customer identity to a quote request.
type CreateInput struct {
	QuoteRequest
	CustomerName  string `json:"customer_name" validate:"required,max=200"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"max=30"`
	SessionID     string `json:"session_id" validate:"max=100"`
}

// QuoteBreakdown is the response of the stateless quote endpoint.
type QuoteBreakdown struct {
	Total         string                `json:"total"`
	TotalCents    int                   `json:"total_cents"`
	Currency      string                `json:"currency"`
	Source        enums.PriceSource     `json:"source"`
	Submittable   bool                  `json:"submittable"`
	PaymentBranch enums.PaymentBranch   `json:"payment_branch"`
	RouteName     *string               `json:"route_name,omitempty"`
	RouteOrigin   *string               `json:"route_origin,omitempty"`
	RouteDest     *string               `json:"route_destination,omitempty"`
	Category      enums.ServiceCategory `json:"category"`
}

// Filters describe the list inputs available to the back-office surfaces.
type Filters struct {
	Status        *enums.BookingStatus
	Category      *enums.ServiceCategory
	CustomerEmail string
	DriverID      *uuid.UUID
	DateFrom      *time.Time
	DateTo        *time.Time
}

// List wraps the paginated bookings plus the next page cursor.
type List struct {
	Bookings   []models.Booking `json:"bookings"`
	NextCursor string           `json:"next_cursor,omitempty"`
}
