package types

// QuoteOptions is the category-specific option snapshot stored with a
// booking, exactly as submitted. Only the fields relevant to the booking's
// category are populated.
type QuoteOptions struct {
	VehicleTier      string `json:"vehicle_tier,omitempty"`
	RoundTrip        bool   `json:"round_trip,omitempty"`
	CustomRate       string `json:"custom_rate,omitempty"`
	RoomType         string `json:"room_type,omitempty"`
	Rooms            int    `json:"rooms,omitempty"`
	Insurance        string `json:"insurance,omitempty"`
	GPS              bool   `json:"gps,omitempty"`
	ChildSeat        bool   `json:"child_seat,omitempty"`
	AdditionalDriver bool   `json:"additional_driver,omitempty"`
	CabinClass       string `json:"cabin_class,omitempty"`
	CheckedBags      int    `json:"checked_bags,omitempty"`
	CarryOnBags      int    `json:"carry_on_bags,omitempty"`
	HotelPickup      bool   `json:"hotel_pickup,omitempty"`
}
