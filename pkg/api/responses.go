package api

type HotelsPageResponse struct {
	Envelope
	Hotels []Hotel `json:"hotels"`
	Count  int64   `json:"count"`
}

type HotelsResponse struct {
	Envelope
	Hotels []Hotel `json:"hotels"`
}

type HotelResponse struct {
	Envelope
	Hotel *Hotel `json:"hotel,omitempty"`
}

type BookingsResponse struct {
	Envelope
	Bookings []Booking `json:"bookings"`
}

type BookingResponse struct {
	Envelope
	Booking *Booking `json:"booking,omitempty"`
}

type OrderResponse struct {
	Envelope
	Order *Order `json:"order,omitempty"`
}

// VerificationResponse keeps the legacy msg/orderId/paymentId keys next to
// the created booking.
type VerificationResponse struct {
	Envelope
	Msg       string   `json:"msg,omitempty"`
	OrderID   string   `json:"orderId,omitempty"`
	PaymentID string   `json:"paymentId,omitempty"`
	Booking   *Booking `json:"booking,omitempty"`
}

type RatingsResponse struct {
	Envelope
	Ratings []Rating `json:"ratings"`
}

type RatingResponse struct {
	Envelope
	Rating *Rating `json:"rating,omitempty"`
}

type CategoriesResponse struct {
	Envelope
	Categories []Category `json:"categories"`
}

type CategoryResponse struct {
	Envelope
	Category *Category `json:"category,omitempty"`
}

type AuthResponse struct {
	Envelope
	Token string `json:"token,omitempty"`
	User  *User  `json:"user,omitempty"`
}

type UserResponse struct {
	Envelope
	User *User `json:"user,omitempty"`
}
