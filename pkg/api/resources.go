package api

import "time"

type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// UserSummary is the populated form of a user reference.
type UserSummary struct {
	ID           string `json:"_id"`
	Username     string `json:"username,omitempty"`
	Email        string `json:"email,omitempty"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	MobileNumber string `json:"mobileNumber,omitempty"`
	Image        string `json:"image,omitempty"`
}

type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	MobileNumber string    `json:"mobileNumber"`
	Image        string    `json:"image"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Category struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Image     Image     `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Hotel struct {
	ID          string           `json:"_id"`
	Owner       Ref[UserSummary] `json:"owner"`
	Category    Ref[Category]    `json:"category"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Content     string           `json:"content"`
	Images      []Image          `json:"images"`
	Price       float64          `json:"price"`
	Country     string           `json:"country"`
	State       string           `json:"state"`
	City        string           `json:"city"`
	Zip         string           `json:"zip"`
	Address     string           `json:"address"`
	Latitude    string           `json:"latitude"`
	Longitude   string           `json:"longitude"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// HotelSummary is the populated form of a hotel reference.
type HotelSummary struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Images      []Image `json:"images,omitempty"`
}

type PaymentResult struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type Booking struct {
	ID            string            `json:"_id"`
	User          Ref[UserSummary]  `json:"user"`
	Hotel         Ref[HotelSummary] `json:"hotel"`
	PaymentResult PaymentResult     `json:"paymentResult"`
	Price         float64           `json:"price"`
	CheckInDate   time.Time         `json:"checkInDate"`
	CheckOutDate  time.Time         `json:"checkOutDate"`
	NumberOfDays  int               `json:"numberOfDays"`
	Adults        int               `json:"adults"`
	Children      int               `json:"children"`
	Status        string            `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type Rating struct {
	ID        string            `json:"_id"`
	Hotel     Ref[HotelSummary] `json:"hotel"`
	User      Ref[UserSummary]  `json:"user"`
	Comment   string            `json:"comment"`
	Rating    float64           `json:"rating"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Order is a payment-gateway order; Amount is in minor currency units.
type Order struct {
	ID       string `json:"id"`
	Entity   string `json:"entity,omitempty"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
	Status   string `json:"status,omitempty"`
}
