package domain

import "time"

type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingComplete BookingStatus = "complete"
	BookingCancel   BookingStatus = "cancel"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingComplete, BookingCancel:
		return true
	}
	return false
}

// Payment result statuses. A refund is due when the payment was captured but
// the stay could not be booked.
const (
	PaymentSucceeded = "success"
	PaymentRefundDue = "refund_due"
)

type PaymentResult struct {
	ID                string
	Status            string
	RazorpayOrderID   string
	RazorpayPaymentID string
	RazorpaySignature string
}

type Booking struct {
	ID            string
	UserID        string
	HotelID       string
	PaymentResult PaymentResult
	Price         float64
	CheckInDate   time.Time
	CheckOutDate  time.Time
	NumberOfDays  int
	Adults        int
	Children      int
	Status        BookingStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Overlaps reports whether the stay intersects [in, out]. Both ends are inclusive
// because check-in and check-out are whole days.
func (b Booking) Overlaps(in, out time.Time) bool {
	return !b.CheckInDate.After(out) && !in.After(b.CheckOutDate)
}

type BookingView struct {
	Booking
	User  *UserSummary
	Hotel *HotelSummary
}

type PaymentOrder struct {
	ID       string
	Entity   string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}
