package client

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"staybook/pkg/api"
)

// BookingRequest is a stay as entered by the guest.
type BookingRequest struct {
	HotelID  string
	Price    float64
	CheckIn  time.Time
	CheckOut time.Time
	Adults   int
	Children int
}

// Check validates the stay before any payment is attempted.
func (b BookingRequest) Check() error {
	var errs []string
	if strings.TrimSpace(b.HotelID) == "" {
		errs = append(errs, "Please fill hotel field.")
	}
	if b.CheckIn.IsZero() {
		errs = append(errs, "Please select check-in date.")
	}
	if b.CheckOut.IsZero() {
		errs = append(errs, "Please select check-out date.")
	}
	if !b.CheckIn.IsZero() && !b.CheckOut.IsZero() && b.CheckOut.Before(b.CheckIn) {
		errs = append(errs, "Check-out date must not be before check-in date.")
	}
	if b.Adults < 1 {
		errs = append(errs, "At least one adult is required.")
	}
	if b.Price <= 0 {
		errs = append(errs, "Please fill price field.")
	}
	if len(errs) > 0 {
		return invalid(errs...)
	}
	return nil
}

// NumberOfDays counts whole calendar days between the dates, both included.
func NumberOfDays(in, out time.Time) int {
	y1, m1, d1 := in.Date()
	y2, m2, d2 := out.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(math.Round(b.Sub(a).Hours()/24)) + 1
}

// Payment is what the gateway checkout hands back after the guest pays.
type Payment struct {
	PaymentID string
	OrderID   string
	Signature string
}

// CheckoutFunc runs the gateway checkout for an order, typically a UI.
type CheckoutFunc func(ctx context.Context, order api.Order) (Payment, error)

// Book runs the whole payment flow: order, checkout, then verification. The
// booking exists only if the server accepted the signature.
func (c *Client) Book(ctx context.Context, b BookingRequest, checkout CheckoutFunc) (*api.Booking, error) {
	if err := b.Check(); err != nil {
		return nil, err
	}
	order, err := c.CreateOrder(ctx, b.Price)
	if err != nil {
		return nil, err
	}
	p, err := checkout(ctx, *order)
	if err != nil {
		return nil, err
	}
	return c.VerifyPayment(ctx, api.VerificationRequest{
		OrderCreationID:   order.ID,
		RazorpayPaymentID: p.PaymentID,
		RazorpayOrderID:   p.OrderID,
		RazorpaySignature: p.Signature,
		Hotel:             b.HotelID,
		Price:             api.Float(b.Price),
		CheckInDate:       &api.Date{Time: b.CheckIn},
		CheckOutDate:      &api.Date{Time: b.CheckOut},
		NumberOfDays:      api.Int(NumberOfDays(b.CheckIn, b.CheckOut)),
		Adults:            api.Int(b.Adults),
		Children:          api.Int(b.Children),
	})
}

func (c *Client) CreateOrder(ctx context.Context, price float64) (*api.Order, error) {
	p := api.Float(price)
	var out api.OrderResponse
	if err := c.do(ctx, http.MethodPost, "/razorpay", nil, api.OrderRequest{Price: &p}, &out); err != nil {
		return nil, err
	}
	return out.Order, nil
}

func (c *Client) VerifyPayment(ctx context.Context, in api.VerificationRequest) (*api.Booking, error) {
	var out api.VerificationResponse
	if err := c.do(ctx, http.MethodPost, "/verification", nil, in, &out); err != nil {
		return nil, err
	}
	return out.Booking, nil
}

func (c *Client) listBookings(ctx context.Context, path string) ([]api.Booking, error) {
	var out api.BookingsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Bookings, nil
}

func (c *Client) MyBookings(ctx context.Context) ([]api.Booking, error) {
	return c.listBookings(ctx, "/booking")
}

func (c *Client) AllBookings(ctx context.Context) ([]api.Booking, error) {
	return c.listBookings(ctx, "/bookings")
}

func (c *Client) HotelBookings(ctx context.Context, hotelID string) ([]api.Booking, error) {
	return c.listBookings(ctx, "/hotel-booking/"+url.PathEscape(hotelID))
}

func (c *Client) Booking(ctx context.Context, id string) (*api.Booking, error) {
	var out api.BookingResponse
	if err := c.do(ctx, http.MethodGet, "/booking/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Booking, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id, status string) error {
	var out api.Envelope
	return c.do(ctx, http.MethodPut, "/booking", nil, api.BookingStatusRequest{ID: id, Status: status}, &out)
}
