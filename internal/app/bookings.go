package app

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"staybook/internal/domain"
)

type VerifyInput struct {
	OrderCreationID   string
	RazorpayPaymentID string
	RazorpayOrderID   string
	RazorpaySignature string
	HotelID           string
	Price             float64
	CheckInDate       *time.Time
	CheckOutDate      *time.Time
	NumberOfDays      int
	Adults            int
	Children          int
}

type BookingService struct {
	store    domain.Store
	gateway  domain.PaymentGateway
	locker   domain.BookingLocker
	currency string
}

// NewBookingService builds the booking service. A nil locker disables the
// overlapping-stay guard.
func NewBookingService(s domain.Store, g domain.PaymentGateway, l domain.BookingLocker, currency string) *BookingService {
	if currency == "" {
		currency = "INR"
	}
	return &BookingService{store: s, gateway: g, locker: l, currency: currency}
}

func (s *BookingService) Mine(ctx context.Context, userID string) ([]domain.BookingView, error) {
	return s.list(ctx, domain.BookingFilter{UserID: userID})
}

func (s *BookingService) All(ctx context.Context) ([]domain.BookingView, error) {
	return s.list(ctx, domain.BookingFilter{})
}

func (s *BookingService) ForHotel(ctx context.Context, hotelID string) ([]domain.BookingView, error) {
	return s.list(ctx, domain.BookingFilter{HotelID: hotelID})
}

func (s *BookingService) list(ctx context.Context, f domain.BookingFilter) ([]domain.BookingView, error) {
	bs, err := s.store.ListBookings(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	p := newPopulator(s.store)
	out := make([]domain.BookingView, 0, len(bs))
	for _, b := range bs {
		v, err := p.bookingView(ctx, b)
		if err != nil {
			return nil, fmt.Errorf("populate booking %s: %w", b.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Get returns one booking; only its guest or an admin may read it.
func (s *BookingService) Get(ctx context.Context, caller domain.User, id string) (domain.BookingView, error) {
	b, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return domain.BookingView{}, err
	}
	if b.UserID != caller.ID && !caller.IsAdmin() {
		return domain.BookingView{}, ErrForbidden
	}
	return newPopulator(s.store).bookingView(ctx, b)
}

func (s *BookingService) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	var f fields
	if strings.TrimSpace(id) == "" {
		f.missing("id")
	}
	if !status.Valid() {
		f.add("status must be one of pending, complete, cancel")
	}
	if err := f.err(); err != nil {
		return err
	}
	return s.store.UpdateBookingStatus(ctx, id, status)
}

// CreateOrder asks the gateway for an order of price expressed in minor units.
func (s *BookingService) CreateOrder(ctx context.Context, price float64) (domain.PaymentOrder, error) {
	if price <= 0 {
		return domain.PaymentOrder{}, invalid("Please fill price field.")
	}
	amount := int64(math.Round(price * 100))
	order, err := s.gateway.CreateOrder(ctx, amount, s.currency, uuid.NewString())
	if err != nil {
		return domain.PaymentOrder{}, fmt.Errorf("create payment order: %w: %w", ErrGateway, err)
	}
	return order, nil
}

// Verify checks the gateway signature and records the booking. Nothing is
// persisted unless the signature matches.
func (s *BookingService) Verify(ctx context.Context, user domain.User, in VerifyInput) (domain.Booking, error) {
	var f fields
	f.str("orderCreationId", &in.OrderCreationID)
	f.str("razorpayPaymentId", &in.RazorpayPaymentID)
	f.str("razorpaySignature", &in.RazorpaySignature)
	f.str("hotel", &in.HotelID)
	if in.CheckInDate == nil {
		f.missing("checkInDate")
	}
	if in.CheckOutDate == nil {
		f.missing("checkOutDate")
	}
	if in.CheckInDate != nil && in.CheckOutDate != nil && in.CheckOutDate.Before(*in.CheckInDate) {
		f.add("checkOutDate must not be before checkInDate")
	}
	if err := f.err(); err != nil {
		return domain.Booking{}, err
	}

	if !s.gateway.Verify(in.OrderCreationID, in.RazorpayPaymentID, in.RazorpaySignature) {
		log.Warn().
			Str("order", in.OrderCreationID).
			Str("payment", in.RazorpayPaymentID).
			Str("user", user.ID).
			Msg("payment signature mismatch")
		return domain.Booking{}, ErrSignatureMismatch
	}

	if _, err := s.store.GetHotel(ctx, in.HotelID); err != nil {
		return domain.Booking{}, err
	}

	in.RazorpayOrderID = strings.TrimSpace(in.RazorpayOrderID)
	b := domain.Booking{
		UserID:  user.ID,
		HotelID: in.HotelID,
		PaymentResult: domain.PaymentResult{
			ID:                in.OrderCreationID,
			Status:            domain.PaymentSucceeded,
			RazorpayOrderID:   in.RazorpayOrderID,
			RazorpayPaymentID: in.RazorpayPaymentID,
			RazorpaySignature: in.RazorpaySignature,
		},
		Price:        in.Price,
		CheckInDate:  *in.CheckInDate,
		CheckOutDate: *in.CheckOutDate,
		NumberOfDays: in.NumberOfDays,
		Adults:       in.Adults,
		Children:     in.Children,
		Status:       domain.BookingPending,
	}
	if b.NumberOfDays == 0 {
		b.NumberOfDays = StayDays(b.CheckInDate, b.CheckOutDate)
	}

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, in.HotelID)
		if err != nil {
			return domain.Booking{}, fmt.Errorf("lock hotel %s: %w", in.HotelID, err)
		}
		defer unlock()

		taken, err := s.store.HasOverlappingBooking(ctx, in.HotelID, b.CheckInDate, b.CheckOutDate)
		if err != nil {
			return domain.Booking{}, fmt.Errorf("check overlap: %w", err)
		}
		if taken {
			s.recordRefundDue(ctx, b)
			return domain.Booking{}, fmt.Errorf("hotel %s is already booked for these dates: %w", in.HotelID, domain.ErrConflict)
		}
	}

	if err := s.store.CreateBooking(ctx, &b); err != nil {
		return domain.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	log.Info().
		Str("booking", b.ID).
		Str("hotel", b.HotelID).
		Str("user", user.ID).
		Str("order", b.PaymentResult.RazorpayOrderID).
		Msg("booking created")
	return b, nil
}

// recordRefundDue keeps a cancelled booking for a captured payment whose stay
// was rejected, so the payment can be traced and refunded.
func (s *BookingService) recordRefundDue(ctx context.Context, b domain.Booking) {
	b.Status = domain.BookingCancel
	b.PaymentResult.Status = domain.PaymentRefundDue
	ev := log.Warn().
		Str("hotel", b.HotelID).
		Str("user", b.UserID).
		Str("order", b.PaymentResult.ID).
		Str("payment", b.PaymentResult.RazorpayPaymentID)
	if err := s.store.CreateBooking(context.WithoutCancel(ctx), &b); err != nil {
		ev.Err(err).Msg("paid stay rejected; refund record not saved")
		return
	}
	ev.Str("booking", b.ID).Msg("paid stay rejected; refund due")
}

// StayDays counts the days of a stay with both ends inclusive.
func StayDays(in, out time.Time) int {
	d := out.Sub(in).Hours() / 24
	return int(math.Round(d)) + 1
}
