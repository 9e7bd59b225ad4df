package domain

import (
	"context"
	"time"
)

type HotelRepository interface {
	CreateHotel(ctx context.Context, h *Hotel) error
	GetHotel(ctx context.Context, id string) (Hotel, error)
	ListHotels(ctx context.Context, q HotelQuery) ([]Hotel, error)
	CountHotels(ctx context.Context, f HotelFilter) (int64, error)
	UpdateHotel(ctx context.Context, id string, u HotelUpdate) error
	DeleteHotel(ctx context.Context, id string) error
	AddHotelImages(ctx context.Context, id string, imgs []Image) error
	RemoveHotelImage(ctx context.Context, id, publicID string) error
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, b *Booking) error
	GetBooking(ctx context.Context, id string) (Booking, error)
	ListBookings(ctx context.Context, f BookingFilter) ([]Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, s BookingStatus) error
	// HasOverlappingBooking reports whether a non-cancelled booking of the hotel
	// intersects [in, out].
	HasOverlappingBooking(ctx context.Context, hotelID string, in, out time.Time) (bool, error)
}

type RatingRepository interface {
	CreateRating(ctx context.Context, r *Rating) error
	ListRatings(ctx context.Context, f RatingFilter) ([]Rating, error)
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id string) (Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, c Category) error
	DeleteCategory(ctx context.Context, id string) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id string) (User, error)
	// FindUser looks a user up by email or username.
	FindUser(ctx context.Context, login string) (User, error)
}

// Store is the document store as a whole.
type Store interface {
	HotelRepository
	BookingRepository
	RatingRepository
	CategoryRepository
	UserRepository
	Close(ctx context.Context) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (PaymentOrder, error)
	// Verify checks the gateway signature of orderID|paymentID.
	Verify(orderID, paymentID, signature string) bool
}

type TokenIssuer interface {
	Issue(u User) (token string, exp time.Time, err error)
	Parse(token string) (Claims, error)
}

type Claims struct {
	UserID    string
	Role      Role
	ExpiresAt time.Time
}

type TokenRevoker interface {
	Revoke(ctx context.Context, token string, until time.Time) error
	Revoked(ctx context.Context, token string) (bool, error)
}

// BookingLocker serialises booking creation per hotel across API instances.
type BookingLocker interface {
	Lock(ctx context.Context, hotelID string) (unlock func(), err error)
}
