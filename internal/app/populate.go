package app

import (
	"context"
	"errors"

	"staybook/internal/domain"
)

// populator resolves referenced documents inline, memoising lookups for the
// lifetime of one request. A dangling reference resolves to nil.
type populator struct {
	store  domain.Store
	users  map[string]*domain.UserSummary
	cats   map[string]*domain.Category
	hotels map[string]*domain.HotelSummary
}

func newPopulator(s domain.Store) *populator {
	return &populator{
		store:  s,
		users:  map[string]*domain.UserSummary{},
		cats:   map[string]*domain.Category{},
		hotels: map[string]*domain.HotelSummary{},
	}
}

func (p *populator) user(ctx context.Context, id string) (*domain.UserSummary, error) {
	if v, ok := p.users[id]; ok {
		return v, nil
	}
	u, err := p.store.GetUser(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		p.users[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s := u.Summary()
	p.users[id] = &s
	return &s, nil
}

func (p *populator) category(ctx context.Context, id string) (*domain.Category, error) {
	if v, ok := p.cats[id]; ok {
		return v, nil
	}
	c, err := p.store.GetCategory(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		p.cats[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.cats[id] = &c
	return &c, nil
}

func (p *populator) hotel(ctx context.Context, id string) (*domain.HotelSummary, error) {
	if v, ok := p.hotels[id]; ok {
		return v, nil
	}
	h, err := p.store.GetHotel(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		p.hotels[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s := h.Summary()
	p.hotels[id] = &s
	return &s, nil
}

func (p *populator) hotelView(ctx context.Context, h domain.Hotel) (domain.HotelView, error) {
	owner, err := p.user(ctx, h.OwnerID)
	if err != nil {
		return domain.HotelView{}, err
	}
	cat, err := p.category(ctx, h.CategoryID)
	if err != nil {
		return domain.HotelView{}, err
	}
	return domain.HotelView{Hotel: h, Owner: owner, Category: cat}, nil
}

func (p *populator) bookingView(ctx context.Context, b domain.Booking) (domain.BookingView, error) {
	u, err := p.user(ctx, b.UserID)
	if err != nil {
		return domain.BookingView{}, err
	}
	h, err := p.hotel(ctx, b.HotelID)
	if err != nil {
		return domain.BookingView{}, err
	}
	return domain.BookingView{Booking: b, User: u, Hotel: h}, nil
}

func (p *populator) ratingView(ctx context.Context, r domain.Rating, withHotel bool) (domain.RatingView, error) {
	u, err := p.user(ctx, r.UserID)
	if err != nil {
		return domain.RatingView{}, err
	}
	v := domain.RatingView{Rating: r, User: u}
	if withHotel {
		if v.Hotel, err = p.hotel(ctx, r.HotelID); err != nil {
			return domain.RatingView{}, err
		}
	}
	return v, nil
}
