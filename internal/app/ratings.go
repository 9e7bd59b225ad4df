package app

import (
	"context"
	"fmt"
	"strings"

	"staybook/internal/domain"
)

type RatingInput struct {
	Comment *string
	Rating  *float64
}

type RatingService struct{ store domain.Store }

func NewRatingService(s domain.Store) *RatingService { return &RatingService{store: s} }

func (s *RatingService) All(ctx context.Context) ([]domain.RatingView, error) {
	return s.list(ctx, domain.RatingFilter{}, true)
}

func (s *RatingService) ForHotel(ctx context.Context, hotelID string) ([]domain.RatingView, error) {
	return s.list(ctx, domain.RatingFilter{HotelID: hotelID}, false)
}

func (s *RatingService) Mine(ctx context.Context, userID string) ([]domain.RatingView, error) {
	return s.list(ctx, domain.RatingFilter{UserID: userID}, true)
}

func (s *RatingService) list(ctx context.Context, f domain.RatingFilter, withHotel bool) ([]domain.RatingView, error) {
	rs, err := s.store.ListRatings(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	p := newPopulator(s.store)
	out := make([]domain.RatingView, 0, len(rs))
	for _, r := range rs {
		v, err := p.ratingView(ctx, r, withHotel)
		if err != nil {
			return nil, fmt.Errorf("populate rating %s: %w", r.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Create stores a rating for the hotel. Only presence is checked here: the
// 1..5 range is enforced by clients, the server accepts any non-zero value.
func (s *RatingService) Create(ctx context.Context, user domain.User, hotelID string, in RatingInput) (domain.Rating, error) {
	var f fields
	f.str("comment", in.Comment)
	f.num("rating", in.Rating)
	if err := f.err(); err != nil {
		return domain.Rating{}, err
	}
	if _, err := s.store.GetHotel(ctx, hotelID); err != nil {
		return domain.Rating{}, err
	}
	r := domain.Rating{
		HotelID: hotelID,
		UserID:  user.ID,
		Comment: strings.ToLower(strings.TrimSpace(*in.Comment)),
		Rating:  *in.Rating,
	}
	if err := s.store.CreateRating(ctx, &r); err != nil {
		return domain.Rating{}, fmt.Errorf("create rating: %w", err)
	}
	return r, nil
}
