package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"staybook/pkg/api"
)

// ErrRatingOutOfRange is returned before sending a rating outside 1..5. The
// server stores any value, so this is the only bound.
var ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

func (c *Client) RateHotel(ctx context.Context, hotelID, comment string, rating float64) (*api.Rating, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, invalid("Please fill comment field.")
	}
	if rating < 1 || rating > 5 {
		return nil, ErrRatingOutOfRange
	}
	r := api.Float(rating)
	var out api.RatingResponse
	err := c.do(ctx, http.MethodPost, "/rating/"+url.PathEscape(hotelID), nil, api.RatingRequest{Comment: &comment, Rating: &r}, &out)
	if err != nil {
		return nil, err
	}
	return out.Rating, nil
}

func (c *Client) listRatings(ctx context.Context, path string) ([]api.Rating, error) {
	var out api.RatingsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Ratings, nil
}

func (c *Client) MyRatings(ctx context.Context) ([]api.Rating, error) {
	return c.listRatings(ctx, "/ratings")
}

func (c *Client) HotelRatings(ctx context.Context, hotelID string) ([]api.Rating, error) {
	return c.listRatings(ctx, "/ratings/"+url.PathEscape(hotelID))
}

func (c *Client) AllRatings(ctx context.Context) ([]api.Rating, error) {
	return c.listRatings(ctx, "/all-ratings")
}
