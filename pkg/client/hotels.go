package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"staybook/pkg/api"
)

// HotelQuery selects a page of hotels. Zero values are left to server defaults.
type HotelQuery struct {
	Page     int
	Limit    int
	Sort     string
	Search   string
	Category string
	Country  string
	State    string
	City     string
	Zip      string
	PriceGte *float64
	PriceLte *float64
}

func (q HotelQuery) values() url.Values {
	v := url.Values{}
	set := func(k, s string) {
		if s != "" {
			v.Set(k, s)
		}
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	set("sort", q.Sort)
	set("search", q.Search)
	set("category", q.Category)
	set("country", q.Country)
	set("state", q.State)
	set("city", q.City)
	set("zip", q.Zip)
	if q.PriceGte != nil {
		v.Set("price[gte]", strconv.FormatFloat(*q.PriceGte, 'f', -1, 64))
	}
	if q.PriceLte != nil {
		v.Set("price[lte]", strconv.FormatFloat(*q.PriceLte, 'f', -1, 64))
	}
	return v
}

// HotelsPage returns one page and the total number of matches.
func (c *Client) HotelsPage(ctx context.Context, q HotelQuery) ([]api.Hotel, int64, error) {
	var out api.HotelsPageResponse
	if err := c.do(ctx, http.MethodGet, "/p-hotels", q.values(), nil, &out); err != nil {
		return nil, 0, err
	}
	return out.Hotels, out.Count, nil
}

func (c *Client) Hotels(ctx context.Context) ([]api.Hotel, error) {
	var out api.HotelsResponse
	if err := c.do(ctx, http.MethodGet, "/hotels", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Hotels, nil
}

func (c *Client) Hotel(ctx context.Context, id string) (*api.Hotel, error) {
	var out api.HotelResponse
	if err := c.do(ctx, http.MethodGet, "/hotel/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Hotel, nil
}

// CheckHotel reports every required field missing from a create request.
func CheckHotel(in api.HotelRequest) error {
	var errs []string
	str := func(key string, v *string) {
		if v == nil || strings.TrimSpace(*v) == "" {
			errs = append(errs, "Please fill "+key+" field.")
		}
	}
	str("title", in.Title)
	str("description", in.Description)
	str("content", in.Content)
	str("category", in.Category)
	if in.Price == nil || *in.Price == 0 {
		errs = append(errs, "Please fill price field.")
	}
	str("country", in.Country)
	str("state", in.State)
	str("city", in.City)
	str("zip", in.Zip)
	str("address", in.Address)
	str("latitude", in.Latitude)
	str("longitude", in.Longitude)
	if len(in.Images) == 0 {
		errs = append(errs, "Please select at least one image.")
	}
	if len(errs) > 0 {
		return invalid(errs...)
	}
	return nil
}

func (c *Client) CreateHotel(ctx context.Context, in api.HotelRequest) (*api.Hotel, error) {
	if err := CheckHotel(in); err != nil {
		return nil, err
	}
	var out api.HotelResponse
	if err := c.do(ctx, http.MethodPost, "/hotel", nil, in, &out); err != nil {
		return nil, err
	}
	return out.Hotel, nil
}

func (c *Client) UpdateHotel(ctx context.Context, id string, in api.HotelRequest) error {
	var out api.Envelope
	return c.do(ctx, http.MethodPut, "/hotel/"+url.PathEscape(id), nil, in, &out)
}

func (c *Client) DeleteHotel(ctx context.Context, id string) error {
	var out api.Envelope
	return c.do(ctx, http.MethodDelete, "/hotel/"+url.PathEscape(id), nil, nil, &out)
}

func (c *Client) AddImages(ctx context.Context, id string, imgs []api.Image) error {
	var out api.Envelope
	return c.do(ctx, http.MethodPatch, "/add-image/"+url.PathEscape(id), nil, api.AddImagesRequest{Images: imgs}, &out)
}

func (c *Client) RemoveImage(ctx context.Context, id, publicID string) error {
	var out api.Envelope
	return c.do(ctx, http.MethodPatch, "/remove-image/"+url.PathEscape(id), nil, api.RemoveImageRequest{PublicID: publicID}, &out)
}
