package client

import (
	"context"
	"net/http"
	"net/url"

	"staybook/pkg/api"
)

func (c *Client) Categories(ctx context.Context) ([]api.Category, error) {
	var out api.CategoriesResponse
	if err := c.do(ctx, http.MethodGet, "/category", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string, img *api.Image) (*api.Category, error) {
	var out api.CategoryResponse
	if err := c.do(ctx, http.MethodPost, "/category", nil, api.CategoryRequest{Name: &name, Image: img}, &out); err != nil {
		return nil, err
	}
	return out.Category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, in api.CategoryRequest) error {
	var out api.Envelope
	return c.do(ctx, http.MethodPut, "/category/"+url.PathEscape(id), nil, in, &out)
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	var out api.Envelope
	return c.do(ctx, http.MethodDelete, "/category/"+url.PathEscape(id), nil, nil, &out)
}
