package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ServiceFilter narrows the public catalog listing. Zero values are omitted
// from the query string.
type ServiceFilter struct {
	Query       string
	Category    string
	Subcategory string
	VendorID    string
	Page        int
	Limit       int
}

func (f ServiceFilter) values() url.Values {
	values := url.Values{}
	if f.Query != "" {
		values.Set("q", f.Query)
	}
	if f.Category != "" {
		values.Set("category", f.Category)
	}
	if f.Subcategory != "" {
		values.Set("subcategory", f.Subcategory)
	}
	if f.VendorID != "" {
		values.Set("vendorId", f.VendorID)
	}
	if f.Page > 0 {
		values.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		values.Set("limit", strconv.Itoa(f.Limit))
	}
	return values
}

// ListServices fetches a page of the public catalog.
func (c *Client) ListServices(ctx context.Context, filter ServiceFilter) (*ServicePage, error) {
	var page ServicePage
	if err := c.do(ctx, "services.list", http.MethodGet, "/services", filter.values(), nil, false, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetService fetches one catalog entry by id.
func (c *Client) GetService(ctx context.Context, id string) (*Service, error) {
	var data struct {
		Service Service `json:"service"`
	}
	if err := c.do(ctx, "services.get", http.MethodGet, "/services/"+url.PathEscape(id), nil, nil, false, &data); err != nil {
		return nil, err
	}
	return &data.Service, nil
}
