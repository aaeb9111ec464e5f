package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// ServiceInput is the vendor-authored offering payload for create and update.
type ServiceInput struct {
	Name            string          `json:"name" validate:"required"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category" validate:"required"`
	Subcategory     string          `json:"subcategory" validate:"required"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	DurationMinutes int             `json:"durationMinutes,omitempty"`
	IsActive        *bool           `json:"isActive,omitempty"`
}

type serviceData struct {
	Service Service `json:"service"`
}

// VendorServices lists the authenticated vendor's own offerings, active or
// not.
func (c *Client) VendorServices(ctx context.Context) ([]Service, error) {
	var data struct {
		Items []Service `json:"items"`
	}
	if err := c.do(ctx, "vendor.services", http.MethodGet, "/vendor/services", nil, nil, true, &data); err != nil {
		return nil, err
	}
	return data.Items, nil
}

// VendorCreateService publishes a new offering.
func (c *Client) VendorCreateService(ctx context.Context, input ServiceInput) (*Service, error) {
	if err := c.check(input); err != nil {
		return nil, err
	}
	var data serviceData
	if err := c.do(ctx, "vendor.service_create", http.MethodPost, "/vendor/services", nil, input, true, &data); err != nil {
		return nil, err
	}
	return &data.Service, nil
}

// VendorUpdateService replaces an offering's editable fields.
func (c *Client) VendorUpdateService(ctx context.Context, id string, input ServiceInput) (*Service, error) {
	if err := c.check(input); err != nil {
		return nil, err
	}
	var data serviceData
	path := "/vendor/services/" + url.PathEscape(id)
	if err := c.do(ctx, "vendor.service_update", http.MethodPut, path, nil, input, true, &data); err != nil {
		return nil, err
	}
	return &data.Service, nil
}

// VendorDeleteService removes an offering and returns its id.
func (c *Client) VendorDeleteService(ctx context.Context, id string) (string, error) {
	var data struct {
		ServiceID string `json:"serviceId"`
	}
	path := "/vendor/services/" + url.PathEscape(id)
	if err := c.do(ctx, "vendor.service_delete", http.MethodDelete, path, nil, nil, true, &data); err != nil {
		return "", err
	}
	return data.ServiceID, nil
}
