package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/servicepro/servicepro-client/pkg/enums"
	pkgerrors "github.com/servicepro/servicepro-client/pkg/errors"
)

// AdminUserFilter narrows the moderation user listing. Role is translated to
// wire vocabulary before serialization.
type AdminUserFilter struct {
	Role   enums.Role
	Status enums.UserStatus
	Query  string
}

func (f AdminUserFilter) values() url.Values {
	values := url.Values{}
	if f.Role != "" {
		values.Set("role", f.Role.Wire())
	}
	if f.Status != "" {
		values.Set("status", f.Status.String())
	}
	if f.Query != "" {
		values.Set("q", f.Query)
	}
	return values
}

// AdminUsers lists accounts for moderation.
func (c *Client) AdminUsers(ctx context.Context, filter AdminUserFilter) ([]User, error) {
	if filter.Role != "" && !filter.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role is invalid")
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status is invalid")
	}

	var data struct {
		Items []wireUser `json:"items"`
	}
	if err := c.do(ctx, "admin.users", http.MethodGet, "/admin/users", filter.values(), nil, true, &data); err != nil {
		return nil, err
	}

	users := make([]User, 0, len(data.Items))
	for _, item := range data.Items {
		user, err := item.toDomain()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, fallbackMessage)
		}
		users = append(users, user)
	}
	return users, nil
}

// AdminBlockUser suspends an account.
func (c *Client) AdminBlockUser(ctx context.Context, id string) error {
	path := "/admin/users/" + url.PathEscape(id) + "/block"
	return c.do(ctx, "admin.user_block", http.MethodPatch, path, nil, nil, true, nil)
}

// AdminUnblockUser restores a suspended account.
func (c *Client) AdminUnblockUser(ctx context.Context, id string) error {
	path := "/admin/users/" + url.PathEscape(id) + "/unblock"
	return c.do(ctx, "admin.user_unblock", http.MethodPatch, path, nil, nil, true, nil)
}

// AdminVendors lists vendor accounts for moderation.
func (c *Client) AdminVendors(ctx context.Context) ([]AdminVendorRow, error) {
	var data struct {
		Items []wireAdminVendorRow `json:"items"`
	}
	if err := c.do(ctx, "admin.vendors", http.MethodGet, "/admin/vendors", nil, nil, true, &data); err != nil {
		return nil, err
	}

	rows := make([]AdminVendorRow, 0, len(data.Items))
	for _, item := range data.Items {
		row, err := item.toDomain()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, fallbackMessage)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AdminVerifyVendor marks a vendor as verified.
func (c *Client) AdminVerifyVendor(ctx context.Context, id string) error {
	path := "/admin/vendors/" + url.PathEscape(id) + "/verify"
	return c.do(ctx, "admin.vendor_verify", http.MethodPatch, path, nil, nil, true, nil)
}

// AdminUnverifyVendor removes a vendor's verified mark.
func (c *Client) AdminUnverifyVendor(ctx context.Context, id string) error {
	path := "/admin/vendors/" + url.PathEscape(id) + "/unverify"
	return c.do(ctx, "admin.vendor_unverify", http.MethodPatch, path, nil, nil, true, nil)
}

// AdminServices lists every offering, active or not.
func (c *Client) AdminServices(ctx context.Context) ([]Service, error) {
	var data struct {
		Items []Service `json:"items"`
	}
	if err := c.do(ctx, "admin.services", http.MethodGet, "/admin/services", nil, nil, true, &data); err != nil {
		return nil, err
	}
	return data.Items, nil
}

// AdminToggleService flips an offering's activation flag.
func (c *Client) AdminToggleService(ctx context.Context, id string) error {
	path := "/admin/services/" + url.PathEscape(id) + "/toggle"
	return c.do(ctx, "admin.service_toggle", http.MethodPatch, path, nil, nil, true, nil)
}

// AdminBookingFilter narrows the moderation booking listing.
type AdminBookingFilter struct {
	Status enums.BookingStatus
	Page   int
	Limit  int
}

func (f AdminBookingFilter) values() url.Values {
	values := url.Values{}
	if f.Status != "" {
		values.Set("status", f.Status.Wire())
	}
	if f.Page > 0 {
		values.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		values.Set("limit", strconv.Itoa(f.Limit))
	}
	return values
}

// AdminBookings lists bookings for moderation, paginated.
func (c *Client) AdminBookings(ctx context.Context, filter AdminBookingFilter) (*BookingPage, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking status is invalid")
	}

	var data struct {
		Items      []wireBooking `json:"items"`
		Total      int           `json:"total"`
		Page       int           `json:"page"`
		Limit      int           `json:"limit"`
		TotalPages int           `json:"totalPages"`
	}
	if err := c.do(ctx, "admin.bookings", http.MethodGet, "/admin/bookings", filter.values(), nil, true, &data); err != nil {
		return nil, err
	}

	items, err := bookingsFromWire(data.Items)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, fallbackMessage)
	}
	page := &BookingPage{Items: items}
	page.Total = data.Total
	page.Page = data.Page
	page.Limit = data.Limit
	page.TotalPages = data.TotalPages
	return page, nil
}

// AdminUpdateBookingStatus moves a booking to the given status on behalf of
// an administrator.
func (c *Client) AdminUpdateBookingStatus(ctx context.Context, bookingID string, status enums.BookingStatus) (*Booking, error) {
	if bookingID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id is required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking status is invalid")
	}

	body := map[string]any{"status": status.Wire()}
	path := "/admin/bookings/" + url.PathEscape(bookingID) + "/status"

	var data bookingData
	if err := c.do(ctx, "admin.booking_status", http.MethodPatch, path, nil, body, true, &data); err != nil {
		return nil, err
	}
	return data.toDomain()
}
