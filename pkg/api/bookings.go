package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/servicepro/servicepro-client/pkg/enums"
	pkgerrors "github.com/servicepro/servicepro-client/pkg/errors"
)

// CreateBookingRequest schedules a service at an address. The backend derives
// the price and vendor from the service.
type CreateBookingRequest struct {
	ServiceID   string    `validate:"required"`
	ScheduledAt time.Time `validate:"required"`
	Address     string    `validate:"required"`
	Notes       string
}

type bookingData struct {
	Booking wireBooking `json:"booking"`
}

func (d bookingData) toDomain() (*Booking, error) {
	booking, err := d.Booking.toDomain()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, fallbackMessage)
	}
	return &booking, nil
}

// CreateBooking books a service as the authenticated customer.
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}

	body := map[string]any{
		"serviceId":   req.ServiceID,
		"scheduledAt": req.ScheduledAt.Format(time.RFC3339),
		"address":     req.Address,
	}
	if req.Notes != "" {
		body["notes"] = req.Notes
	}

	var data bookingData
	if err := c.do(ctx, "bookings.create", http.MethodPost, "/bookings", nil, body, true, &data); err != nil {
		return nil, err
	}
	return data.toDomain()
}

// MyBookings lists the authenticated customer's bookings.
func (c *Client) MyBookings(ctx context.Context) ([]Booking, error) {
	return c.listBookings(ctx, "bookings.my", "/bookings/my")
}

// VendorBookings lists bookings assigned to the authenticated vendor.
func (c *Client) VendorBookings(ctx context.Context) ([]Booking, error) {
	return c.listBookings(ctx, "bookings.vendor", "/vendor/bookings")
}

func (c *Client) listBookings(ctx context.Context, operation, path string) ([]Booking, error) {
	var data struct {
		Items []wireBooking `json:"items"`
	}
	if err := c.do(ctx, operation, http.MethodGet, path, nil, nil, true, &data); err != nil {
		return nil, err
	}
	items, err := bookingsFromWire(data.Items)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, fallbackMessage)
	}
	return items, nil
}

// VendorUpdateBookingStatus moves a booking to the given status on behalf of
// the vendor. The status is translated to wire vocabulary before sending.
func (c *Client) VendorUpdateBookingStatus(ctx context.Context, bookingID string, status enums.BookingStatus) (*Booking, error) {
	if bookingID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id is required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking status is invalid")
	}

	body := map[string]any{"status": status.Wire()}
	path := "/vendor/bookings/" + url.PathEscape(bookingID) + "/status"

	var data bookingData
	if err := c.do(ctx, "bookings.vendor_status", http.MethodPatch, path, nil, body, true, &data); err != nil {
		return nil, err
	}
	return data.toDomain()
}
