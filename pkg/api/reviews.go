package api

import (
	"context"
	"net/http"
)

// CreateReviewRequest rates a completed booking. One review per booking; the
// backend is the authority on duplicates.
type CreateReviewRequest struct {
	BookingID string `validate:"required"`
	Rating    int    `validate:"required,min=1,max=5"`
	Comment   string
}

// CreateReview submits the customer's rating for a completed booking.
func (c *Client) CreateReview(ctx context.Context, req CreateReviewRequest) (*Review, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}

	body := map[string]any{
		"bookingId": req.BookingID,
		"rating":    req.Rating,
	}
	if req.Comment != "" {
		body["comment"] = req.Comment
	}

	var data struct {
		Review Review `json:"review"`
	}
	if err := c.do(ctx, "reviews.create", http.MethodPost, "/reviews", nil, body, true, &data); err != nil {
		return nil, err
	}
	return &data.Review, nil
}

// VendorReviews lists reviews left on the authenticated vendor's bookings.
func (c *Client) VendorReviews(ctx context.Context) ([]Review, error) {
	var data struct {
		Items []Review `json:"items"`
	}
	if err := c.do(ctx, "reviews.vendor", http.MethodGet, "/reviews/vendor", nil, nil, true, &data); err != nil {
		return nil, err
	}
	return data.Items, nil
}
