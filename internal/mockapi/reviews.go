package mockapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

type reviewPayload struct {
	BookingID string `json:"bookingId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	acct := s.requireRole(r, wireRoleCustomer)
	if acct == nil {
		s.fail(w, http.StatusForbidden, "Customer access required")
		return
	}

	var payload reviewPayload
	if err := decodeBody(r, &payload); err != nil {
		s.fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Rating < 1 || payload.Rating > 5 {
		s.fail(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[payload.BookingID]
	if !ok || b.UserID != acct.ID {
		s.fail(w, http.StatusNotFound, "Booking not found")
		return
	}
	if b.Status != wireBookingCompleted {
		s.fail(w, http.StatusBadRequest, "Only completed bookings can be reviewed")
		return
	}
	for _, rv := range s.reviews {
		if rv.BookingID == b.ID {
			s.fail(w, http.StatusBadRequest, "Booking is already reviewed")
			return
		}
	}

	rv := &review{
		ID:        uuid.NewString(),
		BookingID: b.ID,
		VendorID:  b.VendorID,
		UserID:    acct.ID,
		Rating:    payload.Rating,
		Comment:   payload.Comment,
		CreatedAt: time.Now(),
	}
	s.reviews[rv.ID] = rv
	s.recalcVendorRatingLocked(b.VendorID)
	s.created(w, "Review submitted", map[string]any{"review": s.renderReview(rv)})
}

func (s *Server) handleVendorReviews(w http.ResponseWriter, r *http.Request) {
	acct := s.requireRole(r, wireRoleVendor)
	if acct == nil {
		s.fail(w, http.StatusForbidden, "Vendor access required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var items []map[string]any
	for _, rv := range s.reviews {
		if rv.VendorID == acct.ID {
			items = append(items, s.renderReview(rv))
		}
	}
	s.ok(w, "OK", map[string]any{"items": items})
}

// recalcVendorRatingLocked recomputes the vendor's average rating. Callers
// hold the mutex.
func (s *Server) recalcVendorRatingLocked(vendorID string) {
	vendor, ok := s.accounts[vendorID]
	if !ok {
		return
	}
	var sum, count int
	for _, rv := range s.reviews {
		if rv.VendorID == vendorID {
			sum += rv.Rating
			count++
		}
	}
	if count > 0 {
		vendor.Rating = float64(sum) / float64(count)
	}
}
