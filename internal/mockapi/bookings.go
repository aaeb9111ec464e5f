package mockapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type createBookingPayload struct {
	ServiceID   string    `json:"serviceId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Address     string    `json:"address"`
	Notes       string    `json:"notes"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	acct := s.requireRole(r, wireRoleCustomer)
	if acct == nil {
		s.fail(w, http.StatusForbidden, "Customer access required")
		return
	}

	var payload createBookingPayload
	if err := decodeBody(r, &payload); err != nil {
		s.fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.ServiceID == "" || payload.Address == "" || payload.ScheduledAt.IsZero() {
		s.fail(w, http.StatusBadRequest, "Service, schedule and address are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.offerings[payload.ServiceID]
	if !ok || !svc.IsActive {
		s.fail(w, http.StatusNotFound, "Service not found")
		return
	}

	now := time.Now()
	b := &booking{
		ID:          uuid.NewString(),
		ServiceID:   svc.ID,
		UserID:      acct.ID,
		VendorID:    svc.VendorID,
		Status:      wireBookingPending,
		ScheduledAt: payload.ScheduledAt,
		Address:     payload.Address,
		Notes:       payload.Notes,
		TotalPrice:  svc.Price,
		Timeline: []timelineEntry{{
			Type:    "created",
			Message: "Booking placed",
			ByRole:  wireRoleCustomer,
			At:      now,
		}},
		CreatedAt: now,
	}
	s.bookings[b.ID] = b
	s.created(w, "Booking created", map[string]any{"booking": s.renderBooking(b)})
}

func (s *Server) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*booking
	for _, b := range s.bookings {
		if b.UserID == acct.ID {
			matched = append(matched, b)
		}
	}
	s.ok(w, "OK", map[string]any{"items": s.renderBookings(sortedBookings(matched))})
}

func (s *Server) handleVendorBookings(w http.ResponseWriter, r *http.Request) {
	acct := s.requireRole(r, wireRoleVendor)
	if acct == nil {
		s.fail(w, http.StatusForbidden, "Vendor access required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*booking
	for _, b := range s.bookings {
		if b.VendorID == acct.ID {
			matched = append(matched, b)
		}
	}
	s.ok(w, "OK", map[string]any{"items": s.renderBookings(sortedBookings(matched))})
}

type statusPayload struct {
	Status string `json:"status"`
}

func (s *Server) handleVendorBookingStatus(w http.ResponseWriter, r *http.Request) {
	acct := s.requireRole(r, wireRoleVendor)
	if acct == nil {
		s.fail(w, http.StatusForbidden, "Vendor access required")
		return
	}

	var payload statusPayload
	if err := decodeBody(r, &payload); err != nil || !validWireBookingStatus(payload.Status) {
		s.fail(w, http.StatusBadRequest, "Invalid booking status")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[chi.URLParam(r, "id")]
	if !ok || b.VendorID != acct.ID {
		s.fail(w, http.StatusNotFound, "Booking not found")
		return
	}
	s.moveBooking(b, payload.Status, wireRoleVendor)
	s.ok(w, "Booking updated", map[string]any{"booking": s.renderBooking(b)})
}

// moveBooking applies the transition and appends a timeline entry. Callers
// hold the mutex.
func (s *Server) moveBooking(b *booking, status, byRole string) {
	b.Status = status
	b.Timeline = append(b.Timeline, timelineEntry{
		Type:    "status",
		Message: "Status changed to " + status,
		ByRole:  byRole,
		At:      time.Now(),
	})
	if status == wireBookingCompleted {
		if vendor, ok := s.accounts[b.VendorID]; ok {
			vendor.TotalJobs++
		}
	}
}

func (s *Server) renderBookings(in []*booking) []map[string]any {
	out := make([]map[string]any, 0, len(in))
	for _, b := range in {
		out = append(out, s.renderBooking(b))
	}
	return out
}
