package mockapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/servicepro/servicepro-client/pkg/pagination"
)

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	if s.requireRole(r, wireRoleAdmin) == nil {
		s.fail(w, http.StatusForbidden, "Admin access required")
		return
	}

	query := r.URL.Query()
	role := query.Get("role")
	status := query.Get("status")
	q := strings.ToLower(query.Get("q"))

	s.mu.Lock()
	defer s.mu.Unlock()

	var items []map[string]any
	for _, acct := range s.accounts {
		if role != "" && acct.Role != role {
			continue
		}
		if status != "" && acct.Status != status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(acct.Name), q) &&
			!strings.Contains(strings.ToLower(acct.Email), q) {
			continue
		}
		items = append(items, s.renderUser(acct))
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i]["email"].(string) < items[j]["email"].(string)
	})
	s.ok(w, "OK", map[string]any{"items": items})
}

func (s *Server) setUserStatus(w http.ResponseWriter, r *http.Request, status, message string) {
	if s.requireRole(r, wireRoleAdmin) == nil {
		s.fail(w, http.StatusForbidden, "Admin access required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[chi.URLParam(r, "id")]
	if !ok {
		s.fail(w, http.StatusNotFound, "User not found")
		return
	}
	acct.Status = status
	s.ok(w, message, map[string]any{"user": s.renderUser(acct)})
}

func (s *Server) handleAdminBlockUser(w http.ResponseWriter, r *http.Request) {
	s.setUserStatus(w, r, wireStatusBlocked, "User blocked")
}

func (s *Server) handleAdminUnblockUser(w http.ResponseWriter, r *http.Request) {
	s.setUserStatus(w, r, wireStatusActive, "User unblocked")
}

func (s *Server) handleAdminVendors(w http.ResponseWriter, r *http.Request) {
	if s.requireRole(r, wireRoleAdmin) == nil {
		s.fail(w, http.StatusForbidden, "Admin access required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var items []map[string]any
	for _, acct := range s.accounts {
		if acct.Role != wireRoleVendor {
			continue
		}
		items = append(items, map[string]any{
			"id":           acct.ID,
			"user":         s.renderUser(acct),
			"businessName": acct.BusinessName,
			"address":      acct.Address,
			"categories":   acct.Categories,
			"isVerified":   acct.IsVerified,
			"rating":       acct.Rating,
			"totalJobs":    acct.TotalJobs,
			"createdAt":    acct.CreatedAt,
		})
	}
	s.ok(w, "OK", map[string]any{"items": items})
}

func (s *Server) setVendorVerified(w http.ResponseWriter, r *http.Request, verified bool, message string) {
	if s.requireRole(r, wireRoleAdmin) == nil {
		s.fail(w, http.StatusForbidden, "Admin access required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[chi.URLParam(r, "id")]
	if !ok || acct.Role != wireRoleVendor {
		s.fail(w, http.StatusNotFound, "Vendor not found")
		return
	}
	acct.IsVerified = verified
	s.ok(w, message, nil)
}

func (s *Server) handleAdminVerifyVendor(w http.ResponseWriter, r *http.Request) {
	s.setVendorVerified(w, r, true, "Vendor verified")
}

func (s *Server) handleAdminUnverifyVendor(w http.ResponseWriter, r *http.Request) {
	s.setVendorVerified(w, r, false, "Vendor verification removed")
}

func (s *Server) handleAdminServices(w http.ResponseWriter, r *http.Request) {
	if s.requireRole(r, wireRoleAdmin) == nil {
		s.fail(w, http.StatusForbidden, "Admin access required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var items []map[string]any
	for _, svc := range s.offerings {
		items = append(items, s.renderService(svc))
	}
	s.ok(w, "OK", map[string]any{"items": items})
}

func (s *Server) handleAdminToggleService(w http.ResponseWriter, r *http.Request) {
	if s.requireRole(r, wireRoleAdmin) == nil {
		s.fail(w, http.StatusForbidden, "Admin access required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.offerings[chi.URLParam(r, "id")]
	if !ok {
		s.fail(w, http.StatusNotFound, "Service not found")
		return
	}
	svc.IsActive = !svc.IsActive
	s.ok(w, "Service toggled", map[string]any{"service": s.renderService(svc)})
}

func (s *Server) handleAdminBookings(w http.ResponseWriter, r *http.Request) {
	if s.requireRole(r, wireRoleAdmin) == nil {
		s.fail(w, http.StatusForbidden, "Admin access required")
		return
	}

	query := r.URL.Query()
	status := query.Get("status")
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*booking
	for _, b := range s.bookings {
		if status != "" && b.Status != status {
			continue
		}
		matched = append(matched, b)
	}
	matched = sortedBookings(matched)

	meta := pagination.MetaFor(len(matched), pagination.Params{Page: page, Limit: limit})
	start := (meta.Page - 1) * meta.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + meta.Limit
	if end > len(matched) {
		end = len(matched)
	}

	s.ok(w, "OK", map[string]any{
		"items":      s.renderBookings(matched[start:end]),
		"total":      meta.Total,
		"page":       meta.Page,
		"limit":      meta.Limit,
		"totalPages": meta.TotalPages,
	})
}

func (s *Server) handleAdminBookingStatus(w http.ResponseWriter, r *http.Request) {
	if s.requireRole(r, wireRoleAdmin) == nil {
		s.fail(w, http.StatusForbidden, "Admin access required")
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
	if !ok {
		s.fail(w, http.StatusNotFound, "Booking not found")
		return
	}
	s.moveBooking(b, payload.Status, wireRoleAdmin)
	s.ok(w, "Booking updated", map[string]any{"booking": s.renderBooking(b)})
}
