package mockapi

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wire vocabulary. The mock speaks the backend's dialect, not the client's:
// the customer role is "user" and the accepted status is "confirmed".
const (
	wireRoleAdmin    = "admin"
	wireRoleVendor   = "vendor"
	wireRoleCustomer = "user"

	wireStatusActive  = "active"
	wireStatusBlocked = "blocked"

	wireBookingPending   = "pending"
	wireBookingConfirmed = "confirmed"
	wireBookingCompleted = "completed"
	wireBookingCancelled = "cancelled"
)

type account struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Password  string
	Role      string
	Status    string
	CreatedAt time.Time

	// Vendor-only fields.
	BusinessName string
	Address      string
	Categories   []string
	IsVerified   bool
	Rating       float64
	TotalJobs    int
}

type offering struct {
	ID              string
	VendorID        string
	Name            string
	Description     string
	Category        string
	Subcategory     string
	Price           decimal.Decimal
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
}

type timelineEntry struct {
	Type    string    `json:"type"`
	Message string    `json:"message"`
	ByRole  string    `json:"byRole"`
	At      time.Time `json:"at"`
}

type booking struct {
	ID          string
	ServiceID   string
	UserID      string
	VendorID    string
	Status      string
	ScheduledAt time.Time
	Address     string
	Notes       string
	TotalPrice  decimal.Decimal
	Timeline    []timelineEntry
	CreatedAt   time.Time
}

type thread struct {
	ID            string
	BookingID     string
	UserID        string
	VendorID      string
	LastMessageAt time.Time
	CreatedAt     time.Time
}

type message struct {
	ID         string    `json:"id"`
	ThreadID   string    `json:"thread"`
	SenderRole string    `json:"senderRole"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

type review struct {
	ID        string
	BookingID string
	VendorID  string
	UserID    string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// Seed loads a small fixture set: one admin, one verified vendor with two
// services, one customer. All passwords are "password123".
func (s *Server) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	admin := &account{
		ID:        uuid.NewString(),
		Name:      "Site Admin",
		Email:     "admin@servicepro.test",
		Phone:     "+15550100",
		Password:  "password123",
		Role:      wireRoleAdmin,
		Status:    wireStatusActive,
		CreatedAt: now,
	}
	vendor := &account{
		ID:           uuid.NewString(),
		Name:         "Vera Vendor",
		Email:        "vendor@servicepro.test",
		Phone:        "+15550101",
		Password:     "password123",
		Role:         wireRoleVendor,
		Status:       wireStatusActive,
		CreatedAt:    now,
		BusinessName: "Sparkle Cleaning Co",
		Address:      "12 Main St, Springfield",
		Categories:   []string{"home-services"},
		IsVerified:   true,
		Rating:       4.8,
		TotalJobs:    37,
	}
	customer := &account{
		ID:        uuid.NewString(),
		Name:      "Casey Customer",
		Email:     "customer@servicepro.test",
		Phone:     "+15550102",
		Password:  "password123",
		Role:      wireRoleCustomer,
		Status:    wireStatusActive,
		CreatedAt: now,
	}
	for _, acct := range []*account{admin, vendor, customer} {
		s.accounts[acct.ID] = acct
	}

	services := []*offering{
		{
			ID:              uuid.NewString(),
			VendorID:        vendor.ID,
			Name:            "Deep Home Cleaning",
			Description:     "Full-house deep clean including kitchen and bathrooms.",
			Category:        "home-services",
			Subcategory:     "deep-cleaning",
			Price:           decimal.NewFromInt(120),
			DurationMinutes: 180,
			IsActive:        true,
			CreatedAt:       now,
		},
		{
			ID:              uuid.NewString(),
			VendorID:        vendor.ID,
			Name:            "Weekly House Cleaning",
			Description:     "Recurring standard clean for apartments and houses.",
			Category:        "home-services",
			Subcategory:     "house-cleaning",
			Price:           decimal.NewFromInt(85),
			DurationMinutes: 90,
			IsActive:        true,
			CreatedAt:       now,
		},
	}
	for _, svc := range services {
		s.offerings[svc.ID] = svc
	}
}

// Rendering helpers translating internal models into wire JSON. Callers hold
// the mutex.

func (s *Server) renderUser(acct *account) map[string]any {
	out := map[string]any{
		"id":        acct.ID,
		"name":      acct.Name,
		"email":     acct.Email,
		"phone":     acct.Phone,
		"role":      acct.Role,
		"status":    acct.Status,
		"createdAt": acct.CreatedAt,
	}
	if acct.Role == wireRoleVendor {
		out["businessName"] = acct.BusinessName
		out["address"] = acct.Address
	}
	return out
}

func (s *Server) renderVendorSummary(vendorID string) map[string]any {
	acct, ok := s.accounts[vendorID]
	if !ok {
		return nil
	}
	return map[string]any{
		"id":           acct.ID,
		"businessName": acct.BusinessName,
		"rating":       acct.Rating,
		"totalJobs":    acct.TotalJobs,
		"isVerified":   acct.IsVerified,
	}
}

func (s *Server) renderService(svc *offering) map[string]any {
	return map[string]any{
		"id":              svc.ID,
		"name":            svc.Name,
		"description":     svc.Description,
		"category":        svc.Category,
		"subcategory":     svc.Subcategory,
		"price":           svc.Price,
		"durationMinutes": svc.DurationMinutes,
		"isActive":        svc.IsActive,
		"vendor":          s.renderVendorSummary(svc.VendorID),
		"createdAt":       svc.CreatedAt,
	}
}

func (s *Server) renderUserRef(id string) map[string]any {
	acct, ok := s.accounts[id]
	if !ok {
		return nil
	}
	return map[string]any{
		"id":    acct.ID,
		"name":  acct.Name,
		"email": acct.Email,
		"phone": acct.Phone,
	}
}

func (s *Server) renderBooking(b *booking) map[string]any {
	out := map[string]any{
		"id":          b.ID,
		"status":      b.Status,
		"scheduledAt": b.ScheduledAt,
		"address":     b.Address,
		"notes":       b.Notes,
		"totalPrice":  b.TotalPrice,
		"user":        s.renderUserRef(b.UserID),
		"vendor":      s.renderVendorSummary(b.VendorID),
		"timeline":    b.Timeline,
		"createdAt":   b.CreatedAt,
	}
	if svc, ok := s.offerings[b.ServiceID]; ok {
		out["service"] = s.renderService(svc)
	}
	return out
}

// renderThread emits participant ids, not embedded objects; threads reference
// their user and vendor by id on the wire.
func (s *Server) renderThread(t *thread) map[string]any {
	return map[string]any{
		"id":            t.ID,
		"booking":       t.BookingID,
		"user":          t.UserID,
		"vendor":        t.VendorID,
		"lastMessageAt": t.LastMessageAt,
		"createdAt":     t.CreatedAt,
	}
}

func (s *Server) renderReview(rv *review) map[string]any {
	return map[string]any{
		"id":        rv.ID,
		"booking":   rv.BookingID,
		"vendor":    rv.VendorID,
		"user":      rv.UserID,
		"userObj":   s.renderUserRef(rv.UserID),
		"rating":    rv.Rating,
		"comment":   rv.Comment,
		"createdAt": rv.CreatedAt,
	}
}

// sortedBookings returns bookings newest first for stable listings.
func sortedBookings(in []*booking) []*booking {
	sort.Slice(in, func(i, j int) bool { return in[i].CreatedAt.After(in[j].CreatedAt) })
	return in
}

func validWireBookingStatus(status string) bool {
	switch status {
	case wireBookingPending, wireBookingConfirmed, wireBookingCompleted, wireBookingCancelled:
		return true
	}
	return false
}
