package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/servicepro/servicepro-client/pkg/enums"
	"github.com/servicepro/servicepro-client/pkg/pagination"
)

// User is an account as the client presents it: role and status are validated
// client-vocabulary enums, never raw wire strings.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Role         enums.Role
	Status       enums.UserStatus
	CreatedAt    time.Time
	BusinessName string
	Address      string
}

// VendorSummary is the denormalized vendor block attached to services,
// bookings and admin rows.
type VendorSummary struct {
	ID           string  `json:"id"`
	BusinessName string  `json:"businessName,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
	TotalJobs    int     `json:"totalJobs,omitempty"`
	IsVerified   bool    `json:"isVerified"`
}

// Service is a vendor-authored offering under the fixed taxonomy.
type Service struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category"`
	Subcategory     string          `json:"subcategory"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"durationMinutes,omitempty"`
	IsActive        bool            `json:"isActive"`
	Vendor          *VendorSummary  `json:"vendor,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ServicePage is one page of services plus pagination metadata.
type ServicePage struct {
	Items []Service `json:"items"`
	pagination.Meta
}

// UserRef is the minimal user block embedded in bookings and reviews.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// TimelineEntry is one event in a booking's history.
type TimelineEntry struct {
	Type    string    `json:"type"`
	Message string    `json:"message"`
	ByRole  string    `json:"byRole"`
	At      time.Time `json:"at"`
}

// Booking is a customer's scheduled job. Status is the client vocabulary
// (accepted, not the wire's confirmed).
type Booking struct {
	ID          string
	Status      enums.BookingStatus
	ScheduledAt time.Time
	Address     string
	Notes       string
	TotalPrice  decimal.Decimal
	Service     *Service
	User        *UserRef
	Vendor      *VendorSummary
	Timeline    []TimelineEntry
}

// BookingPage is one page of bookings plus pagination metadata.
type BookingPage struct {
	Items []Booking
	pagination.Meta
}

// AdminVendorRow is the moderation view of a vendor account.
type AdminVendorRow struct {
	ID           string
	User         *User
	BusinessName string
	Address      string
	Categories   []string
	IsVerified   bool
	Rating       float64
	TotalJobs    int
	CreatedAt    time.Time
}

// ChatThread is a per-booking conversation, lazily created on first access.
type ChatThread struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"booking"`
	UserID        string    `json:"user"`
	VendorID      string    `json:"vendor"`
	LastMessageAt time.Time `json:"lastMessageAt"`
}

// ChatMessage is one append-only message in a thread.
type ChatMessage struct {
	ID         string           `json:"id"`
	ThreadID   string           `json:"thread"`
	SenderRole enums.ChatSender `json:"senderRole"`
	Text       string           `json:"text"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// Review is a customer's post-completion rating of a booking.
type Review struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking"`
	VendorID  string    `json:"vendor"`
	UserID    string    `json:"user"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Service   *Service  `json:"service,omitempty"`
	Author    *UserRef  `json:"userObj,omitempty"`
}

// CategoryMeta mirrors the backend's category metadata endpoint.
type CategoryMeta struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Subcategories []SubcategoryMeta `json:"subcategories"`
}

type SubcategoryMeta struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	BasePrice   decimal.Decimal `json:"basePrice"`
}

// wireUser is the backend's user shape; role and status carry wire vocabulary.
type wireUser struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	BusinessName string    `json:"businessName,omitempty"`
	Address      string    `json:"address,omitempty"`
}

func (w wireUser) toDomain() (User, error) {
	role, err := enums.RoleFromWire(w.Role)
	if err != nil {
		return User{}, err
	}
	status := enums.UserStatusActive
	if w.Status != "" {
		status, err = enums.ParseUserStatus(w.Status)
		if err != nil {
			return User{}, err
		}
	}
	return User{
		ID:           w.ID,
		Name:         w.Name,
		Email:        w.Email,
		Phone:        w.Phone,
		Role:         role,
		Status:       status,
		CreatedAt:    w.CreatedAt,
		BusinessName: w.BusinessName,
		Address:      w.Address,
	}, nil
}

// wireBooking is the backend's booking shape; status carries wire vocabulary.
type wireBooking struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	ScheduledAt time.Time       `json:"scheduledAt"`
	Address     string          `json:"address"`
	Notes       string          `json:"notes,omitempty"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Service     *Service        `json:"service,omitempty"`
	User        *UserRef        `json:"user,omitempty"`
	Vendor      *VendorSummary  `json:"vendor,omitempty"`
	Timeline    []TimelineEntry `json:"timeline,omitempty"`
}

func (w wireBooking) toDomain() (Booking, error) {
	status, err := enums.BookingStatusFromWire(w.Status)
	if err != nil {
		return Booking{}, err
	}
	return Booking{
		ID:          w.ID,
		Status:      status,
		ScheduledAt: w.ScheduledAt,
		Address:     w.Address,
		Notes:       w.Notes,
		TotalPrice:  w.TotalPrice,
		Service:     w.Service,
		User:        w.User,
		Vendor:      w.Vendor,
		Timeline:    w.Timeline,
	}, nil
}

func bookingsFromWire(items []wireBooking) ([]Booking, error) {
	out := make([]Booking, 0, len(items))
	for _, item := range items {
		booking, err := item.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, booking)
	}
	return out, nil
}

type wireAdminVendorRow struct {
	ID           string    `json:"id"`
	User         *wireUser `json:"user,omitempty"`
	BusinessName string    `json:"businessName"`
	Address      string    `json:"address,omitempty"`
	Categories   []string  `json:"categories,omitempty"`
	IsVerified   bool      `json:"isVerified"`
	Rating       float64   `json:"rating,omitempty"`
	TotalJobs    int       `json:"totalJobs,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (w wireAdminVendorRow) toDomain() (AdminVendorRow, error) {
	row := AdminVendorRow{
		ID:           w.ID,
		BusinessName: w.BusinessName,
		Address:      w.Address,
		Categories:   w.Categories,
		IsVerified:   w.IsVerified,
		Rating:       w.Rating,
		TotalJobs:    w.TotalJobs,
		CreatedAt:    w.CreatedAt,
	}
	if w.User != nil {
		user, err := w.User.toDomain()
		if err != nil {
			return AdminVendorRow{}, err
		}
		row.User = &user
	}
	return row, nil
}
