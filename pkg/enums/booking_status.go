package enums

import "fmt"

// BookingStatus is a booking's lifecycle state as the client presents it.
// The backend spells the accepted state "confirmed"; the wire mapping below
// translates in both directions and is identity everywhere else.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// wireBookingStatusAccepted is the backend's name for BookingStatusAccepted.
const wireBookingStatusAccepted = "confirmed"

var validBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusAccepted,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

// String implements fmt.Stringer.
func (s BookingStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known BookingStatus.
func (s BookingStatus) IsValid() bool {
	for _, candidate := range validBookingStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Wire returns the backend spelling of the status.
func (s BookingStatus) Wire() string {
	if s == BookingStatusAccepted {
		return wireBookingStatusAccepted
	}
	return string(s)
}

// ParseBookingStatus converts raw client-side input into a BookingStatus.
func ParseBookingStatus(value string) (BookingStatus, error) {
	for _, candidate := range validBookingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid booking status %q", value)
}

// BookingStatusFromWire converts the backend spelling into a BookingStatus.
// The wire vocabulary is closed: unknown values, including the client-side
// "accepted" spelling, are rejected rather than passed through.
func BookingStatusFromWire(value string) (BookingStatus, error) {
	if value == wireBookingStatusAccepted {
		return BookingStatusAccepted, nil
	}
	for _, candidate := range validBookingStatuses {
		if candidate != BookingStatusAccepted && string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wire booking status %q", value)
}
