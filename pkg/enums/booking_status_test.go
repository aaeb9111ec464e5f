package enums

import "testing"

func TestBookingStatusWireRoundTrip(t *testing.T) {
	for _, status := range validBookingStatuses {
		parsed, err := BookingStatusFromWire(status.Wire())
		if err != nil {
			t.Fatalf("round trip %s: %v", status, err)
		}
		if parsed != status {
			t.Fatalf("round trip %s: got %s", status, parsed)
		}
	}
}

func TestBookingStatusWireBijection(t *testing.T) {
	wirePairs := map[string]BookingStatus{
		"pending":   BookingStatusPending,
		"confirmed": BookingStatusAccepted,
		"completed": BookingStatusCompleted,
		"cancelled": BookingStatusCancelled,
	}
	for wire, want := range wirePairs {
		got, err := BookingStatusFromWire(wire)
		if err != nil {
			t.Fatalf("from wire %s: %v", wire, err)
		}
		if got != want {
			t.Fatalf("from wire %s: got %s want %s", wire, got, want)
		}
		if got.Wire() != wire {
			t.Fatalf("back to wire %s: got %s", wire, got.Wire())
		}
	}
}

func TestBookingStatusFromWireRejectsUnknown(t *testing.T) {
	if _, err := BookingStatusFromWire("accepted"); err == nil {
		t.Fatalf("wire vocabulary should not include the client spelling")
	}
	if _, err := BookingStatusFromWire("in_progress"); err == nil {
		t.Fatalf("expected error for unknown wire status")
	}
}
