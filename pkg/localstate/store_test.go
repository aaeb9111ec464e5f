package localstate

import "testing"

type persistedUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestTokenRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if got := store.Token(); got != "" {
		t.Fatalf("fresh store should have no token, got %q", got)
	}
	if err := store.SetToken("t1"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if got := store.Token(); got != "t1" {
		t.Fatalf("unexpected token %q", got)
	}
}

func TestUserRoundTripAndClear(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if err := store.SetUser(persistedUser{ID: "u1", Name: "Asha"}); err != nil {
		t.Fatalf("set user: %v", err)
	}
	var got persistedUser
	if !store.User(&got) {
		t.Fatalf("expected persisted user")
	}
	if got.ID != "u1" || got.Name != "Asha" {
		t.Fatalf("unexpected user %+v", got)
	}

	if err := store.SetToken("t1"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if store.Token() != "" {
		t.Fatalf("token should be cleared")
	}
	if store.User(&got) {
		t.Fatalf("user should be cleared")
	}
}

func TestReviewedHintsSurviveClear(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if store.HasReviewed("b1") {
		t.Fatalf("fresh store should have no hints")
	}
	if err := store.MarkReviewed("b1"); err != nil {
		t.Fatalf("mark reviewed: %v", err)
	}
	if err := store.MarkReviewed("b1"); err != nil {
		t.Fatalf("marking twice should be a no-op: %v", err)
	}
	if !store.HasReviewed("b1") {
		t.Fatalf("hint missing")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !store.HasReviewed("b1") {
		t.Fatalf("review hints should survive logout")
	}
}
