package mockapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/servicepro/servicepro-client/pkg/api"
	"github.com/servicepro/servicepro-client/pkg/enums"
	pkgerrors "github.com/servicepro/servicepro-client/pkg/errors"
)

// clientFor builds a typed client bound to the given account's token.
func clientFor(t *testing.T, url string, token *string) *api.Client {
	t.Helper()
	client, err := api.NewClient(url+"/api", api.WithTokenSource(func() string { return *token }))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func login(t *testing.T, client *api.Client, email string, role enums.Role) *api.LoginResult {
	t.Helper()
	result, err := client.Login(context.Background(), api.LoginRequest{
		Email:    email,
		Password: "password123",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return result
}

func TestBookingLifecycle(t *testing.T) {
	mock := New(Options{})
	mock.Seed()
	server := httptest.NewServer(mock.Handler())
	defer server.Close()

	ctx := context.Background()

	var customerToken, vendorToken string
	customer := clientFor(t, server.URL, &customerToken)
	vendor := clientFor(t, server.URL, &vendorToken)

	customerResult := login(t, customer, "customer@servicepro.test", enums.RoleCustomer)
	vendorResult := login(t, vendor, "vendor@servicepro.test", enums.RoleVendor)
	customerToken = customerResult.Token
	vendorToken = vendorResult.Token

	// The seeded catalog is publicly listable.
	page, err := customer.ListServices(ctx, api.ServiceFilter{Category: "home-services"})
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	if len(page.Items) == 0 {
		t.Fatal("expected seeded services")
	}
	service := page.Items[0]

	booking, err := customer.CreateBooking(ctx, api.CreateBookingRequest{
		ServiceID:   service.ID,
		ScheduledAt: time.Now().Add(48 * time.Hour),
		Address:     "44 Oak Ave",
		Notes:       "Side gate is unlocked",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if booking.Status != enums.BookingStatusPending {
		t.Fatalf("new bookings start pending, got %s", booking.Status)
	}
	if !booking.TotalPrice.Equal(service.Price) {
		t.Fatalf("booking price must come from the service, got %s", booking.TotalPrice)
	}

	// Vendor accepts; the wire status is confirmed, the client sees accepted.
	accepted, err := vendor.VendorUpdateBookingStatus(ctx, booking.ID, enums.BookingStatusAccepted)
	if err != nil {
		t.Fatalf("VendorUpdateBookingStatus: %v", err)
	}
	if accepted.Status != enums.BookingStatusAccepted {
		t.Fatalf("expected accepted, got %s", accepted.Status)
	}

	mine, err := customer.MyBookings(ctx)
	if err != nil {
		t.Fatalf("MyBookings: %v", err)
	}
	if len(mine) != 1 || mine[0].Status != enums.BookingStatusAccepted {
		t.Fatalf("customer listing must reflect the acceptance, got %+v", mine)
	}

	// Chat is scoped to the booking and created on first access.
	thread, err := customer.ThreadForBooking(ctx, booking.ID)
	if err != nil {
		t.Fatalf("ThreadForBooking: %v", err)
	}
	if thread.BookingID != booking.ID {
		t.Fatalf("thread must reference its booking, got %q", thread.BookingID)
	}
	// Threads carry participant ids, not embedded user objects.
	if thread.UserID != customerResult.User.ID || thread.VendorID != vendorResult.User.ID {
		t.Fatalf("thread participants must be plain ids, got user=%q vendor=%q", thread.UserID, thread.VendorID)
	}
	again, err := customer.ThreadForBooking(ctx, booking.ID)
	if err != nil {
		t.Fatalf("ThreadForBooking again: %v", err)
	}
	if again.ID != thread.ID {
		t.Fatalf("repeat access must return the same thread, got %q and %q", thread.ID, again.ID)
	}
	if _, err := customer.SendMessage(ctx, thread.ID, "What time will you arrive?"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	reply, err := customer.RequestAIReply(ctx, thread.ID, "Can I reschedule?")
	if err != nil {
		t.Fatalf("RequestAIReply: %v", err)
	}
	if reply.SenderRole != enums.ChatSenderAI {
		t.Fatalf("assistant reply must carry the ai sender role, got %s", reply.SenderRole)
	}
	messages, err := vendor.Messages(ctx, thread.ID)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages (2 user + 1 ai), got %d", len(messages))
	}
	threads, err := vendor.VendorThreads(ctx)
	if err != nil {
		t.Fatalf("VendorThreads: %v", err)
	}
	if len(threads) != 1 || threads[0].ID != thread.ID {
		t.Fatalf("vendor thread listing must carry the booking's thread, got %+v", threads)
	}

	// Reviews require completion.
	if _, err := customer.CreateReview(ctx, api.CreateReviewRequest{BookingID: booking.ID, Rating: 5}); err == nil {
		t.Fatal("reviewing an uncompleted booking must fail")
	}
	if _, err := vendor.VendorUpdateBookingStatus(ctx, booking.ID, enums.BookingStatusCompleted); err != nil {
		t.Fatalf("complete booking: %v", err)
	}
	review, err := customer.CreateReview(ctx, api.CreateReviewRequest{
		BookingID: booking.ID,
		Rating:    5,
		Comment:   "Spotless work",
	})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if review.Rating != 5 {
		t.Fatalf("unexpected rating %d", review.Rating)
	}

	// One review per booking.
	_, err = customer.CreateReview(ctx, api.CreateReviewRequest{BookingID: booking.ID, Rating: 4})
	if err == nil {
		t.Fatal("duplicate review must fail")
	}

	vendorReviews, err := vendor.VendorReviews(ctx)
	if err != nil {
		t.Fatalf("VendorReviews: %v", err)
	}
	if len(vendorReviews) != 1 {
		t.Fatalf("expected one vendor review, got %d", len(vendorReviews))
	}
}

func TestRoleEnforcement(t *testing.T) {
	mock := New(Options{})
	mock.Seed()
	server := httptest.NewServer(mock.Handler())
	defer server.Close()

	ctx := context.Background()

	var customerToken string
	customer := clientFor(t, server.URL, &customerToken)
	customerToken = login(t, customer, "customer@servicepro.test", enums.RoleCustomer).Token

	if _, err := customer.AdminUsers(ctx, api.AdminUserFilter{}); err == nil {
		t.Fatal("customer must not reach admin endpoints")
	} else if pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %s", pkgerrors.As(err).Code())
	}

	var anonToken string
	anon := clientFor(t, server.URL, &anonToken)
	if _, err := anon.Me(ctx); err == nil {
		t.Fatal("missing token must be rejected")
	} else if pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %s", pkgerrors.As(err).Code())
	}
}

func TestAdminModeration(t *testing.T) {
	mock := New(Options{})
	mock.Seed()
	server := httptest.NewServer(mock.Handler())
	defer server.Close()

	ctx := context.Background()

	var adminToken string
	admin := clientFor(t, server.URL, &adminToken)
	adminToken = login(t, admin, "admin@servicepro.test", enums.RoleAdmin).Token

	users, err := admin.AdminUsers(ctx, api.AdminUserFilter{Role: enums.RoleCustomer})
	if err != nil {
		t.Fatalf("AdminUsers: %v", err)
	}
	if len(users) != 1 || users[0].Role != enums.RoleCustomer {
		t.Fatalf("role filter must translate to wire vocabulary, got %+v", users)
	}

	if err := admin.AdminBlockUser(ctx, users[0].ID); err != nil {
		t.Fatalf("AdminBlockUser: %v", err)
	}
	blocked, err := admin.AdminUsers(ctx, api.AdminUserFilter{Status: enums.UserStatusBlocked})
	if err != nil {
		t.Fatalf("AdminUsers blocked: %v", err)
	}
	if len(blocked) != 1 || blocked[0].Status != enums.UserStatusBlocked {
		t.Fatalf("expected the blocked user, got %+v", blocked)
	}
	if err := admin.AdminUnblockUser(ctx, users[0].ID); err != nil {
		t.Fatalf("AdminUnblockUser: %v", err)
	}

	vendors, err := admin.AdminVendors(ctx)
	if err != nil {
		t.Fatalf("AdminVendors: %v", err)
	}
	if len(vendors) != 1 {
		t.Fatalf("expected one seeded vendor, got %d", len(vendors))
	}
	if err := admin.AdminUnverifyVendor(ctx, vendors[0].ID); err != nil {
		t.Fatalf("AdminUnverifyVendor: %v", err)
	}

	services, err := admin.AdminServices(ctx)
	if err != nil {
		t.Fatalf("AdminServices: %v", err)
	}
	if len(services) == 0 {
		t.Fatal("expected seeded services")
	}
	if err := admin.AdminToggleService(ctx, services[0].ID); err != nil {
		t.Fatalf("AdminToggleService: %v", err)
	}

	// A deactivated service disappears from the public catalog.
	page, err := admin.ListServices(ctx, api.ServiceFilter{})
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	for _, svc := range page.Items {
		if svc.ID == services[0].ID {
			t.Fatal("toggled-off service must not be publicly listed")
		}
	}
}

func TestVendorServiceManagement(t *testing.T) {
	mock := New(Options{})
	mock.Seed()
	server := httptest.NewServer(mock.Handler())
	defer server.Close()

	ctx := context.Background()

	var vendorToken string
	vendor := clientFor(t, server.URL, &vendorToken)
	vendorToken = login(t, vendor, "vendor@servicepro.test", enums.RoleVendor).Token

	before, err := vendor.VendorServices(ctx)
	if err != nil {
		t.Fatalf("VendorServices: %v", err)
	}

	created, err := vendor.VendorCreateService(ctx, api.ServiceInput{
		Name:        "Window Washing",
		Description: "Interior and exterior glass",
		Category:    "home-services",
		Subcategory: "house-cleaning",
		Price:       before[0].Price,
	})
	if err != nil {
		t.Fatalf("VendorCreateService: %v", err)
	}
	if !created.IsActive {
		t.Fatal("new services default to active")
	}

	inactive := false
	updated, err := vendor.VendorUpdateService(ctx, created.ID, api.ServiceInput{
		Name:        "Window Washing",
		Category:    "home-services",
		Subcategory: "house-cleaning",
		Price:       created.Price,
		IsActive:    &inactive,
	})
	if err != nil {
		t.Fatalf("VendorUpdateService: %v", err)
	}
	if updated.IsActive {
		t.Fatal("update must apply the activation flag")
	}

	deletedID, err := vendor.VendorDeleteService(ctx, created.ID)
	if err != nil {
		t.Fatalf("VendorDeleteService: %v", err)
	}
	if deletedID != created.ID {
		t.Fatalf("expected deleted id %s, got %s", created.ID, deletedID)
	}

	after, err := vendor.VendorServices(ctx)
	if err != nil {
		t.Fatalf("VendorServices: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("expected %d services after delete, got %d", len(before), len(after))
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	mock := New(Options{})
	mock.Seed()
	server := httptest.NewServer(mock.Handler())
	defer server.Close()

	ctx := context.Background()

	var adminToken string
	admin := clientFor(t, server.URL, &adminToken)
	adminToken = login(t, admin, "admin@servicepro.test", enums.RoleAdmin).Token

	// Before any write the client still sees a fully-populated document from
	// its shipped defaults.
	doc, err := admin.GetSettings(ctx, enums.RoleAdmin)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if _, ok := doc["general"]; !ok {
		t.Fatal("defaults must fill an empty server document")
	}

	doc["general"].(map[string]any)["platformName"] = "ServicePro Staging"
	if _, err := admin.UpdateSettings(ctx, enums.RoleAdmin, doc); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	reread, err := admin.GetSettings(ctx, enums.RoleAdmin)
	if err != nil {
		t.Fatalf("GetSettings after update: %v", err)
	}
	if got := reread["general"].(map[string]any)["platformName"]; got != "ServicePro Staging" {
		t.Fatalf("stored value must win over the default, got %v", got)
	}
}
