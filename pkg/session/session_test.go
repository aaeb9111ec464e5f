package session

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/servicepro/servicepro-client/internal/mockapi"
	"github.com/servicepro/servicepro-client/pkg/api"
	"github.com/servicepro/servicepro-client/pkg/enums"
	"github.com/servicepro/servicepro-client/pkg/localstate"
)

type fixture struct {
	manager *Manager
	store   *localstate.Store
	client  *api.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mock := mockapi.New(mockapi.Options{})
	mock.Seed()
	server := httptest.NewServer(mock.Handler())
	t.Cleanup(server.Close)

	store, err := localstate.New(t.TempDir())
	if err != nil {
		t.Fatalf("localstate.New: %v", err)
	}

	client, err := api.NewClient(server.URL+"/api", api.WithTokenSource(store.Token))
	if err != nil {
		t.Fatalf("api.NewClient: %v", err)
	}

	return &fixture{
		manager: NewManager(client, store, nil),
		store:   store,
		client:  client,
	}
}

func TestManagerStartsBooting(t *testing.T) {
	f := newFixture(t)
	if got := f.manager.State().Phase; got != PhaseBooting {
		t.Fatalf("expected booting before Boot, got %s", got)
	}
	if f.manager.IsAuthenticated() {
		t.Fatal("booting session must not report authenticated")
	}
}

func TestBootWithoutTokenIsAnonymous(t *testing.T) {
	f := newFixture(t)
	if err := f.manager.Boot(context.Background()); err != nil {
		t.Fatalf("Boot: %v", err)
	}
	state := f.manager.State()
	if state.Phase != PhaseAnonymous {
		t.Fatalf("expected anonymous, got %s", state.Phase)
	}
	if state.User != nil {
		t.Fatal("anonymous session must carry no user")
	}
}

func TestLoginEstablishesAuthenticatedSession(t *testing.T) {
	f := newFixture(t)

	err := f.manager.Login(context.Background(), "customer@servicepro.test", "password123", enums.RoleCustomer)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	state := f.manager.State()
	if state.Phase != PhaseAuthenticated {
		t.Fatalf("expected authenticated, got %s", state.Phase)
	}
	if state.User.Role != enums.RoleCustomer {
		t.Fatalf("backend role user must land as customer, got %s", state.User.Role)
	}
	if !f.manager.IsAuthenticated() {
		t.Fatal("IsAuthenticated must be true after login")
	}
	if f.store.Token() == "" {
		t.Fatal("login must persist the token")
	}
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	if err := f.manager.Boot(context.Background()); err != nil {
		t.Fatalf("Boot: %v", err)
	}

	err := f.manager.Login(context.Background(), "customer@servicepro.test", "wrong", enums.RoleCustomer)
	if err == nil {
		t.Fatal("expected login to fail")
	}
	if got := f.manager.State().Phase; got != PhaseAnonymous {
		t.Fatalf("failed login must not change the session, got %s", got)
	}
	if f.store.Token() != "" {
		t.Fatal("failed login must not persist a token")
	}
}

func TestBootWithValidTokenAuthenticates(t *testing.T) {
	f := newFixture(t)
	err := f.manager.Login(context.Background(), "vendor@servicepro.test", "password123", enums.RoleVendor)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// A fresh manager over the same persisted state models an app restart.
	restarted := NewManager(f.client, f.store, nil)
	if err := restarted.Boot(context.Background()); err != nil {
		t.Fatalf("Boot: %v", err)
	}
	state := restarted.State()
	if state.Phase != PhaseAuthenticated {
		t.Fatalf("expected authenticated after rehydration, got %s", state.Phase)
	}
	if state.User.Role != enums.RoleVendor {
		t.Fatalf("expected vendor, got %s", state.User.Role)
	}
}

func TestBootWithBadTokenHoldsLastKnownIdentity(t *testing.T) {
	f := newFixture(t)
	if err := f.store.SetToken("not-a-real-token"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	stale := api.User{ID: "u1", Name: "Casey", Role: enums.RoleCustomer, Status: enums.UserStatusActive}
	if err := f.store.SetUser(&stale); err != nil {
		t.Fatalf("SetUser: %v", err)
	}

	err := f.manager.Boot(context.Background())
	if err == nil {
		t.Fatal("Boot with an unverifiable token must return the error")
	}

	state := f.manager.State()
	if state.Phase != PhaseUnverified {
		t.Fatalf("expected unverified, got %s", state.Phase)
	}
	if state.User == nil || state.User.ID != "u1" {
		t.Fatal("last-known user must be retained for the caller to act on")
	}
	if f.manager.IsAuthenticated() {
		t.Fatal("unverified must not report authenticated")
	}
	if !state.SignedIn() {
		t.Fatal("unverified with a retained identity still counts as signed in")
	}
}

func TestRegisterSignsInNewCustomer(t *testing.T) {
	f := newFixture(t)

	err := f.manager.Register(context.Background(), RegisterData{
		Name:     "New Customer",
		Email:    "new@servicepro.test",
		Phone:    "+15550199",
		Password: "password123",
		Role:     enums.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	state := f.manager.State()
	if state.Phase != PhaseAuthenticated {
		t.Fatalf("expected authenticated after registration, got %s", state.Phase)
	}
	if state.User.Role != enums.RoleCustomer {
		t.Fatalf("expected customer, got %s", state.User.Role)
	}
}

func TestRegisterVendorUsesVendorRoute(t *testing.T) {
	f := newFixture(t)

	err := f.manager.Register(context.Background(), RegisterData{
		Name:         "New Vendor",
		Email:        "newvendor@servicepro.test",
		Phone:        "+15550198",
		Password:     "password123",
		Role:         enums.RoleVendor,
		BusinessName: "Fresh Lawns LLC",
		Address:      "9 Elm St",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	state := f.manager.State()
	if state.User.Role != enums.RoleVendor {
		t.Fatalf("expected vendor, got %s", state.User.Role)
	}
	if state.User.BusinessName != "Fresh Lawns LLC" {
		t.Fatalf("vendor registration must carry the business name, got %q", state.User.BusinessName)
	}
}

func TestLogoutResetsToAnonymous(t *testing.T) {
	f := newFixture(t)
	err := f.manager.Login(context.Background(), "customer@servicepro.test", "password123", enums.RoleCustomer)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := f.manager.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if got := f.manager.State().Phase; got != PhaseAnonymous {
		t.Fatalf("expected anonymous after logout, got %s", got)
	}
	if f.store.Token() != "" {
		t.Fatal("logout must clear the persisted token")
	}

	var discarded api.User
	if f.store.User(&discarded) {
		t.Fatal("logout must clear the persisted user")
	}
}
