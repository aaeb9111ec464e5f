package gate

import (
	"testing"

	"github.com/servicepro/servicepro-client/pkg/api"
	"github.com/servicepro/servicepro-client/pkg/enums"
	"github.com/servicepro/servicepro-client/pkg/session"
)

func userWithRole(role enums.Role) *api.User {
	return &api.User{ID: "u1", Name: "Test", Role: role, Status: enums.UserStatusActive}
}

func TestGateWaitsWhileBooting(t *testing.T) {
	result := Check(session.State{Phase: session.PhaseBooting}, []enums.Role{enums.RoleAdmin}, "", "/admin/users")
	if result.Decision != Wait {
		t.Fatalf("expected wait, got %s", result.Decision)
	}
	if result.Location != "" {
		t.Fatalf("no redirect may be decided while booting, got %q", result.Location)
	}
}

func TestGateRedirectsAnonymousToLogin(t *testing.T) {
	result := Check(session.State{Phase: session.PhaseAnonymous}, nil, "", "/vendor")
	if result.Decision != Redirect {
		t.Fatalf("expected redirect, got %s", result.Decision)
	}
	if result.Location != DefaultLoginPath {
		t.Fatalf("expected login path, got %q", result.Location)
	}
	if result.From != "/vendor" {
		t.Fatalf("expected original location to be captured, got %q", result.From)
	}

	custom := Check(session.State{Phase: session.PhaseAnonymous}, nil, "/signin", "")
	if custom.Location != "/signin" {
		t.Fatalf("redirect override ignored, got %q", custom.Location)
	}
}

func TestGateRedirectsWrongRoleToOwnHome(t *testing.T) {
	state := session.State{Phase: session.PhaseAuthenticated, User: userWithRole(enums.RoleCustomer), Token: "t1"}

	result := Check(state, []enums.Role{enums.RoleAdmin}, "", "/admin")
	if result.Decision != Redirect {
		t.Fatalf("expected redirect, got %s", result.Decision)
	}
	if result.Location != "/customer/bookings" {
		t.Fatalf("wrong-role redirect should target the user's home, got %q", result.Location)
	}
}

func TestGateAllowsMatchingRole(t *testing.T) {
	state := session.State{Phase: session.PhaseAuthenticated, User: userWithRole(enums.RoleVendor), Token: "t1"}

	if result := Check(state, []enums.Role{enums.RoleVendor, enums.RoleAdmin}, "", ""); result.Decision != Allow {
		t.Fatalf("expected allow, got %s", result.Decision)
	}
	if result := Check(state, nil, "", ""); result.Decision != Allow {
		t.Fatalf("empty allowed set should admit any signed-in user, got %s", result.Decision)
	}
}

func TestGateTreatsUnverifiedAsSignedIn(t *testing.T) {
	state := session.State{Phase: session.PhaseUnverified, User: userWithRole(enums.RoleVendor), Token: "t1"}
	if result := Check(state, []enums.Role{enums.RoleVendor}, "", ""); result.Decision != Allow {
		t.Fatalf("unverified session with matching role should render, got %s", result.Decision)
	}

	// Unverified without a recoverable user cannot prove a role.
	bare := session.State{Phase: session.PhaseUnverified, Token: "t1"}
	if result := Check(bare, nil, "", ""); result.Decision != Redirect {
		t.Fatalf("unverified session without identity should go to login, got %s", result.Decision)
	}
}

func TestRoleHomeTableIsTotal(t *testing.T) {
	for _, role := range enums.Roles() {
		if HomeFor(role) == DefaultLoginPath {
			t.Fatalf("role %s has no home route", role)
		}
	}
}
