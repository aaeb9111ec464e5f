// Package gate decides whether a protected view may render for the current
// session. It is a pure function of session state; callers re-run it on every
// navigation.
package gate

import (
	"github.com/servicepro/servicepro-client/pkg/enums"
	"github.com/servicepro/servicepro-client/pkg/session"
)

// Decision is the gate's verdict.
type Decision int

const (
	// Wait means session resolution is still pending: render a loading
	// indicator, neither the protected view nor a redirect.
	Wait Decision = iota
	// Allow means the protected view may render.
	Allow
	// Redirect means navigation must move to Result.Location first.
	Redirect
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Result carries the verdict plus the redirect target and, for login
// redirects, the originally requested location for post-login return.
type Result struct {
	Decision Decision
	Location string
	From     string
}

// DefaultLoginPath receives anonymous navigation attempts unless the caller
// overrides it.
const DefaultLoginPath = "/login"

// roleHomes maps each role to its dashboard. Wrong-role navigation lands on
// the user's own home, not on login.
var roleHomes = map[enums.Role]string{
	enums.RoleAdmin:    "/admin",
	enums.RoleVendor:   "/vendor",
	enums.RoleCustomer: "/customer/bookings",
}

// HomeFor returns the dashboard route for a role.
func HomeFor(role enums.Role) string {
	if home, ok := roleHomes[role]; ok {
		return home
	}
	return DefaultLoginPath
}

// Check evaluates the gate for a navigation attempt. allowed is the set of
// roles permitted to see the view; empty means any signed-in user. redirectTo
// overrides the login path; from is the originally requested location.
//
// An unverified session is treated like an authenticated one: the last-known
// identity keeps its access until a fresh identity check settles the matter.
func Check(state session.State, allowed []enums.Role, redirectTo, from string) Result {
	if state.Phase == session.PhaseBooting {
		return Result{Decision: Wait}
	}

	if !state.SignedIn() {
		target := redirectTo
		if target == "" {
			target = DefaultLoginPath
		}
		return Result{Decision: Redirect, Location: target, From: from}
	}

	if len(allowed) > 0 {
		role := state.User.Role
		for _, candidate := range allowed {
			if candidate == role {
				return Result{Decision: Allow}
			}
		}
		return Result{Decision: Redirect, Location: HomeFor(role)}
	}

	return Result{Decision: Allow}
}
