package enums

import "fmt"

// Role is an account role as the client presents it. The backend names the
// customer role "user"; the wire mapping below translates in both directions.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleVendor   Role = "vendor"
	RoleCustomer Role = "customer"
)

// wireRoleCustomer is the backend's name for RoleCustomer.
const wireRoleCustomer = "user"

var validRoles = []Role{
	RoleAdmin,
	RoleVendor,
	RoleCustomer,
}

// Roles returns every known role.
func Roles() []Role {
	out := make([]Role, len(validRoles))
	copy(out, validRoles)
	return out
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// Wire returns the backend spelling of the role.
func (r Role) Wire() string {
	if r == RoleCustomer {
		return wireRoleCustomer
	}
	return string(r)
}

// ParseRole converts raw client-side input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}

// RoleFromWire converts the backend spelling into a Role. The wire vocabulary
// is closed: unknown values, including the client-side "customer" spelling,
// are rejected rather than passed through.
func RoleFromWire(value string) (Role, error) {
	if value == wireRoleCustomer {
		return RoleCustomer, nil
	}
	for _, candidate := range validRoles {
		if candidate != RoleCustomer && string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wire role %q", value)
}
