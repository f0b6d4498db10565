package kernel

import "canteen/internal/pkg/errs"

// Role is the validated role of an authenticated requester, supplied by the
// external identity collaborator. The engine trusts it and never
// re-authenticates.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// RoleFromString validates a role value received from the transport layer.
func RoleFromString(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return Role(s), nil
	default:
		return "", errs.NewValueIsInvalidError("role")
	}
}

// Validate reports whether the role is one of the known values.
func (r Role) Validate() error {
	_, err := RoleFromString(string(r))
	return err
}

// IsElevated reports whether the role may manage orders: read any order,
// list across customers, and advance order status.
func (r Role) IsElevated() bool {
	return r == RoleStaff || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
