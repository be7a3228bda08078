package models

// ACL markers stored on employees. RoleAdmin is the privilege marker required
// by administrative endpoints.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// ValidRole reports whether acl is a known role marker.
func ValidRole(acl string) bool {
	return acl == RoleAdmin || acl == RoleStaff
}
