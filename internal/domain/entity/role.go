package entity

// Role is the authorization role carried by a user account and its session.
type Role string

// Role constants
const (
	RoleAdmin  Role = "Admin"
	RoleDoctor Role = "Doctor"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleDoctor
}
