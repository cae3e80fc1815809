package domain

import "time"

// UserRole enumerates supported roles.
type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

// User represents a registered account within the portal. Records are created
// once via registration or the admin seed and are never updated or deleted.
// The password is stored as given; the backing store is a local demo store,
// not a credential vault.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     UserRole  `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// IsAdmin reports whether the user holds the distinguished admin role.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
