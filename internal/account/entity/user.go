package entity

import (
	"strings"
	"time"
)

type Role string

const (
	// RoleAnonymous is the role of a request without a session.
	RoleAnonymous Role = ""
	RoleAdmin     Role = "Admin"
	RoleSupplier  Role = "Supplier"
	RoleCustomer  Role = "Customer"
	RoleBiller    Role = "Biller"
)

func (r Role) String() string {
	if r == RoleAnonymous {
		return "Anonymous"
	}
	return string(r)
}

// ParseRole accepts the canonical names case insensitively.
func ParseRole(s string) (Role, bool) {
	for _, r := range []Role{RoleAdmin, RoleSupplier, RoleCustomer, RoleBiller} {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}
	return RoleAnonymous, false
}

type User struct {
	ID           int64
	Email        string
	FullName     string
	Role         Role
	IsActive     bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail is applied before every lookup and insert, so the unique
// index on email is effectively case insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
