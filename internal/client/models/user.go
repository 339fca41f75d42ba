// Package models defines the records exchanged with the PawPals marketplace API.
package models

import "time"

// Role classifies a marketplace account.
type Role string

const (
	RoleOwner    Role = "OWNER"
	RoleSupplier Role = "SUPPLIER"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleSupplier, RoleAdmin:
		return true
	}
	return false
}

// User is the authenticated identity returned by the auth endpoints.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName"`
	Role        Role       `json:"role"`
	VerifiedAt  *time.Time `json:"verifiedAt,omitempty"`
}
