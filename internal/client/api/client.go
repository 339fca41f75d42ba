package api

import (
	"context"

	"github.com/pawpals/pawpals/internal/client/models"
)

// RegisterRequest carries the fields of the registration form. Client-side
// validation happens in the session layer before this is ever sent.
type RegisterRequest struct {
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	UserType  models.Role `json:"userType"`
	Phone     string      `json:"phone,omitempty"`
}

// AuthResult is the payload of a successful login or registration:
// the bearer credential plus the identity it belongs to. They travel
// together so callers can commit both atomically.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// SupplierQuery is the effective filter tuple for one directory fetch.
type SupplierQuery struct {
	Query   string
	Suburb  string
	Service string
	Limit   int
	Offset  int
}

// TokenSource yields the current bearer credential, or "" when absent.
// The durable token store satisfies this interface.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is the API contract consumed by the session and search layers.
type Client interface {
	Close() error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Me(ctx context.Context) (*models.User, error)
	// Logout is best-effort server-side session termination. The token is
	// passed explicitly because the local store is already cleared by the
	// time this call fires.
	Logout(ctx context.Context, token string) error
	SearchSuppliers(ctx context.Context, q SupplierQuery) (*models.SupplierPage, error)
	SuggestSuburbs(ctx context.Context, prefix string) ([]string, error)
}
