package session

import (
	"net/mail"

	"github.com/pawpals/pawpals/internal/client/api"
	"github.com/pawpals/pawpals/internal/client/models"
)

// RegisterData carries the registration form fields validated client-side
// before submission. The server remains the authority on uniqueness.
type RegisterData struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      models.Role
	Phone     string
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func validateCredentials(email, password string) error {
	fields := map[string]string{}
	switch {
	case email == "":
		fields["email"] = "required"
	case !validEmail(email):
		fields["email"] = "must be a plausible email address"
	}
	if password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		return &api.ValidationError{Fields: fields}
	}
	return nil
}

func validateRegistration(d RegisterData) error {
	fields := map[string]string{}
	switch {
	case d.Email == "":
		fields["email"] = "required"
	case !validEmail(d.Email):
		fields["email"] = "must be a plausible email address"
	}
	if d.Password == "" {
		fields["password"] = "required"
	}
	if d.FirstName == "" {
		fields["firstName"] = "required"
	}
	if d.LastName == "" {
		fields["lastName"] = "required"
	}
	if !d.Role.Valid() {
		fields["userType"] = "must be one of OWNER, SUPPLIER, ADMIN"
	}
	if len(fields) > 0 {
		return &api.ValidationError{Fields: fields}
	}
	return nil
}
