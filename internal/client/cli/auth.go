package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pawpals/pawpals/internal/client/api"
	"github.com/pawpals/pawpals/internal/client/guard"
	"github.com/pawpals/pawpals/internal/client/models"
	"github.com/pawpals/pawpals/internal/client/session"
	"github.com/pawpals/pawpals/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. On success the user is
// taken back to the route that triggered the login redirect, or to the
// dashboard when the login was started directly.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	user, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		a.printOperationError(err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.DisplayName)

	next := a.resume
	a.resume = ""
	if next == "" || next == guard.RouteLogin {
		next = guard.RouteDashboard
	}
	a.Open(ctx, next)
	return nil
}

// Register walks through the sign-up prompts and, on success, leaves the
// user authenticated on the dashboard.
func (a *App) Register(ctx context.Context) error {
	data := session.RegisterData{}

	var err error
	if data.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)
	data.Password = string(password)

	if data.FirstName, err = getSimpleText(a.reader, "First name", a.out); err != nil {
		return err
	}
	if data.LastName, err = getSimpleText(a.reader, "Last name", a.out); err != nil {
		return err
	}

	role, err := getSimpleText(a.reader, "Account type (owner/supplier)", a.out)
	if err != nil {
		return err
	}
	data.Role = models.Role(strings.ToUpper(strings.TrimSpace(role)))

	if data.Phone, err = getSimpleText(a.reader, "Phone (optional)", a.out); err != nil {
		return err
	}

	user, err := a.session.Register(ctx, data)
	if err != nil {
		a.printOperationError(err)
		return err
	}

	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", user.DisplayName)
	a.Open(ctx, guard.RouteDashboard)
	return nil
}

// Logout ends the session. It always succeeds locally; a failing server
// call is logged by the session manager and not surfaced here.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out.")
	a.Open(ctx, routeSearch)
	return nil
}

// WhoAmI prints the current session state.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		printlnFn("Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", u.DisplayName, u.Email, u.Role)
	return nil
}

// printOperationError renders an error from login or registration.
// Validation problems are shown per field; everything else gets the most
// specific human-readable reason available.
func (a *App) printOperationError(err error) {
	var (
		valErr  *api.ValidationError
		authErr *api.AuthenticationError
		conErr  *api.ConflictError
		netErr  *api.NetworkError
	)

	switch {
	case errors.As(err, &valErr):
		fields := make([]string, 0, len(valErr.Fields))
		for f := range valErr.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(a.out, "  %s: %s\n", f, valErr.Fields[f])
		}
	case errors.As(err, &authErr):
		reason := authErr.Reason
		if reason == "" {
			reason = "invalid credentials"
		}
		printlnFn("Login failed:", reason)
	case errors.As(err, &conErr):
		reason := conErr.Reason
		if reason == "" {
			reason = "already exists"
		}
		printlnFn("Registration failed:", reason)
	case errors.As(err, &netErr):
		printlnFn("Cannot reach the server; check your connection and try again.")
	default:
		printlnFn("Request failed:", err.Error())
	}
}
