// Package guard decides whether a view may render for the current session.
// It is the client-side analogue of auth middleware: every protected entry
// point consults a Rule before proceeding.
package guard

import (
	"github.com/pawpals/pawpals/internal/client/models"
)

// Session is the read-only slice of the session manager a guard needs.
type Session interface {
	IsLoading() bool
	IsAuthenticated() bool
	CurrentUser() *models.User
}

// Rule declares what a route demands. A zero Rule allows everyone.
type Rule struct {
	RequireAuth bool
	// Role additionally restricts the route to one role. Implies RequireAuth.
	Role models.Role
}

// Public, Protected, and RequireRole are the rule constructors routes use.
func Public() Rule                      { return Rule{} }
func Protected() Rule                   { return Rule{RequireAuth: true} }
func RequireRole(role models.Role) Rule { return Rule{RequireAuth: true, Role: role} }

// Verdict classifies a guard decision.
type Verdict int

const (
	// VerdictPending means session initialization has not resolved yet;
	// render nothing (or a loading indicator) and decide later. Never
	// treat it as unauthenticated.
	VerdictPending Verdict = iota
	VerdictAllow
	VerdictRedirect
)

// Decision is the outcome of a check. On a redirect to the login route,
// Resume preserves the originally requested route so a successful login
// can return the user there.
type Decision struct {
	Verdict Verdict
	Target  string
	Resume  string
}

// Routes every guarded navigation can land on.
const (
	RouteLogin     = "login"
	RouteDashboard = "dashboard"
)

// Check evaluates rule for the session against the requested route.
func Check(s Session, route string, rule Rule) Decision {
	if !rule.RequireAuth && rule.Role == "" {
		return Decision{Verdict: VerdictAllow}
	}
	if s.IsLoading() {
		return Decision{Verdict: VerdictPending}
	}
	if !s.IsAuthenticated() {
		return Decision{Verdict: VerdictRedirect, Target: RouteLogin, Resume: route}
	}
	if rule.Role != "" {
		u := s.CurrentUser()
		if u == nil || u.Role != rule.Role {
			// Wrong role goes to a safe default view, not a public page:
			// the user is logged in, just not allowed here.
			return Decision{Verdict: VerdictRedirect, Target: RouteDashboard}
		}
	}
	return Decision{Verdict: VerdictAllow}
}
