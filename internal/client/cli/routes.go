package cli

import (
	"context"
	"fmt"

	"github.com/pawpals/pawpals/internal/client/guard"
	"github.com/pawpals/pawpals/internal/client/models"
)

const (
	routeSearch = "search"
	routeAdmin  = "admin"
)

// routeRules maps every navigable route to its access rule.
var routeRules = map[string]guard.Rule{
	guard.RouteLogin:     guard.Public(),
	routeSearch:          guard.Public(),
	guard.RouteDashboard: guard.Protected(),
	routeAdmin:           guard.RequireRole(models.RoleAdmin),
}

// Open navigates to the named route through the guard and returns the route
// actually landed on. A redirect to login remembers the requested route so
// the next successful login can resume it.
func (a *App) Open(ctx context.Context, route string) string {
	rule, ok := routeRules[route]
	if !ok {
		printlnFn("Unknown route:", route)
		return a.route
	}

	d := guard.Check(a.session, route, rule)
	switch d.Verdict {
	case guard.VerdictPending:
		printlnFn("Session is still being restored, try again in a moment.")
		return a.route
	case guard.VerdictRedirect:
		if d.Target == guard.RouteLogin {
			a.resume = d.Resume
			printlnFn("Please log in to continue (type 'login').")
		} else {
			printlnFn("You do not have access to that view.")
		}
		a.route = d.Target
		a.render(ctx, d.Target)
		return d.Target
	}

	a.route = route
	a.render(ctx, route)
	return route
}

func (a *App) render(ctx context.Context, route string) {
	switch route {
	case guard.RouteDashboard:
		a.renderDashboard()
	case routeAdmin:
		a.renderAdmin()
	case routeSearch:
		a.renderSearch(ctx)
	case guard.RouteLogin:
		// Nothing to draw; the login command drives the prompts.
	}
}

func (a *App) renderDashboard() {
	u := a.session.CurrentUser()
	if u == nil {
		return
	}
	fmt.Fprintf(a.out, "=== Dashboard ===\n%s (%s)\n", u.DisplayName, u.Role)
	if u.VerifiedAt == nil {
		printlnFn("Your email is not verified yet.")
	}
}

func (a *App) renderAdmin() {
	printlnFn("=== Admin console ===")
	printlnFn("Commands are the same as everywhere; admin-only views go here.")
}

// renderSearch shows the current result page, mounting the controller on
// first use with whatever query string is in the address bar.
func (a *App) renderSearch(ctx context.Context) {
	if a.search == nil {
		a.mountSearch(ctx, a.urls.Current())
	}
	a.printResults()
}
