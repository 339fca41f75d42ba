package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pawpals/pawpals/internal/client/api"
	"github.com/pawpals/pawpals/internal/client/places"
	"github.com/pawpals/pawpals/internal/client/search"
)

// settleTimeout bounds how long the view waits for an in-flight fetch
// before drawing whatever state the controller has.
const settleTimeout = 5 * time.Second

// mountSearch builds a fresh controller from a query string, the same way
// a page load reconstructs filter state from the URL.
func (a *App) mountSearch(ctx context.Context, query string) {
	a.search = search.NewController(a.client, a.urls, a.log, query)
	a.search.Refresh(ctx)
	a.waitSettled()
}

// Search runs the supplier-search sub-loop until the user types 'back'.
func (a *App) Search(ctx context.Context, scanner *bufio.Scanner) error {
	if landed := a.Open(ctx, routeSearch); landed != routeSearch {
		return nil
	}

	for {
		fmt.Fprintf(a.out, "search %s> ", a.urls.Current())
		if !scanner.Scan() {
			return nil
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], strings.Join(parts[1:], " ")

		switch cmd {
		case "help":
			printlnFn("Commands: q <text>, suburb <name>, service <name>, limit <10|20|50>, next, prev, show, url, open <query>, refresh, back")

		case "q", "suburb", "service", "limit", "offset":
			if cmd == "suburb" && arg != "" {
				arg = a.resolveSuburb(ctx, arg)
			}
			if err := a.search.SetField(ctx, search.Field(cmd), arg); err != nil {
				a.printSearchError(err)
				continue
			}
			a.waitSettled()
			a.printResults()

		case "next":
			if !a.search.Next(ctx) {
				printlnFn("Already on the last page.")
				continue
			}
			a.waitSettled()
			a.printResults()

		case "prev":
			if !a.search.Prev(ctx) {
				printlnFn("Already on the first page.")
				continue
			}
			a.waitSettled()
			a.printResults()

		case "show":
			a.printResults()

		case "url":
			printlnFn("?" + a.urls.Current())

		case "open":
			a.mountSearch(ctx, strings.TrimPrefix(arg, "?"))
			a.printResults()

		case "refresh":
			a.search.Refresh(ctx)
			a.waitSettled()
			a.printResults()

		case "back", "exit":
			return nil

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// resolveSuburb asks the suggestion service to complete the typed prefix.
// A single match is taken as the intended suburb; otherwise the input is
// used as typed. When suggestions are unavailable, typing still works.
func (a *App) resolveSuburb(ctx context.Context, input string) string {
	suggestions, err := a.places.Suggest(ctx, input)
	if err != nil {
		if !errors.Is(err, places.ErrUnavailable) {
			a.log.Warn(ctx, "suburb suggestion failed", "error", err)
		}
		return input
	}

	switch len(suggestions) {
	case 0:
		return input
	case 1:
		if !strings.EqualFold(suggestions[0], input) {
			printlnFn("Using suburb:", suggestions[0])
		}
		return suggestions[0]
	default:
		printlnFn("Matching suburbs:", strings.Join(suggestions, ", "))
		return input
	}
}

// waitSettled blocks until the controller's debounce window has passed and
// no fetch is in flight, or the settle timeout expires.
func (a *App) waitSettled() {
	deadline := time.Now().Add(settleTimeout)
	time.Sleep(a.search.DebounceWindow() + 20*time.Millisecond)
	for time.Now().Before(deadline) {
		if !a.search.Loading() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func (a *App) printResults() {
	if a.search == nil {
		return
	}

	if err := a.search.Err(); err != nil {
		a.printSearchError(err)
	}

	page := a.search.Page()
	if page == nil {
		printlnFn("No results yet.")
		return
	}

	f := a.search.Filters()
	fmt.Fprintf(a.out, "%d supplier(s), page %d of %d\n", page.Total, f.Offset/f.Limit+1, a.search.Pages())
	for _, item := range page.Items {
		services := ""
		if len(item.Services) > 0 {
			services = "  [" + strings.Join(item.Services, ", ") + "]"
		}
		fmt.Fprintf(a.out, "  %-28s %-14s %s%s\n", item.BusinessName, item.Suburb, item.WebsiteURL, services)
	}
}

func (a *App) printSearchError(err error) {
	var (
		valErr *api.ValidationError
		netErr *api.NetworkError
	)

	switch {
	case errors.As(err, &valErr):
		for _, msg := range valErr.Fields {
			printlnFn(" ", msg)
		}
	case errors.As(err, &netErr):
		printlnFn("Results may be out of date: cannot reach the server.")
	default:
		printlnFn("Results may be out of date:", err.Error())
	}
}
