// Package search keeps three things consistent for the supplier directory
// view: the filter fields, the shareable URL query, and the fetched result
// page. It coalesces keystrokes and discards stale responses along the way.
package search

import (
	"net/url"
	"strconv"
)

// DefaultLimit is the page size when the URL does not specify one.
const DefaultLimit = 20

// allowedLimits is the closed page-size enum. Anything else is a usage error.
var allowedLimits = map[int]struct{}{10: {}, 20: {}, 50: {}}

// ValidLimit reports whether n is an allowed page size.
func ValidLimit(n int) bool {
	_, ok := allowedLimits[n]
	return ok
}

// Filters is the effective filter tuple of the directory view. Service is
// the supplier category filter (the `service` query parameter).
type Filters struct {
	Query   string
	Suburb  string
	Service string
	Limit   int
	Offset  int
}

// DefaultFilters returns the view's initial state: everything empty,
// default page size, first page.
func DefaultFilters() Filters {
	return Filters{Limit: DefaultLimit}
}

// EncodeQuery serializes f to URL query values, omitting any field equal to
// its default so shared links stay minimal.
func EncodeQuery(f Filters) url.Values {
	v := url.Values{}
	if f.Query != "" {
		v.Set("q", f.Query)
	}
	if f.Suburb != "" {
		v.Set("suburb", f.Suburb)
	}
	if f.Service != "" {
		v.Set("service", f.Service)
	}
	if f.Limit != DefaultLimit {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset != 0 {
		v.Set("offset", strconv.Itoa(f.Offset))
	}
	return v
}

// EncodeQueryString is EncodeQuery rendered as a raw query string.
func EncodeQueryString(f Filters) string {
	return EncodeQuery(f).Encode()
}

// ParseQuery reconstructs Filters from URL query values. Missing or invalid
// parameters fall back to their defaults; the offset is floored to the
// nearest page boundary so a hand-edited URL cannot break the paging
// invariant.
func ParseQuery(v url.Values) Filters {
	f := DefaultFilters()
	f.Query = v.Get("q")
	f.Suburb = v.Get("suburb")
	f.Service = v.Get("service")

	if n, err := strconv.Atoi(v.Get("limit")); err == nil && ValidLimit(n) {
		f.Limit = n
	}
	if n, err := strconv.Atoi(v.Get("offset")); err == nil && n > 0 {
		f.Offset = floorToPage(n, f.Limit)
	}
	return f
}

// ParseQueryString is ParseQuery over a raw query string. A malformed
// string yields the defaults.
func ParseQueryString(raw string) Filters {
	v, err := url.ParseQuery(raw)
	if err != nil {
		return DefaultFilters()
	}
	return ParseQuery(v)
}

// PageCount computes the total number of pages: ceil(total/limit), but at
// least 1 even for an empty result set.
func PageCount(total, limit int) int {
	if total <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}

func floorToPage(offset, limit int) int {
	if offset < 0 {
		return 0
	}
	return (offset / limit) * limit
}
