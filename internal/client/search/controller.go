package search

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/pawpals/pawpals/internal/client/api"
	"github.com/pawpals/pawpals/internal/client/models"
	"github.com/pawpals/pawpals/internal/logging"
)

// DebounceDelay is how long free-text keystrokes coalesce before a fetch.
const DebounceDelay = 300 * time.Millisecond

// URLSink receives the serialized filter state after every accepted change.
// Replace overwrites the current location instead of growing history.
type URLSink interface {
	Replace(query string)
}

// Field names one mutable filter field, matching its query parameter.
type Field string

const (
	FieldQuery   Field = "q"
	FieldSuburb  Field = "suburb"
	FieldService Field = "service"
	FieldLimit   Field = "limit"
	FieldOffset  Field = "offset"
)

// Controller owns the directory view's filter state and drives fetches
// against the API. One instance per mounted view.
//
// Consistency rules:
//   - any non-offset field change resets the offset to page zero;
//   - free-text changes are debounced, everything else fetches immediately;
//   - only the most recently issued request may commit its result
//     (a generation counter discards out-of-order responses);
//   - a failed fetch keeps the last good page visible and exposes the
//     error separately.
type Controller struct {
	api  api.Client
	urls URLSink
	log  logging.Logger

	debounce time.Duration

	mu       sync.Mutex
	filters  Filters
	page     *models.SupplierPage
	fetchErr error
	loading  bool
	gen      uint64
	timer    *time.Timer
	onUpdate func()
}

// NewController builds a controller whose initial filters come from the
// given URL query string (the durable record of view state across reloads).
// No fetch is issued until Refresh or the first field change.
func NewController(client api.Client, urls URLSink, log logging.Logger, initialQuery string) *Controller {
	return &Controller{
		api:      client,
		urls:     urls,
		log:      log,
		debounce: DebounceDelay,
		filters:  ParseQueryString(initialQuery),
	}
}

// SetOnUpdate registers a callback invoked after every committed result or
// fetch error. The callback runs outside the controller's lock.
func (c *Controller) SetOnUpdate(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = fn
}

// Filters returns a copy of the current filter tuple.
func (c *Controller) Filters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// Page returns the last successfully fetched page, or nil before the first
// fetch resolves.
func (c *Controller) Page() *models.SupplierPage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Err returns the error of the most recent fetch, or nil if it succeeded.
// A non-nil Err with a non-nil Page means stale results are on display.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchErr
}

// Loading reports whether a fetch is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// DebounceWindow returns the delay applied before a free-text change
// triggers a fetch. Fixed after construction.
func (c *Controller) DebounceWindow() time.Duration {
	return c.debounce
}

// URL returns the current filter state serialized for sharing.
func (c *Controller) URL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return EncodeQueryString(c.filters)
}

// SetField updates one filter field from its string form. Free-text updates
// are debounced; every other accepted change fetches immediately. An
// invalid limit or offset is a usage error reported as *api.ValidationError
// with no state change.
func (c *Controller) SetField(ctx context.Context, name Field, value string) error {
	switch name {
	case FieldQuery:
		c.applyChange(ctx, true, func(f *Filters) { f.Query = value })
	case FieldSuburb:
		c.applyChange(ctx, false, func(f *Filters) { f.Suburb = value })
	case FieldService:
		c.applyChange(ctx, false, func(f *Filters) { f.Service = value })
	case FieldLimit:
		n, err := strconv.Atoi(value)
		if err != nil || !ValidLimit(n) {
			return &api.ValidationError{Fields: map[string]string{"limit": "must be one of 10, 20, 50"}}
		}
		c.applyChange(ctx, false, func(f *Filters) {
			f.Limit = n
			f.Offset = floorToPage(f.Offset, n)
		})
	case FieldOffset:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return &api.ValidationError{Fields: map[string]string{"offset": "must be a non-negative integer"}}
		}
		c.applyChange(ctx, false, func(f *Filters) { f.Offset = floorToPage(n, f.Limit) })
	default:
		return &api.ValidationError{Fields: map[string]string{string(name): "unknown filter field"}}
	}
	return nil
}

// Refresh issues a fetch for the current filter tuple immediately,
// bypassing the debounce. Used on view mount and for user-driven retries.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	gen, filters := c.beginFetchLocked()
	c.mu.Unlock()
	go c.runFetch(ctx, gen, filters)
}

// Next advances to the following page while one exists. Reports whether
// the offset moved.
func (c *Controller) Next(ctx context.Context) bool {
	c.mu.Lock()
	if c.page == nil || c.filters.Offset+c.filters.Limit >= c.page.Total {
		c.mu.Unlock()
		return false
	}
	c.filters.Offset += c.filters.Limit
	gen, filters := c.beginFetchLocked()
	c.mu.Unlock()

	c.syncURL(filters)
	go c.runFetch(ctx, gen, filters)
	return true
}

// Prev moves to the preceding page, floored at the first. Reports whether
// the offset moved.
func (c *Controller) Prev(ctx context.Context) bool {
	c.mu.Lock()
	if c.filters.Offset == 0 {
		c.mu.Unlock()
		return false
	}
	c.filters.Offset -= c.filters.Limit
	if c.filters.Offset < 0 {
		c.filters.Offset = 0
	}
	gen, filters := c.beginFetchLocked()
	c.mu.Unlock()

	c.syncURL(filters)
	go c.runFetch(ctx, gen, filters)
	return true
}

// HasNext reports whether a further page exists for the last known total.
func (c *Controller) HasNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page != nil && c.filters.Offset+c.filters.Limit < c.page.Total
}

// HasPrev reports whether the view is past the first page.
func (c *Controller) HasPrev() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters.Offset > 0
}

// Pages returns the page count for the last known total, minimum 1.
func (c *Controller) Pages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	if c.page != nil {
		total = c.page.Total
	}
	return PageCount(total, c.filters.Limit)
}

// applyChange mutates the filters, maintains the offset-reset invariant,
// mirrors the new state to the URL, and schedules the fetch.
func (c *Controller) applyChange(ctx context.Context, debounced bool, mutate func(*Filters)) {
	c.mu.Lock()
	before := c.filters
	mutate(&c.filters)
	// Offset follows any other filter back to page zero, so a narrowed
	// search never lands on an out-of-range page.
	if changedNonPaging(before, c.filters) {
		c.filters.Offset = 0
	}
	filters := c.filters

	if debounced {
		if c.timer != nil {
			c.timer.Stop()
		}
		// One timer, restarted on every keystroke; stacked timers would
		// issue one fetch per key.
		c.timer = time.AfterFunc(c.debounce, func() {
			c.mu.Lock()
			gen, latest := c.beginFetchLocked()
			c.mu.Unlock()
			c.runFetch(ctx, gen, latest)
		})
		c.mu.Unlock()
		c.syncURL(filters)
		return
	}

	gen, filters := c.beginFetchLocked()
	c.mu.Unlock()

	c.syncURL(filters)
	go c.runFetch(ctx, gen, filters)
}

// beginFetchLocked starts a new request generation for the current filters.
// Callers must hold c.mu.
func (c *Controller) beginFetchLocked() (uint64, Filters) {
	c.gen++
	c.loading = true
	return c.gen, c.filters
}

func (c *Controller) runFetch(ctx context.Context, gen uint64, f Filters) {
	page, err := c.api.SearchSuppliers(ctx, api.SupplierQuery{
		Query:   f.Query,
		Suburb:  f.Suburb,
		Service: f.Service,
		Limit:   f.Limit,
		Offset:  f.Offset,
	})
	c.commit(ctx, gen, page, err)
}

// commit applies a fetch outcome unless a newer request generation has
// started since this one was issued; late responses for stale filter
// tuples are discarded regardless of arrival order.
func (c *Controller) commit(ctx context.Context, gen uint64, page *models.SupplierPage, err error) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		if c.log != nil {
			c.log.Debug(ctx, "discarding stale search response", "generation", gen)
		}
		return
	}
	c.loading = false
	if err != nil {
		// Keep the last good page on display; the view shows the error
		// indicator alongside it.
		c.fetchErr = err
	} else {
		c.fetchErr = nil
		c.page = page
	}
	fn := c.onUpdate
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (c *Controller) syncURL(f Filters) {
	if c.urls != nil {
		c.urls.Replace(EncodeQueryString(f))
	}
}

func changedNonPaging(a, b Filters) bool {
	return a.Query != b.Query || a.Suburb != b.Suburb || a.Service != b.Service
}
