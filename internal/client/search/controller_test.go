package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pawpals/pawpals/internal/client/api"
	"github.com/pawpals/pawpals/internal/client/models"
)

// ---- fakes ----

// fakeDirectory implements api.Client for controller tests. Each search
// call consults respond; gates let tests hold individual requests in
// flight to simulate reordered responses.
type fakeDirectory struct {
	mu      sync.Mutex
	calls   []api.SupplierQuery
	respond func(q api.SupplierQuery) (*models.SupplierPage, error)
	gates   map[string]chan struct{} // keyed by service filter
}

func (f *fakeDirectory) SearchSuppliers(ctx context.Context, q api.SupplierQuery) (*models.SupplierPage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	gate := f.gates[q.Service]
	respond := f.respond
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if respond != nil {
		return respond(q)
	}
	return &models.SupplierPage{Limit: q.Limit, Offset: q.Offset}, nil
}

func (f *fakeDirectory) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeDirectory) lastCall() api.SupplierQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func (f *fakeDirectory) Close() error { return nil }
func (f *fakeDirectory) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	return nil, nil
}
func (f *fakeDirectory) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResult, error) {
	return nil, nil
}
func (f *fakeDirectory) Me(ctx context.Context) (*models.User, error)    { return nil, nil }
func (f *fakeDirectory) Logout(ctx context.Context, token string) error  { return nil }
func (f *fakeDirectory) SuggestSuburbs(ctx context.Context, prefix string) ([]string, error) {
	return nil, nil
}

// urlRecorder captures every Replace call.
type urlRecorder struct {
	mu      sync.Mutex
	queries []string
}

func (r *urlRecorder) Replace(query string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, query)
}

func (r *urlRecorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queries) == 0 {
		return ""
	}
	return r.queries[len(r.queries)-1]
}

func newTestController(f *fakeDirectory, urls URLSink) *Controller {
	c := NewController(f, urls, nil, "")
	c.debounce = 25 * time.Millisecond
	return c
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 2*time.Millisecond, msg)
}

// ---- TESTS ----

func TestSetField_NonPagingChange_ResetsOffset(t *testing.T) {
	f := &fakeDirectory{}
	c := newTestController(f, nil)
	ctx := context.Background()

	require.NoError(t, c.SetField(ctx, FieldOffset, "40"))
	require.Equal(t, 40, c.Filters().Offset)

	require.NoError(t, c.SetField(ctx, FieldSuburb, "Newtown"))
	require.Equal(t, 0, c.Filters().Offset, "non-offset change must reset to page zero")
}

func TestSetField_RejectsUnknownLimit(t *testing.T) {
	f := &fakeDirectory{}
	c := newTestController(f, nil)

	err := c.SetField(context.Background(), FieldLimit, "25")
	var verr *api.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "limit")
	require.Equal(t, DefaultLimit, c.Filters().Limit, "rejected value must not change state")
}

func TestSetField_LimitChange_FloorsOffset(t *testing.T) {
	f := &fakeDirectory{}
	c := newTestController(f, nil)
	ctx := context.Background()

	require.NoError(t, c.SetField(ctx, FieldOffset, "40"))
	require.NoError(t, c.SetField(ctx, FieldLimit, "50"))
	require.Equal(t, 0, c.Filters().Offset, "40 is not a page boundary at limit 50")

	require.NoError(t, c.SetField(ctx, FieldOffset, "40"))
	require.NoError(t, c.SetField(ctx, FieldLimit, "10"))
	require.Equal(t, 40, c.Filters().Offset, "40 stays a page boundary at limit 10")
}

func TestPagination_BoundsAndPageCount(t *testing.T) {
	f := &fakeDirectory{
		respond: func(q api.SupplierQuery) (*models.SupplierPage, error) {
			return &models.SupplierPage{Total: 45, Limit: q.Limit, Offset: q.Offset}, nil
		},
	}
	c := newTestController(f, nil)
	ctx := context.Background()

	c.Refresh(ctx)
	waitFor(t, func() bool { return c.Page() != nil }, "initial fetch")

	require.Equal(t, 3, c.Pages())
	require.True(t, c.HasNext())
	require.False(t, c.HasPrev())

	require.True(t, c.Next(ctx))
	require.Equal(t, 20, c.Filters().Offset)
	require.True(t, c.Next(ctx))
	require.Equal(t, 40, c.Filters().Offset)

	waitFor(t, func() bool { return !c.Loading() }, "page fetches settle")
	require.False(t, c.HasNext(), "offset 40 is the last page of 45")
	require.False(t, c.Next(ctx), "next must be a no-op on the last page")

	require.True(t, c.Prev(ctx))
	require.Equal(t, 20, c.Filters().Offset)
	require.True(t, c.Prev(ctx))
	require.Equal(t, 0, c.Filters().Offset)
	require.False(t, c.Prev(ctx), "prev floors at zero")
}

func TestStaleResponse_NeverClobbersNewer(t *testing.T) {
	gateA := make(chan struct{})
	gateAB := make(chan struct{})
	f := &fakeDirectory{
		gates: map[string]chan struct{}{"a": gateA, "ab": gateAB},
		respond: func(q api.SupplierQuery) (*models.SupplierPage, error) {
			return &models.SupplierPage{
				Total: 1,
				Items: []models.SupplierSummary{{BusinessName: q.Service}},
			}, nil
		},
	}
	c := newTestController(f, nil)
	ctx := context.Background()

	require.NoError(t, c.SetField(ctx, FieldService, "a"))
	waitFor(t, func() bool { return f.callCount() == 1 }, "first request issued")

	require.NoError(t, c.SetField(ctx, FieldService, "ab"))
	waitFor(t, func() bool { return f.callCount() == 2 }, "second request issued")

	// The newer request resolves first.
	close(gateAB)
	waitFor(t, func() bool { return c.Page() != nil }, "newer response committed")
	require.Equal(t, "ab", c.Page().Items[0].BusinessName)

	// The older response arrives late and must be discarded.
	close(gateA)
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, "ab", c.Page().Items[0].BusinessName, "stale response must not clobber newer state")
}

func TestDebounce_CoalescesKeystrokes(t *testing.T) {
	f := &fakeDirectory{}
	c := newTestController(f, nil)
	ctx := context.Background()

	require.NoError(t, c.SetField(ctx, FieldQuery, "b"))
	require.NoError(t, c.SetField(ctx, FieldQuery, "bo"))
	require.NoError(t, c.SetField(ctx, FieldQuery, "bon"))

	waitFor(t, func() bool { return f.callCount() >= 1 }, "debounced fetch fires")
	time.Sleep(2 * c.debounce)

	require.Equal(t, 1, f.callCount(), "rapid keystrokes must coalesce into one request")
	require.Equal(t, "bon", f.lastCall().Query)
}

func TestFetchError_KeepsLastGoodPage(t *testing.T) {
	var failing bool
	var mu sync.Mutex
	f := &fakeDirectory{}
	f.respond = func(q api.SupplierQuery) (*models.SupplierPage, error) {
		mu.Lock()
		defer mu.Unlock()
		if failing {
			return nil, &api.NetworkError{Err: context.DeadlineExceeded}
		}
		return &models.SupplierPage{Total: 7, Items: []models.SupplierSummary{{BusinessName: "Happy Paws"}}}, nil
	}
	c := newTestController(f, nil)
	ctx := context.Background()

	c.Refresh(ctx)
	waitFor(t, func() bool { return c.Page() != nil }, "initial fetch")
	require.NoError(t, c.Err())

	mu.Lock()
	failing = true
	mu.Unlock()

	require.NoError(t, c.SetField(ctx, FieldSuburb, "Newtown"))
	waitFor(t, func() bool { return c.Err() != nil }, "fetch error surfaced")

	require.NotNil(t, c.Page(), "stale-while-revalidate: last good page stays visible")
	require.Equal(t, "Happy Paws", c.Page().Items[0].BusinessName)

	// A later successful fetch clears the error.
	mu.Lock()
	failing = false
	mu.Unlock()
	c.Refresh(ctx)
	waitFor(t, func() bool { return c.Err() == nil }, "error cleared on success")
}

func TestEmptyResult_IsNotAnError(t *testing.T) {
	f := &fakeDirectory{
		respond: func(q api.SupplierQuery) (*models.SupplierPage, error) {
			return &models.SupplierPage{Total: 0, Items: []models.SupplierSummary{}}, nil
		},
	}
	c := newTestController(f, nil)

	c.Refresh(context.Background())
	waitFor(t, func() bool { return c.Page() != nil }, "fetch resolves")

	require.NoError(t, c.Err())
	require.Zero(t, c.Page().Total)
	require.Equal(t, 1, c.Pages(), "empty result still counts one page")
}

func TestURLSink_ReceivesMinimalQuery(t *testing.T) {
	f := &fakeDirectory{}
	rec := &urlRecorder{}
	c := newTestController(f, rec)
	ctx := context.Background()

	require.NoError(t, c.SetField(ctx, FieldSuburb, "Newtown"))
	require.Equal(t, "suburb=Newtown", rec.last())

	require.NoError(t, c.SetField(ctx, FieldSuburb, ""))
	require.Equal(t, "", rec.last(), "default values are omitted from the URL")
}

func TestController_MountFromURL(t *testing.T) {
	f := &fakeDirectory{}
	c := NewController(f, nil, nil, "q=dog&suburb=Newtown&limit=10&offset=30")

	got := c.Filters()
	require.Equal(t, "dog", got.Query)
	require.Equal(t, "Newtown", got.Suburb)
	require.Equal(t, 10, got.Limit)
	require.Equal(t, 30, got.Offset)
}
