package stubapi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pawpals/pawpals/internal/client/api"
	"github.com/pawpals/pawpals/internal/client/models"
	"github.com/pawpals/pawpals/internal/logging"
)

type staticToken string

func (s staticToken) Token(ctx context.Context) (string, error) { return string(s), nil }

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(logging.NewDefault(bytes.NewBuffer(nil)))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func newTestClient(t *testing.T, baseURL string, tokens api.TokenSource) *api.HTTPClient {
	t.Helper()
	c, err := api.NewHTTPClient(baseURL, 5*time.Second, tokens, logging.NewDefault(bytes.NewBuffer(nil)))
	require.NoError(t, err)
	return c
}

func TestLogin_SeededAccount(t *testing.T) {
	_, ts := newTestServer(t)
	c := newTestClient(t, ts.URL, nil)

	res, err := c.Login(context.Background(), "olivia@example.com", "woofwoof")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.Equal(t, "olivia@example.com", res.User.Email)
	require.Equal(t, models.RoleOwner, res.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	_, ts := newTestServer(t)
	c := newTestClient(t, ts.URL, nil)

	_, err := c.Login(context.Background(), "olivia@example.com", "meowmeow")

	var authErr *api.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "invalid email or password", authErr.Reason)
}

func TestRegister_ThenMe(t *testing.T) {
	_, ts := newTestServer(t)
	c := newTestClient(t, ts.URL, nil)

	res, err := c.Register(context.Background(), api.RegisterRequest{
		Email:     "nadia@example.com",
		Password:  "tailwags",
		FirstName: "Nadia",
		LastName:  "Osman",
		UserType:  models.RoleOwner,
	})
	require.NoError(t, err)
	require.Equal(t, "Nadia Osman", res.User.DisplayName)

	authed := newTestClient(t, ts.URL, staticToken(res.Token))
	user, err := authed.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, res.User.ID, user.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, ts := newTestServer(t)
	c := newTestClient(t, ts.URL, nil)

	_, err := c.Register(context.Background(), api.RegisterRequest{
		Email:     "olivia@example.com",
		Password:  "anything",
		FirstName: "Olivia",
		LastName:  "Tran",
		UserType:  models.RoleOwner,
	})

	var conflict *api.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	_, ts := newTestServer(t)
	c := newTestClient(t, ts.URL, nil)

	_, err := c.Register(context.Background(), api.RegisterRequest{
		Email:     "mallory@example.com",
		Password:  "anything",
		FirstName: "Mallory",
		LastName:  "Mole",
		UserType:  models.RoleAdmin,
	})

	var srvErr *api.ServerError
	require.ErrorAs(t, err, &srvErr)
	require.Equal(t, http.StatusBadRequest, srvErr.Status)
}

func TestMe_GarbageToken(t *testing.T) {
	_, ts := newTestServer(t)
	c := newTestClient(t, ts.URL, staticToken("not-a-jwt"))

	_, err := c.Me(context.Background())

	var authErr *api.AuthenticationError
	require.ErrorAs(t, err, &authErr)
}

func TestSearchSuppliers_Filters(t *testing.T) {
	_, ts := newTestServer(t)
	c := newTestClient(t, ts.URL, nil)

	tests := []struct {
		name  string
		query api.SupplierQuery
		check func(t *testing.T, page *models.SupplierPage)
	}{
		{
			name:  "suburb filter",
			query: api.SupplierQuery{Suburb: "Newtown", Limit: 20},
			check: func(t *testing.T, page *models.SupplierPage) {
				require.Equal(t, 4, page.Total)
				for _, item := range page.Items {
					require.Equal(t, "Newtown", item.Suburb)
				}
			},
		},
		{
			name:  "service filter",
			query: api.SupplierQuery{Service: "grooming", Limit: 50},
			check: func(t *testing.T, page *models.SupplierPage) {
				require.Equal(t, 6, page.Total)
			},
		},
		{
			name:  "text matches business name case-insensitively",
			query: api.SupplierQuery{Query: "bondi", Limit: 20},
			check: func(t *testing.T, page *models.SupplierPage) {
				require.Equal(t, 2, page.Total)
			},
		},
		{
			name:  "combined filters",
			query: api.SupplierQuery{Suburb: "Newtown", Service: "grooming", Limit: 10},
			check: func(t *testing.T, page *models.SupplierPage) {
				require.Equal(t, 2, page.Total)
			},
		},
		{
			name:  "no match",
			query: api.SupplierQuery{Query: "axolotl", Limit: 10},
			check: func(t *testing.T, page *models.SupplierPage) {
				require.Equal(t, 0, page.Total)
				require.Empty(t, page.Items)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := c.SearchSuppliers(context.Background(), tt.query)
			require.NoError(t, err)
			tt.check(t, page)
		})
	}
}

func TestSearchSuppliers_Pagination(t *testing.T) {
	_, ts := newTestServer(t)
	c := newTestClient(t, ts.URL, nil)

	first, err := c.SearchSuppliers(context.Background(), api.SupplierQuery{Limit: 10, Offset: 0})
	require.NoError(t, err)
	require.Equal(t, 22, first.Total)
	require.Len(t, first.Items, 10)

	last, err := c.SearchSuppliers(context.Background(), api.SupplierQuery{Limit: 10, Offset: 20})
	require.NoError(t, err)
	require.Len(t, last.Items, 2)

	past, err := c.SearchSuppliers(context.Background(), api.SupplierQuery{Limit: 10, Offset: 100})
	require.NoError(t, err)
	require.Empty(t, past.Items)
	require.Equal(t, 22, past.Total)
}

func TestSearchSuppliers_ExpiredCredentialRejected(t *testing.T) {
	_, ts := newTestServer(t)

	fired := 0
	c := newTestClient(t, ts.URL, staticToken("stale-token"))
	c.SetUnauthorizedHandler(func() { fired++ })

	_, err := c.SearchSuppliers(context.Background(), api.SupplierQuery{Limit: 20})

	var authErr *api.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, 1, fired)
}

func TestLogout_FailureSwitch(t *testing.T) {
	s, ts := newTestServer(t)
	c := newTestClient(t, ts.URL, nil)

	require.NoError(t, c.Logout(context.Background(), "whatever"))

	s.SetFailLogout(true)
	err := c.Logout(context.Background(), "whatever")

	var srvErr *api.ServerError
	require.ErrorAs(t, err, &srvErr)
	require.Equal(t, http.StatusInternalServerError, srvErr.Status)
}

func TestSuggestSuburbs(t *testing.T) {
	_, ts := newTestServer(t)
	c := newTestClient(t, ts.URL, nil)

	got, err := c.SuggestSuburbs(context.Background(), "ne")
	require.NoError(t, err)
	require.Equal(t, []string{"Newtown"}, got)

	empty, err := c.SuggestSuburbs(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestSearchDelay_RespectsContext(t *testing.T) {
	s, ts := newTestServer(t)
	s.SetSearchDelay(2 * time.Second)
	c := newTestClient(t, ts.URL, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.SearchSuppliers(ctx, api.SupplierQuery{Limit: 20})

	var netErr *api.NetworkError
	require.ErrorAs(t, err, &netErr)
	require.ErrorIs(t, netErr.Err, context.DeadlineExceeded)
}

func TestRateLimit_AuthEndpoints(t *testing.T) {
	s := NewServer(logging.NewDefault(bytes.NewBuffer(nil)))
	s.RPS = 1
	s.Burst = 2
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	throttled := false
	for i := 0; i < 5; i++ {
		resp, err := http.Post(ts.URL+"/api/auth/login", "application/json", bytes.NewBufferString(`{"email":"x","password":"y"}`))
		require.NoError(t, err)
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			throttled = true
		}
	}
	require.True(t, throttled)
}
