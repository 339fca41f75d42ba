package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/pawpals/pawpals/internal/client/api"
	"github.com/pawpals/pawpals/internal/client/config"
	"github.com/pawpals/pawpals/internal/client/guard"
	"github.com/pawpals/pawpals/internal/client/places"
	"github.com/pawpals/pawpals/internal/client/search"
	"github.com/pawpals/pawpals/internal/client/session"
	"github.com/pawpals/pawpals/internal/client/storage"
	"github.com/pawpals/pawpals/internal/logging"
)

// App owns the wiring of the interactive client: durable token store,
// REST client, session manager, route guard state, and the views.
type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	client  *api.HTTPClient
	session *session.Manager
	places  *places.Suggester
	urls    *addressBar
	search  *search.Controller

	reader *bufio.Reader
	out    io.Writer

	// route is the view currently shown; resume remembers where a login
	// redirect came from so a successful login can return there.
	route  string
	resume string
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, cfg.TokenDBPath)
	if err != nil {
		return nil, err
	}

	store := session.NewDurableTokenStore(db)

	client, err := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, store, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	a := &App{
		config:  cfg,
		log:     log,
		db:      db,
		client:  client,
		session: session.NewManager(client, store, log),
		places:  places.NewSuggester(client, cfg.SuggestTimeout, log),
		urls:    &addressBar{},
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}

	// A 401 on an authenticated request means the server no longer honors
	// the stored token; drop the session instead of surfacing a raw error.
	client.SetUnauthorizedHandler(func() {
		a.session.ExpireRemotely(context.Background())
	})

	return a, nil
}

// Close releases the local database and idle connections.
func (a *App) Close() error {
	a.client.Close()
	return a.db.Close()
}

// Run resolves the persisted session, lands on the initial route, and
// hands control to the REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.session.Initialize(ctx); err != nil {
		a.log.Warn(ctx, "session initialization failed", "error", err)
	}

	printlnFn("Welcome to PawPals (type 'help' for commands)")
	a.Open(ctx, a.initialRoute())

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
	return nil
}

// initialRoute is the landing view: the dashboard for a restored session,
// the public supplier search otherwise.
func (a *App) initialRoute() string {
	if a.session.IsAuthenticated() {
		return guard.RouteDashboard
	}
	return routeSearch
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) status() string {
	s := ""
	if u := a.session.CurrentUser(); u != nil {
		s = u.Email + " "
	}
	s += a.route
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}
