package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/pawpals/pawpals/internal/client/api"
	"github.com/pawpals/pawpals/internal/client/models"
	"github.com/pawpals/pawpals/internal/logging"
)

// Status is the session state machine's current state.
type Status string

const (
	StatusInitializing    Status = "initializing"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// Manager is the process-wide session owner. Any component may read it;
// only its own operations mutate it.
type Manager struct {
	api   api.Client
	store TokenStore
	log   logging.Logger

	initOnce sync.Once

	mu     sync.Mutex
	status Status
	user   *models.User
}

// NewManager builds a Manager in the loading state. Call Initialize before
// relying on the accessors for routing decisions.
func NewManager(client api.Client, store TokenStore, log logging.Logger) *Manager {
	return &Manager{
		api:    client,
		store:  store,
		log:    log,
		status: StatusInitializing,
	}
}

// Initialize resolves the persisted token, issuing at most one identity
// check per process lifetime. Callers racing the first invocation observe
// the loading state; none of them triggers a duplicate check. A failed
// check clears the persisted token and lands on unauthenticated; it is
// never retried automatically.
func (m *Manager) Initialize(ctx context.Context) error {
	var err error
	m.initOnce.Do(func() { err = m.initialize(ctx) })
	return err
}

func (m *Manager) initialize(ctx context.Context) error {
	token, err := m.store.Token(ctx)
	if err != nil {
		m.log.Warn(ctx, "token store unreadable, treating as logged out", "error", err)
		m.transition(StatusUnauthenticated, nil)
		return nil
	}
	if token == "" {
		m.transition(StatusUnauthenticated, nil)
		return nil
	}

	user, err := m.api.Me(ctx)
	if err != nil {
		m.log.Info(ctx, "persisted token rejected, clearing it", "error", err)
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			m.log.Warn(ctx, "failed to clear rejected token", "error", clearErr)
		}
		m.transition(StatusUnauthenticated, nil)
		return nil
	}

	m.transition(StatusAuthenticated, user)
	m.log.Info(ctx, "session restored", "user", user.Email, "role", user.Role)
	return nil
}

// Login validates the credentials locally, authenticates against the
// server, and on success persists the token and sets the user atomically.
// On any failure the session state is untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.commitAuth(ctx, res)
}

// Register creates an account. The required profile fields are checked
// client-side; duplicate emails surface as *api.ConflictError from the
// server. A successful registration logs the user straight in.
func (m *Manager) Register(ctx context.Context, data RegisterData) (*models.User, error) {
	if err := validateRegistration(data); err != nil {
		return nil, err
	}

	res, err := m.api.Register(ctx, api.RegisterRequest{
		Email:     data.Email,
		Password:  data.Password,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		UserType:  data.Role,
		Phone:     data.Phone,
	})
	if err != nil {
		return nil, err
	}
	return m.commitAuth(ctx, res)
}

// commitAuth persists the token and installs the user. Both change
// together or not at all.
func (m *Manager) commitAuth(ctx context.Context, res *api.AuthResult) (*models.User, error) {
	if err := m.store.Save(ctx, res.Token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	user := res.User
	m.transition(StatusAuthenticated, &user)
	return &user, nil
}

// Logout clears the persisted token and in-memory user first (the local
// transition never depends on the network), then attempts a best-effort
// server-side session termination whose failure is only logged.
func (m *Manager) Logout(ctx context.Context) error {
	token, err := m.store.Token(ctx)
	if err != nil {
		m.log.Warn(ctx, "token store unreadable during logout", "error", err)
	}

	m.transition(StatusUnauthenticated, nil)
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear token store on logout", "error", err)
	}

	if token != "" {
		if err := m.api.Logout(ctx, token); err != nil {
			m.log.Warn(ctx, "best-effort server logout failed", "error", err)
		}
	}
	return nil
}

// ExpireRemotely is the recovery action for a 401 observed on any
// authenticated request elsewhere in the application: the server no longer
// honors our session, so drop it locally. Wire it into the HTTP client's
// unauthorized handler.
func (m *Manager) ExpireRemotely(ctx context.Context) {
	m.mu.Lock()
	authenticated := m.status == StatusAuthenticated
	m.mu.Unlock()
	if !authenticated {
		return
	}
	m.log.Info(ctx, "session invalidated server-side, logging out")
	_ = m.Logout(ctx)
}

func (m *Manager) transition(status Status, user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
	m.user = user
}

// Status returns the current state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// CurrentUser returns a copy of the authenticated user, or nil.
func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated reports whether the last identity check accepted the
// token and the user is present.
func (m *Manager) IsAuthenticated() bool {
	return m.Status() == StatusAuthenticated
}

// IsLoading is true only before the one-time initialization resolves.
func (m *Manager) IsLoading() bool {
	return m.Status() == StatusInitializing
}
