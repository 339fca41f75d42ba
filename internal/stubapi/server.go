// Package stubapi is an in-process rendition of the PawPals marketplace
// backend: the five endpoints the client consumes plus suburb autocomplete,
// backed by fixture data. It exists so the client, including its failure
// paths, can be exercised end to end without a real deployment.
package stubapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawpals/pawpals/internal/client/api"
	"github.com/pawpals/pawpals/internal/client/models"
	"github.com/pawpals/pawpals/internal/logging"
)

const defaultSecret = "pawpals-stub-secret"

type account struct {
	user         models.User
	passwordHash []byte
}

// Server holds the fixture state behind the stub endpoints. Zero requests
// share state except through the guarded maps, so a single Server is safe
// to hit from concurrent clients.
type Server struct {
	secret string
	log    logging.Logger

	// Rate limit applied to the auth endpoints. Adjustable before Handler
	// is called; the defaults are generous enough for tests.
	RPS   float64
	Burst int

	mu          sync.Mutex
	accounts    map[string]*account // keyed by lower-cased email
	suppliers   []models.SupplierSummary
	suburbs     []string
	failLogout  bool
	searchDelay time.Duration
}

func NewServer(log logging.Logger) *Server {
	s := &Server{
		secret:   defaultSecret,
		log:      log,
		RPS:      50,
		Burst:    100,
		accounts: make(map[string]*account),
		suburbs:  seedSuburbs(),
	}
	for _, seed := range seedUsers() {
		s.accounts[strings.ToLower(seed.user.Email)] = &account{
			user:         seed.user,
			passwordHash: hashPassword(seed.password),
		}
	}
	s.suppliers = seedSuppliers()
	return s
}

// SetFailLogout makes POST /api/logout answer 500 while enabled.
func (s *Server) SetFailLogout(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failLogout = fail
}

// SetSearchDelay delays every GET /api/suppliers response by d. Used to
// simulate a slow backend so reordered-response handling can be observed.
func (s *Server) SetSearchDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchDelay = d
}

// Handler assembles the route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(rateLimit(s.RPS, s.Burst))
		r.Post("/api/auth/login", s.handleLogin)
		r.Post("/api/auth/register", s.handleRegister)
	})

	r.Get("/api/auth/me", s.handleMe)
	r.Post("/api/logout", s.handleLogout)
	r.Get("/api/suppliers", s.handleSearchSuppliers)
	r.Get("/api/suburbs", s.handleSuggestSuburbs)

	return r
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	acc := s.accounts[strings.ToLower(req.Email)]
	s.mu.Unlock()

	if acc == nil || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	s.issueAuth(w, r, acc.user)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		writeError(w, http.StatusBadRequest, "email, password, firstName and lastName are required")
		return
	}
	if !req.UserType.Valid() || req.UserType == models.RoleAdmin {
		writeError(w, http.StatusBadRequest, "userType must be OWNER or SUPPLIER")
		return
	}

	key := strings.ToLower(req.Email)

	s.mu.Lock()
	if _, exists := s.accounts[key]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	user := models.User{
		ID:          uuid.NewString(),
		Email:       req.Email,
		DisplayName: strings.TrimSpace(req.FirstName + " " + req.LastName),
		Role:        req.UserType,
	}
	s.accounts[key] = &account{user: user, passwordHash: hashPassword(req.Password)}
	s.mu.Unlock()

	s.issueAuth(w, r, user)
}

func (s *Server) issueAuth(w http.ResponseWriter, r *http.Request, user models.User) {
	token, err := mintToken(user.Email, s.secret)
	if err != nil {
		s.log.Error(r.Context(), "token mint failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, api.AuthResult{Token: token, User: user})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	acc, ok := s.authenticate(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	writeJSON(w, http.StatusOK, acc.user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	fail := s.failLogout
	s.mu.Unlock()

	if fail {
		writeError(w, http.StatusInternalServerError, "logout backend unavailable")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearchSuppliers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delay := s.searchDelay
	s.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	// The directory is public, but a presented credential must be valid:
	// an expired token here is how the client learns its session died.
	if r.Header.Get("Authorization") != "" {
		if _, ok := s.authenticate(r); !ok {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
	}

	params := r.URL.Query()
	q := strings.ToLower(params.Get("q"))
	suburb := params.Get("suburb")
	service := params.Get("service")
	limit := parsePositive(params.Get("limit"), 20)
	offset := parsePositive(params.Get("offset"), 0)

	matched := make([]models.SupplierSummary, 0, len(s.suppliers))
	for _, sup := range s.suppliers {
		if q != "" && !strings.Contains(strings.ToLower(sup.BusinessName), q) {
			continue
		}
		if suburb != "" && !strings.EqualFold(sup.Suburb, suburb) {
			continue
		}
		if service != "" && !containsFold(sup.Services, service) {
			continue
		}
		matched = append(matched, sup)
	}

	page := models.SupplierPage{
		Total:  len(matched),
		Limit:  limit,
		Offset: offset,
		Items:  []models.SupplierSummary{},
	}
	if offset < len(matched) {
		end := offset + limit
		if end > len(matched) {
			end = len(matched)
		}
		page.Items = matched[offset:end]
	}

	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleSuggestSuburbs(w http.ResponseWriter, r *http.Request) {
	prefix := strings.ToLower(r.URL.Query().Get("q"))

	suggestions := make([]string, 0, 8)
	if prefix != "" {
		for _, sub := range s.suburbs {
			if strings.HasPrefix(strings.ToLower(sub), prefix) {
				suggestions = append(suggestions, sub)
				if len(suggestions) == 8 {
					break
				}
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string][]string{"suggestions": suggestions})
}

func (s *Server) authenticate(r *http.Request) (*account, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, false
	}

	c, err := parseToken(token, s.secret)
	if err != nil {
		return nil, false
	}

	s.mu.Lock()
	acc := s.accounts[strings.ToLower(c.Email)]
	s.mu.Unlock()
	if acc == nil {
		return nil, false
	}
	return acc, true
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
