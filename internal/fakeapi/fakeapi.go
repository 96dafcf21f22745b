// ABOUTME: In-memory implementation of the pet-care API for tests
// ABOUTME: Issues HS256 tokens and enforces ownership and admin rules

package fakeapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/markalston/petcare-cli/internal/client"
	"github.com/markalston/petcare-cli/internal/token"
)

type user struct {
	id       int64
	name     string
	password string
	email    string
	admin    bool
}

type pet struct {
	client.Pet
	owner string
}

// Server is an http.Handler serving the pet-care API from memory.
type Server struct {
	mu        sync.Mutex
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
	users     map[string]*user
	pets      map[int64]*pet
	nextUser  int64
	nextPet   int64
	requestID []string

	mux *http.ServeMux
}

// Option customizes a Server.
type Option func(*Server)

// WithClock sets the time used for token issue and verification.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithTokenTTL sets how long issued tokens stay valid.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.ttl = d }
}

// New creates an empty server.
func New(opts ...Option) *Server {
	s := &Server{
		secret: []byte("fakeapi-signing-key"),
		ttl:    time.Hour,
		now:    time.Now,
		users:  make(map[string]*user),
		pets:   make(map[int64]*pet),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/register", s.handleRegister)

	mux.HandleFunc("GET /pets", s.requireUser(s.handleListPets))
	mux.HandleFunc("POST /pets", s.requireUser(s.handleCreatePet))
	mux.HandleFunc("GET /pets/{id}", s.requireUser(s.handleGetPet))
	mux.HandleFunc("PUT /pets/{id}", s.requireUser(s.handleUpdatePet))
	mux.HandleFunc("DELETE /pets/{id}", s.requireUser(s.handleDeletePet))
	mux.HandleFunc("POST /pets/{id}/{action}", s.requireUser(s.handleAction))

	mux.HandleFunc("GET /admin/pets", s.requireAdmin(s.handleAdminListPets))
	mux.HandleFunc("PUT /admin/pets/{id}", s.requireAdmin(s.handleAdminUpdatePet))
	mux.HandleFunc("DELETE /admin/pets/{id}", s.requireAdmin(s.handleAdminDeletePet))
	s.mux = mux

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requestID = append(s.requestID, r.Header.Get(client.RequestIDHeader))
	s.mu.Unlock()
	s.mux.ServeHTTP(w, r)
}

// AddUser registers an account directly.
func (s *Server) AddUser(name, password string, admin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addUserLocked(name, password, name+"@example.com", admin)
}

func (s *Server) addUserLocked(name, password, email string, admin bool) *user {
	s.nextUser++
	u := &user{id: s.nextUser, name: name, password: password, email: email, admin: admin}
	s.users[name] = u
	return u
}

// AddPet stores a pet owned by owner and returns it with its new ID.
func (s *Server) AddPet(owner string, in client.PetInput) client.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addPetLocked(owner, in)
}

func (s *Server) addPetLocked(owner string, in client.PetInput) client.Pet {
	s.nextPet++
	p := &pet{owner: owner, Pet: client.Pet{
		ID:     s.nextPet,
		Name:   in.Name,
		Type:   in.Type,
		Color:  in.Color,
		Energy: in.Energy,
		Hungry: in.Hungry,
		Fun:    in.Fun,
	}}
	s.pets[p.ID] = p
	return p.Pet
}

// Pet returns the stored pet with id.
func (s *Server) Pet(id int64) (client.Pet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pets[id]
	if !ok {
		return client.Pet{}, false
	}
	return p.Pet, true
}

// RequestIDs returns the X-Request-ID header of every request seen.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestID...)
}

// IssueToken signs a token for name that expires at exp.
func (s *Server) IssueToken(name string, exp time.Time) (string, error) {
	s.mu.Lock()
	u, ok := s.users[name]
	s.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("unknown user %q", name)
	}
	return s.sign(u, exp)
}

func (s *Server) sign(u *user, exp time.Time) (string, error) {
	authorities := []string{"USER"}
	if u.admin {
		authorities = append(authorities, token.AdminAuthority)
	}
	claims := token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.name,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Authorities: authorities,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

type ctxUser struct {
	name  string
	admin bool
}

type authedHandler func(w http.ResponseWriter, r *http.Request, u ctxUser)

func (s *Server) authenticate(r *http.Request) (ctxUser, bool) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return ctxUser{}, false
	}

	var claims token.Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return ctxUser{}, false
	}

	s.mu.Lock()
	_, known := s.users[claims.Subject]
	s.mu.Unlock()
	if !known {
		return ctxUser{}, false
	}
	return ctxUser{name: claims.Subject, admin: claims.HasAuthority(token.AdminAuthority)}, true
}

func (s *Server) requireUser(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.authenticate(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r, u)
	}
}

func (s *Server) requireAdmin(next authedHandler) http.HandlerFunc {
	return s.requireUser(func(w http.ResponseWriter, r *http.Request, u ctxUser) {
		if !u.admin {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next(w, r, u)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req client.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	u, ok := s.users[req.UserName]
	s.mu.Unlock()
	if !ok || u.password != req.Password {
		writeError(w, http.StatusUnauthorized, "Bad credentials")
		return
	}

	tok, err := s.sign(u, s.now().Add(s.ttl))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, client.LoginResponse{Token: tok, UserName: u.name})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg client.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := reg.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[reg.UserName]; exists {
		writeError(w, http.StatusConflict, "user name already taken")
		return
	}
	u := s.addUserLocked(reg.UserName, reg.Password, reg.Email, false)
	writeJSON(w, http.StatusCreated, client.RegistrationResponse{
		ID:       u.id,
		UserName: u.name,
		Email:    u.email,
		Message:  "User registered successfully",
	})
}

func (s *Server) sortedPets(match func(*pet) bool) []client.Pet {
	out := []client.Pet{}
	for _, p := range s.pets {
		if match(p) {
			out = append(out, p.Pet)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) handleListPets(w http.ResponseWriter, r *http.Request, u ctxUser) {
	s.mu.Lock()
	pets := s.sortedPets(func(p *pet) bool { return p.owner == u.name })
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, pets)
}

func (s *Server) handleAdminListPets(w http.ResponseWriter, r *http.Request, _ ctxUser) {
	s.mu.Lock()
	pets := s.sortedPets(func(*pet) bool { return true })
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, pets)
}

func decodeInput(w http.ResponseWriter, r *http.Request) (client.PetInput, bool) {
	var in client.PetInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return in, false
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return in, false
	}
	return in, true
}

func (s *Server) handleCreatePet(w http.ResponseWriter, r *http.Request, u ctxUser) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, s.AddPet(u.name, in))
}

// lookup returns the pet named by the {id} path value. Pets owned by
// someone else are reported as missing unless anyOwner is set.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request, u ctxUser, anyOwner bool) (*pet, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pet id")
		return nil, false
	}
	p, ok := s.pets[id]
	if !ok || (!anyOwner && p.owner != u.name) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("pet %d not found", id))
		return nil, false
	}
	return p, true
}

func (s *Server) handleGetPet(w http.ResponseWriter, r *http.Request, u ctxUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.lookup(w, r, u, false); ok {
		writeJSON(w, http.StatusOK, p.Pet)
	}
}

func (s *Server) update(w http.ResponseWriter, r *http.Request, u ctxUser, anyOwner bool) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.lookup(w, r, u, anyOwner)
	if !ok {
		return
	}
	p.Name, p.Type, p.Color = in.Name, in.Type, in.Color
	p.Energy, p.Hungry, p.Fun = in.Energy, in.Hungry, in.Fun
	writeJSON(w, http.StatusOK, p.Pet)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request, u ctxUser, anyOwner bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.lookup(w, r, u, anyOwner)
	if !ok {
		return
	}
	delete(s.pets, p.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdatePet(w http.ResponseWriter, r *http.Request, u ctxUser) {
	s.update(w, r, u, false)
}

func (s *Server) handleDeletePet(w http.ResponseWriter, r *http.Request, u ctxUser) {
	s.remove(w, r, u, false)
}

func (s *Server) handleAdminUpdatePet(w http.ResponseWriter, r *http.Request, u ctxUser) {
	s.update(w, r, u, true)
}

func (s *Server) handleAdminDeletePet(w http.ResponseWriter, r *http.Request, u ctxUser) {
	s.remove(w, r, u, true)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request, u ctxUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.lookup(w, r, u, false)
	if !ok {
		return
	}
	if err := apply(&p.Pet, client.Action(r.PathValue("action"))); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusOK)
}

var errUnknownAction = errors.New("unknown action")

// apply mutates p for a care action.
func apply(p *client.Pet, action client.Action) error {
	switch action {
	case client.ActionFeed:
		p.Hungry = false
	case client.ActionPlay:
		p.Fun = min(client.MaxStat, p.Fun+20)
		p.Energy = max(client.MinStat, p.Energy-10)
	case client.ActionSleep:
		p.Energy = client.MaxStat
	default:
		return fmt.Errorf("%w: %s", errUnknownAction, action)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, client.ErrorResponse{Error: http.StatusText(status), Message: msg, Status: status})
}
