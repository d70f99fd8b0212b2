package authstate

import (
	"context"
	"fmt"
	"sync"

	"bidbazaar/internal/gateway"
	"bidbazaar/internal/marketerrors"
	"bidbazaar/internal/models"
	"bidbazaar/internal/storage"
	"bidbazaar/utils"
)

// State is the session lifecycle phase
type State int

const (
	StateAnonymous State = iota
	StateLoading
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// tokenSetter is the slice of the gateway the manager needs for bearer
// token handoff.
type tokenSetter interface {
	SetToken(token string)
	ClearToken()
}

// Manager owns the current session identity: who is logged in, the persisted
// user record, and the login/register/logout flows.
type Manager struct {
	mu    sync.RWMutex
	api   gateway.AuthAPI
	store storage.Store
	gw    tokenSetter

	state   State
	user    *models.User
	lastErr string
}

// NewManager creates a Manager in the anonymous state. gw may be nil when no
// bearer token handoff is wanted.
func NewManager(api gateway.AuthAPI, store storage.Store, gw tokenSetter) *Manager {
	return &Manager{api: api, store: store, gw: gw}
}

// Bootstrap restores a persisted session on startup. If a saved user record
// exists, the session is silently validated against the server: success
// refreshes the record, failure clears persisted state and stays anonymous
// without surfacing an error.
func (m *Manager) Bootstrap(ctx context.Context) {
	var saved models.User
	found, err := m.store.Get(storage.KeyUser, &saved)
	if err != nil {
		utils.Warn("auth: reading persisted session failed", map[string]any{"error": err.Error()})
		return
	}
	if !found {
		return
	}

	var token string
	if ok, _ := m.store.Get(storage.KeyToken, &token); ok && m.gw != nil {
		m.gw.SetToken(token)
	}

	m.setState(StateLoading)

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		utils.Info("auth: persisted session invalid, clearing", map[string]any{"username": saved.Username})
		m.clearSession()
		return
	}

	if err := m.store.Set(storage.KeyUser, user); err != nil {
		utils.Warn("auth: persisting refreshed user failed", map[string]any{"error": err.Error()})
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = &user
	m.lastErr = ""
	m.mu.Unlock()
}

// Login authenticates with the given credentials. On success the user record
// is persisted and the manager becomes authenticated; on failure it returns
// to anonymous with the error message retained for display.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", marketerrors.ErrInvalidInput)
	}

	m.setState(StateLoading)

	resp, err := m.api.Login(ctx, gateway.LoginRequest{Username: username, Password: password})
	if err != nil {
		m.failAuth(err, "Invalid username or password")
		return err
	}

	m.establishSession(resp)
	utils.Info("auth: logged in", map[string]any{"username": resp.User.Username})
	return nil
}

// Register creates an account. Field validation runs before any network call.
func (m *Manager) Register(ctx context.Context, req gateway.RegisterRequest) error {
	if err := validateRegistration(req); err != nil {
		return err
	}

	m.setState(StateLoading)

	resp, err := m.api.Register(ctx, req)
	if err != nil {
		m.failAuth(err, "Registration failed")
		return err
	}

	m.establishSession(resp)
	utils.Info("auth: registered", map[string]any{"username": resp.User.Username})
	return nil
}

func validateRegistration(req gateway.RegisterRequest) error {
	switch {
	case req.Username == "":
		return fmt.Errorf("%w: username is required", marketerrors.ErrInvalidInput)
	case req.Password == "":
		return fmt.Errorf("%w: password is required", marketerrors.ErrInvalidInput)
	case !utils.IsValidEmail(req.Email):
		return fmt.Errorf("%w: invalid email address", marketerrors.ErrInvalidInput)
	case req.Phone != "" && !utils.IsValidPhone(req.Phone):
		return fmt.Errorf("%w: invalid phone number", marketerrors.ErrInvalidInput)
	}
	return nil
}

// Logout notifies the server best-effort and always resets to anonymous,
// clearing persisted state, whatever the server says.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		utils.Warn("auth: server logout failed", map[string]any{"error": err.Error()})
	}
	m.clearSession()
	utils.Info("auth: logged out", nil)
}

// CurrentUser returns the session user when authenticated
func (m *Manager) CurrentUser() (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

// CurrentState returns the session lifecycle phase
func (m *Manager) CurrentState() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsAuthenticated reports whether a session user is present
func (m *Manager) IsAuthenticated() bool {
	return m.CurrentState() == StateAuthenticated
}

// Err returns the retained auth error message, empty when none
func (m *Manager) Err() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// ClearError discards the retained error message
func (m *Manager) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = ""
}

func (m *Manager) establishSession(resp gateway.AuthResponse) {
	if err := m.store.Set(storage.KeyUser, resp.User); err != nil {
		utils.Warn("auth: persisting user failed", map[string]any{"error": err.Error()})
	}
	if resp.AccessToken != "" {
		if err := m.store.Set(storage.KeyToken, resp.AccessToken); err != nil {
			utils.Warn("auth: persisting token failed", map[string]any{"error": err.Error()})
		}
		if m.gw != nil {
			m.gw.SetToken(resp.AccessToken)
		}
	}

	user := resp.User
	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = &user
	m.lastErr = ""
	m.mu.Unlock()
}

func (m *Manager) failAuth(err error, fallback string) {
	message := fallback
	if err != nil && err.Error() != "" {
		message = err.Error()
	}

	m.mu.Lock()
	m.state = StateAnonymous
	m.user = nil
	m.lastErr = message
	m.mu.Unlock()
}

func (m *Manager) clearSession() {
	if err := m.store.Remove(storage.KeyUser); err != nil {
		utils.Warn("auth: clearing persisted user failed", map[string]any{"error": err.Error()})
	}
	if err := m.store.Remove(storage.KeyToken); err != nil {
		utils.Warn("auth: clearing persisted token failed", map[string]any{"error": err.Error()})
	}
	if m.gw != nil {
		m.gw.ClearToken()
	}

	m.mu.Lock()
	m.state = StateAnonymous
	m.user = nil
	m.lastErr = ""
	m.mu.Unlock()
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
	if s == StateLoading {
		m.lastErr = ""
	}
}
