// Package session owns the client's belief about who is signed in. The state
// is an explicit tagged value rather than a nullable user/boolean pair, so a
// token without an identity (or the reverse) cannot be represented.
package session

import (
	"context"
	"sync"

	"github.com/servicepro/servicepro-client/pkg/api"
	"github.com/servicepro/servicepro-client/pkg/enums"
	pkgerrors "github.com/servicepro/servicepro-client/pkg/errors"
	"github.com/servicepro/servicepro-client/pkg/localstate"
	"github.com/servicepro/servicepro-client/pkg/logger"
)

// Phase is the session lifecycle tag.
type Phase int

const (
	// PhaseBooting means startup rehydration has not finished yet.
	PhaseBooting Phase = iota
	// PhaseAnonymous means no usable credentials are held.
	PhaseAnonymous
	// PhaseAuthenticated means the backend confirmed the held identity.
	PhaseAuthenticated
	// PhaseUnverified means a persisted token exists but the identity check
	// failed; the last-known user is retained so the caller can offer a
	// retry or logout instead of silently trusting stale data.
	PhaseUnverified
)

func (p Phase) String() string {
	switch p {
	case PhaseBooting:
		return "booting"
	case PhaseAnonymous:
		return "anonymous"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseUnverified:
		return "unverified"
	default:
		return "unknown"
	}
}

// State is a snapshot of the session.
type State struct {
	Phase Phase
	User  *api.User
	Token string
}

// SignedIn reports whether a user identity is available, verified or not.
func (s State) SignedIn() bool {
	return (s.Phase == PhaseAuthenticated || s.Phase == PhaseUnverified) && s.User != nil
}

// RegisterData carries a new account's details through Register.
type RegisterData struct {
	Name         string
	Email        string
	Phone        string
	Password     string
	Role         enums.Role
	BusinessName string
	Address      string
}

// Manager coordinates boot, login, registration and logout against the API
// client and the persisted local state.
type Manager struct {
	mu     sync.Mutex
	client *api.Client
	store  *localstate.Store
	log    *logger.Logger
	state  State
}

func NewManager(client *api.Client, store *localstate.Store, log *logger.Logger) *Manager {
	return &Manager{
		client: client,
		store:  store,
		log:    log,
		state:  State{Phase: PhaseBooting},
	}
}

// Boot rehydrates the session from persisted state. With no persisted token
// the session is anonymous. With a token, the backend's identity check is
// ground truth; if it fails, the session lands in PhaseUnverified holding the
// last persisted user instead of forcing logout, and the verification error
// is returned so the caller can surface it.
func (m *Manager) Boot(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := m.store.Token()
	if token == "" {
		m.state = State{Phase: PhaseAnonymous}
		return nil
	}

	user, err := m.client.Me(ctx)
	if err != nil {
		var stale api.User
		state := State{Phase: PhaseUnverified, Token: token}
		if m.store.User(&stale) {
			state.User = &stale
		}
		m.state = state
		if m.log != nil {
			m.log.Warn(ctx, "session rehydration failed, holding last-known identity")
		}
		return err
	}

	if err := m.store.SetUser(user); err != nil && m.log != nil {
		m.log.Error(ctx, "persist refreshed user", err)
	}
	m.state = State{Phase: PhaseAuthenticated, User: user, Token: token}
	return nil
}

// Login authenticates and persists the returned credentials.
func (m *Manager) Login(ctx context.Context, email, password string, role enums.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	result, err := m.client.Login(ctx, api.LoginRequest{
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return err
	}
	return m.adopt(ctx, result)
}

// Register creates an account (vendor or customer route, chosen by role) and
// signs the new user in.
func (m *Manager) Register(ctx context.Context, data RegisterData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	result, err := m.client.Register(ctx, api.RegisterRequest{
		Name:         data.Name,
		Email:        data.Email,
		Phone:        data.Phone,
		Password:     data.Password,
		Role:         data.Role,
		BusinessName: data.BusinessName,
		Address:      data.Address,
	})
	if err != nil {
		return err
	}
	return m.adopt(ctx, result)
}

// adopt persists the credentials and flips the session to authenticated.
// Callers hold the mutex.
func (m *Manager) adopt(ctx context.Context, result *api.LoginResult) error {
	if err := m.store.SetToken(result.Token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist token")
	}
	if err := m.store.SetUser(&result.User); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist user")
	}
	user := result.User
	m.state = State{Phase: PhaseAuthenticated, User: &user, Token: result.Token}
	if m.log != nil {
		ctx = m.log.WithUserID(ctx, user.ID)
		ctx = m.log.WithRole(ctx, user.Role.String())
		m.log.Info(ctx, "signed in")
	}
	return nil
}

// Logout clears persisted credentials and resets to anonymous. It is purely
// local; the backend is not informed.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.store.Clear()
	m.state = State{Phase: PhaseAnonymous}
	return err
}

// State returns a snapshot of the current session.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsAuthenticated reports whether the backend has confirmed the identity.
func (m *Manager) IsAuthenticated() bool {
	return m.State().Phase == PhaseAuthenticated
}

// CurrentUser returns the signed-in (or last-known) user, or nil.
func (m *Manager) CurrentUser() *api.User {
	return m.State().User
}
