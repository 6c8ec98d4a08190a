package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/sse"
)

// eventRefreshTimeout bounds a refresh triggered by a signed_in event.
const eventRefreshTimeout = 10 * time.Second

// Authenticator is the part of the identity service a provider needs.
type Authenticator interface {
	ValidateSession(ctx context.Context, userID string, sessionID string) (user.User, error)
	RevokeSession(ctx context.Context, userID string, sessionID string) error
}

// EmployeeLookup loads the employee linked to a user.
type EmployeeLookup interface {
	GetByUserID(ctx context.Context, userID string) (employee.EmployeeDetail, error)
}

type provider struct {
	userID    string
	sessionID string
	auth      Authenticator
	employees EmployeeLookup

	refreshMu sync.Mutex

	mu       sync.RWMutex
	identity *session.Identity
	lastErr  string
	closed   bool

	unsubscribe func()
	done        chan struct{}
}

// NewProvider creates a signed-out provider for one session and starts
// listening for its identity events. Call Refresh to load the identity.
func NewProvider(userID, sessionID string, authenticator Authenticator, employees EmployeeLookup, hub *sse.Hub) session.Provider {
	events, unsubscribe := hub.Subscribe(sse.AuthTopic(userID))
	p := &provider{
		userID:      userID,
		sessionID:   sessionID,
		auth:        authenticator,
		employees:   employees,
		unsubscribe: unsubscribe,
		done:        make(chan struct{}),
	}
	go p.listen(events)
	return p
}

func (p *provider) listen(events <-chan sse.Event) {
	defer close(p.done)
	for ev := range events {
		if ev.SessionID != "" && ev.SessionID != p.sessionID {
			continue
		}
		switch ev.Name {
		case sse.EventSignedOut:
			p.clear("")
		case sse.EventSignedIn:
			ctx, cancel := context.WithTimeout(context.Background(), eventRefreshTimeout)
			if err := p.Refresh(ctx); err != nil {
				slog.Warn("Session refresh after sign-in event failed", "session_id", p.sessionID, "error", err)
			}
			cancel()
		}
	}
}

// Refresh implements session.Provider.
func (p *provider) Refresh(ctx context.Context) error {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	if p.isClosed() {
		return session.ErrClosed
	}

	u, err := p.auth.ValidateSession(ctx, p.userID, p.sessionID)
	if err != nil {
		p.clear(err.Error())
		return err
	}
	if !u.Role.Valid() {
		p.clear(auth.ErrRoleNotAllowed.Error())
		return auth.ErrRoleNotAllowed
	}

	identity := &session.Identity{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		SessionID: p.sessionID,
	}

	detail, err := p.employees.GetByUserID(ctx, u.ID)
	switch {
	case errors.Is(err, employee.ErrEmployeeNotFound):
		// Accounts without an employee record stay signed in.
	case err != nil:
		p.clear(err.Error())
		return fmt.Errorf("load employee: %w", err)
	case !detail.HasValidStructure():
		p.clear(session.ErrInvalidEmployeeData.Error())
		if err := p.auth.RevokeSession(ctx, p.userID, p.sessionID); err != nil {
			slog.Error("Failed to revoke session with invalid employee data", "session_id", p.sessionID, "error", err)
		}
		return session.ErrInvalidEmployeeData
	default:
		emp := detail.Employee
		identity.Employee = &emp
		identity.EmergencyContact = detail.EmergencyContact
	}

	p.mu.Lock()
	p.identity = identity
	p.lastErr = ""
	p.mu.Unlock()
	return nil
}

// Logout implements session.Provider.
func (p *provider) Logout(ctx context.Context) error {
	err := p.auth.RevokeSession(ctx, p.userID, p.sessionID)
	if err != nil {
		p.clear(session.ErrLogoutFailed.Error())
		return fmt.Errorf("%w: %v", session.ErrLogoutFailed, err)
	}
	p.clear("")
	return nil
}

// Current implements session.Provider.
func (p *provider) Current() session.State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	state := session.State{Err: p.lastErr}
	if p.identity != nil {
		identity := *p.identity
		state.Identity = &identity
		state.Authenticated = true
	}
	return state
}

// Err implements session.Provider.
func (p *provider) Err() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

// Close implements session.Provider.
func (p *provider) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.unsubscribe()
	<-p.done
}

func (p *provider) clear(errMsg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.identity = nil
	p.lastErr = errMsg
}

func (p *provider) isClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}
