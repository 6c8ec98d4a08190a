// Package session models an authenticated session: the signed-in user, the
// role and the linked employee record, with an explicit lifecycle.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/user"
)

var (
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrInvalidEmployeeData = errors.New("Invalid employee data structure")
	ErrLogoutFailed        = errors.New("Failed to logout properly")
	ErrClosed              = errors.New("session provider is closed")
)

// Identity is what the rest of the application sees of a signed-in user.
type Identity struct {
	UserID           string                     `json:"user_id"`
	Email            string                     `json:"email"`
	Role             user.Role                  `json:"role"`
	SessionID        string                     `json:"session_id"`
	Employee         *employee.Employee         `json:"employee,omitempty"`
	EmergencyContact *employee.EmergencyContact `json:"emergency_contact,omitempty"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == user.RoleAdmin
}

// EmployeeID is nil for accounts without an employee record.
func (i Identity) EmployeeID() *string {
	if i.Employee == nil {
		return nil
	}
	id := i.Employee.ID
	return &id
}

// State is a snapshot of a provider.
type State struct {
	Identity      *Identity `json:"identity,omitempty"`
	Authenticated bool      `json:"authenticated"`
	Err           string    `json:"error,omitempty"`
}

// Provider holds one session's identity between login and logout.
type Provider interface {
	// Refresh re-validates the session and reloads the linked employee. Any
	// failure leaves the provider signed out.
	Refresh(ctx context.Context) error
	// Logout ends the remote session and always clears local state.
	Logout(ctx context.Context) error
	Current() State
	// Err returns the message of the last failure, if any.
	Err() string
	// Close stops listening for identity events.
	Close()
}

// Registry owns the providers of all live sessions.
type Registry interface {
	// Open returns the provider of sessionID, creating and refreshing it on
	// first use.
	Open(ctx context.Context, userID string, sessionID string) (Provider, error)
	Get(sessionID string) (Provider, bool)
	Close(sessionID string)
	CloseAll()
	// Reap closes providers that are signed out, no longer valid or unused
	// for longer than maxIdle, and returns how many it closed.
	Reap(ctx context.Context, maxIdle time.Duration) int
}

type identityKey struct{}

// WithIdentity stores the request's identity in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity placed by the session middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
