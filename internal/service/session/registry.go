package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/sse"
)

type entry struct {
	provider session.Provider
	lastUsed time.Time
}

type registry struct {
	auth      Authenticator
	employees EmployeeLookup
	hub       *sse.Hub
	now       func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

func NewRegistry(authenticator Authenticator, employees EmployeeLookup, hub *sse.Hub) session.Registry {
	return &registry{
		auth:      authenticator,
		employees: employees,
		hub:       hub,
		now:       time.Now,
		entries:   make(map[string]*entry),
	}
}

// Open implements session.Registry. A provider that has been signed out is
// replaced by a fresh one.
func (r *registry) Open(ctx context.Context, userID string, sessionID string) (session.Provider, error) {
	r.mu.Lock()
	existing, ok := r.entries[sessionID]
	if ok && existing.provider.Current().Authenticated {
		existing.lastUsed = r.now()
		r.mu.Unlock()
		return existing.provider, nil
	}
	if ok {
		delete(r.entries, sessionID)
	}
	p := NewProvider(userID, sessionID, r.auth, r.employees, r.hub)
	r.entries[sessionID] = &entry{provider: p, lastUsed: r.now()}
	r.mu.Unlock()

	if ok {
		existing.provider.Close()
	}

	if err := p.Refresh(ctx); err != nil {
		r.remove(sessionID, p)
		p.Close()
		return nil, err
	}
	return p, nil
}

// Get implements session.Registry.
func (r *registry) Get(sessionID string) (session.Provider, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[sessionID]
	if !ok {
		return nil, false
	}
	e.lastUsed = r.now()
	return e.provider, true
}

// Close implements session.Registry.
func (r *registry) Close(sessionID string) {
	r.mu.Lock()
	e, ok := r.entries[sessionID]
	delete(r.entries, sessionID)
	r.mu.Unlock()

	if ok {
		e.provider.Close()
	}
}

// CloseAll implements session.Registry.
func (r *registry) CloseAll() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range entries {
		e.provider.Close()
	}
}

// Reap implements session.Registry. Providers still in use are refreshed so
// that expired or revoked sessions are dropped as well.
func (r *registry) Reap(ctx context.Context, maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	type candidate struct {
		sessionID string
		provider  session.Provider
		stale     bool
	}

	r.mu.Lock()
	candidates := make([]candidate, 0, len(r.entries))
	for sid, e := range r.entries {
		stale := e.lastUsed.Before(cutoff) || !e.provider.Current().Authenticated
		candidates = append(candidates, candidate{sessionID: sid, provider: e.provider, stale: stale})
	}
	r.mu.Unlock()

	reaped := 0
	for _, c := range candidates {
		if !c.stale {
			if err := c.provider.Refresh(ctx); err == nil {
				continue
			}
		}
		if r.remove(c.sessionID, c.provider) {
			c.provider.Close()
			reaped++
		}
	}
	if reaped > 0 {
		slog.Info("Session providers reaped", "count", reaped)
	}
	return reaped
}

// remove deletes sessionID only while it still maps to p.
func (r *registry) remove(sessionID string, p session.Provider) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[sessionID]; ok && e.provider == p {
		delete(r.entries, sessionID)
		return true
	}
	return false
}
