package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/frameart/storefront/internal/localstore"
	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/metrics"
	service "github.com/frameart/storefront/internal/services"
)

// Builder assembles the per-session state for a new session id.
type Builder func(id string) *Session

type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	build    Builder
	idle     time.Duration
}

func NewRegistry(build Builder, idle time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		build:    build,
		idle:     idle,
	}
}

// Get returns the session for id, building it on first use.
func (r *Registry) Get(ctx context.Context, id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		s.Touch()

		return s
	}

	s := r.build(id)
	r.sessions[id] = s
	metrics.ActiveSessions.Inc()

	logger.FromContext(ctx).Debug("Session created", slog.String("session_id", id))

	return s
}

func (r *Registry) Evict(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; ok {
		delete(r.sessions, id)
		metrics.ActiveSessions.Dec()
	}
}

// Rotate re-keys a session that is about to sign in. The guest cart moves
// into a fresh session built under newID, which also inherits a guest
// identity, and the old id stops resolving to it. The caller holds old's
// lock and must take the fresh session's lock before using it.
func (r *Registry) Rotate(ctx context.Context, old *Session, newID string) (*Session, error) {
	fresh := r.Get(ctx, newID)

	if err := localstore.Move(ctx, old.Store, fresh.Store, service.LocalCartKey); err != nil {
		r.Evict(newID)

		return nil, fmt.Errorf("failed to move local cache to the rotated session: %w", err)
	}

	if prev := old.Manager.CurrentIdentity(); !prev.IsAuthenticated() {
		fresh.Manager.restore(prev)
	}

	r.Evict(old.ID)

	logger.FromContext(ctx).Info("Session id rotated", slog.String("new_session_id", newID))

	return fresh, nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

// EvictIdle drops sessions not seen since now minus the idle timeout.
// Sessions serving a request are skipped. Guest carts survive in the local
// cache backend and authenticated carts in the profile store.
func (r *Registry) EvictIdle(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := now.Add(-r.idle)
	evicted := 0

	for id, s := range r.sessions {
		if s.LastSeen().After(cutoff) {
			continue
		}

		if !s.mu.TryLock() {
			continue
		}

		delete(r.sessions, id)
		s.mu.Unlock()

		evicted++
	}

	metrics.ActiveSessions.Sub(float64(evicted))

	return evicted
}

// Run evicts idle sessions until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	interval := max(r.idle/2, time.Second)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.EvictIdle(now); n > 0 {
				slog.Debug("Evicted idle sessions", slog.Int("count", n), slog.Int("remaining", r.Len()))
			}
		}
	}
}
