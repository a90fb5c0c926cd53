package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/metrics"
	"github.com/frameart/storefront/internal/models"
)

// TransitionHandler reacts to identity changes. Handlers run in the order
// they were subscribed.
type TransitionHandler interface {
	OnSignIn(ctx context.Context, userID string) error
	OnSignOut(ctx context.Context) error
	OnGuest(ctx context.Context) error
}

const (
	transitionSignIn  = "sign_in"
	transitionSignOut = "sign_out"
	transitionGuest   = "guest"
	transitionForget  = "forget_guest"
)

// Manager holds the identity of one session and turns identity change
// notifications into exactly one transition per real change.
type Manager struct {
	mu       sync.Mutex
	current  models.Identity
	handlers []TransitionHandler
}

func NewManager() *Manager {
	return &Manager{current: models.Anonymous()}
}

func (m *Manager) Subscribe(h TransitionHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers = append(m.handlers, h)
}

// restore sets the identity without running any transition.
func (m *Manager) restore(ident models.Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = ident
}

func (m *Manager) CurrentIdentity() models.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.current
}

// Observe applies one identity notification. Repeating the current identity
// is a no-op, so duplicate notifications never merge twice. When a sign-in
// or guest transition fails the previous identity is kept, and the next
// notification with the same identity retries it. Sign-out always commits.
func (m *Manager) Observe(ctx context.Context, next models.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.current
	if prev.Equal(next) {
		if next.Email != "" {
			m.current.Email = next.Email
		}

		return nil
	}

	log := logger.FromContext(ctx).With(
		slog.String("from", prev.Kind.String()),
		slog.String("to", next.Kind.String()),
	)

	if prev.IsAuthenticated() {
		if err := m.signOut(ctx); err != nil {
			log.Warn("Sign-out transition finished with errors", slog.Any("error", err))
		}

		m.current = models.Anonymous()
	}

	switch next.Kind {
	case models.IdentityAuthenticated:
		if err := m.run(transitionSignIn, func(h TransitionHandler) error {
			return h.OnSignIn(ctx, next.UserID)
		}, true); err != nil {
			log.Error("Sign-in transition failed, keeping previous identity", slog.Any("error", err))

			return fmt.Errorf("sign-in transition: %w", err)
		}
	case models.IdentityGuest:
		if err := m.run(transitionGuest, func(h TransitionHandler) error {
			return h.OnGuest(ctx)
		}, true); err != nil {
			log.Error("Guest transition failed, keeping previous identity", slog.Any("error", err))

			return fmt.Errorf("guest transition: %w", err)
		}
	case models.IdentityAnonymous:
		if !prev.IsAuthenticated() {
			// Guest going anonymous keeps the guest cart in the local cache.
			metrics.SessionTransitions.WithLabelValues(transitionForget, metrics.OutcomeSuccess).Inc()
		}
	}

	m.current = next
	log.Info("Identity changed")

	return nil
}

// Listen observes every identity received until the channel closes or ctx
// is done. A failed transition is logged and does not stop the loop.
func (m *Manager) Listen(ctx context.Context, changes <-chan models.Identity) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case next, ok := <-changes:
			if !ok {
				return nil
			}

			if err := m.Observe(ctx, next); err != nil {
				logger.FromContext(ctx).Warn("Identity change not applied", slog.Any("error", err))
			}
		}
	}
}

func (m *Manager) signOut(ctx context.Context) error {
	return m.run(transitionSignOut, func(h TransitionHandler) error {
		return h.OnSignOut(ctx)
	}, false)
}

// run calls fn on every handler. With stopOnError the first failure ends
// the transition; otherwise every handler runs and the errors are joined.
func (m *Manager) run(transition string, fn func(TransitionHandler) error, stopOnError bool) error {
	var errs []error

	for _, h := range m.handlers {
		if err := fn(h); err != nil {
			if stopOnError {
				metrics.SessionTransitions.WithLabelValues(transition, metrics.OutcomeFailure).Inc()

				return err
			}

			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	metrics.SessionTransitions.WithLabelValues(transition, metrics.Outcome(err)).Inc()

	return err
}
