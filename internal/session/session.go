// Package session keeps one identity, cart and favorites state per browser
// session and applies identity transitions to them.
package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/frameart/storefront/internal/localstore"
	service "github.com/frameart/storefront/internal/services"
)

type Session struct {
	ID        string
	Manager   *Manager
	Store     localstore.SessionStore
	Cart      service.CartService
	Favorites service.FavoritesService

	mu       sync.Mutex
	lastSeen atomic.Int64
}

// New subscribes the cart engine before the favorites engine, so a sign-in
// merges the cart first.
func New(id string, store localstore.SessionStore, cart service.CartService, favorites service.FavoritesService) *Session {
	s := &Session{
		ID:        id,
		Manager:   NewManager(),
		Store:     store,
		Cart:      cart,
		Favorites: favorites,
	}

	s.Manager.Subscribe(cart)
	s.Manager.Subscribe(favorites)
	s.Touch()

	return s
}

// Lock serializes requests within the session. Requests in other sessions
// are not affected.
func (s *Session) Lock() {
	s.mu.Lock()
}

func (s *Session) Unlock() {
	s.Touch()
	s.mu.Unlock()
}

func (s *Session) Touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}
