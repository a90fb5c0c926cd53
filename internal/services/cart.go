package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/frameart/storefront/internal/errors"
	"github.com/frameart/storefront/internal/localstore"
	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/metrics"
	"github.com/frameart/storefront/internal/models"
	repository "github.com/frameart/storefront/internal/repositories"
	"github.com/frameart/storefront/internal/snapshot"
)

// LocalCartKey is the local cache key holding the guest cart.
const LocalCartKey = "cart"

type MergePolicy string

const (
	// MergeAuthoritative keeps the authenticated line when both carts hold
	// the same artwork and only adds guest-only lines.
	MergeAuthoritative MergePolicy = "authoritative"
	// MergeSum adds guest quantities onto matching authenticated lines.
	MergeSum MergePolicy = "sum"
)

func ParseMergePolicy(s string) (MergePolicy, error) {
	switch MergePolicy(s) {
	case MergeAuthoritative, "":
		return MergeAuthoritative, nil
	case MergeSum:
		return MergeSum, nil
	default:
		return "", fmt.Errorf("unknown cart merge policy %q", s)
	}
}

type CartService interface {
	Cart(ctx context.Context) ([]models.CartLine, error)
	View(ctx context.Context) (*models.CartView, error)
	AddToCart(ctx context.Context, artwork map[string]any, priceOverride *float64) (*models.CartView, error)
	UpdateQuantity(ctx context.Context, artworkID string, quantity int) (*models.CartView, error)
	RemoveFromCart(ctx context.Context, artworkID string) (*models.CartView, error)
	ClearCart(ctx context.Context) error
	OnSignIn(ctx context.Context, userID string) error
	OnSignOut(ctx context.Context) error
	OnGuest(ctx context.Context) error
}

// CartEngine is the cart of one session. Anonymous and guest carts live in
// the session's local cache; an authenticated cart lives in the owner's
// profile document. Every mutation persists the whole new cart before it
// becomes visible, so a failed write leaves the previous cart in place.
type CartEngine struct {
	mu       sync.Mutex
	profiles repository.ProfileRepository
	local    localstore.SessionStore
	policy   MergePolicy

	// ownerID is empty while the cart belongs to the local cache.
	ownerID string
	lines   []models.CartLine
	loaded  bool
}

func NewCartEngine(profiles repository.ProfileRepository, local localstore.SessionStore, policy MergePolicy) *CartEngine {
	return &CartEngine{
		profiles: profiles,
		local:    local,
		policy:   policy,
		lines:    []models.CartLine{},
	}
}

var errNoChange = stderrors.New("cart unchanged")

func (e *CartEngine) Cart(ctx context.Context) ([]models.CartLine, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	return slices.Clone(e.lines), nil
}

func (e *CartEngine) View(ctx context.Context) (*models.CartView, error) {
	lines, err := e.Cart(ctx)
	if err != nil {
		return nil, err
	}

	return NewCartView(lines), nil
}

func (e *CartEngine) AddToCart(ctx context.Context, artwork map[string]any, priceOverride *float64) (*models.CartView, error) {
	s := snapshot.Normalize(artwork)
	if s.ID == "" {
		return nil, errors.ValidationError("Artwork id is required")
	}

	return e.mutate(ctx, "add", func(lines []models.CartLine) ([]models.CartLine, error) {
		if i := indexOfLine(lines, s.ID); i >= 0 {
			lines[i].Quantity++

			return lines, nil
		}

		return append(lines, snapshot.CartLineFromSnapshot(s, priceOverride)), nil
	})
}

// UpdateQuantity removes the line when quantity is below 1.
func (e *CartEngine) UpdateQuantity(ctx context.Context, artworkID string, quantity int) (*models.CartView, error) {
	if quantity < 1 {
		return e.RemoveFromCart(ctx, artworkID)
	}

	return e.mutate(ctx, "update_quantity", func(lines []models.CartLine) ([]models.CartLine, error) {
		i := indexOfLine(lines, artworkID)
		if i < 0 {
			return nil, errors.CartLineNotFoundError("Item not found in the cart")
		}

		if lines[i].Quantity == quantity {
			return nil, errNoChange
		}

		lines[i].Quantity = quantity

		return lines, nil
	})
}

// RemoveFromCart of an artwork that is not in the cart succeeds without I/O.
func (e *CartEngine) RemoveFromCart(ctx context.Context, artworkID string) (*models.CartView, error) {
	return e.mutate(ctx, "remove", func(lines []models.CartLine) ([]models.CartLine, error) {
		i := indexOfLine(lines, artworkID)
		if i < 0 {
			return nil, errNoChange
		}

		return slices.Delete(lines, i, i+1), nil
	})
}

func (e *CartEngine) ClearCart(ctx context.Context) error {
	_, err := e.mutate(ctx, "clear", func(_ []models.CartLine) ([]models.CartLine, error) {
		return []models.CartLine{}, nil
	})

	return err
}

// Merge folds the guest cart into the authenticated cart of userID.
// An empty guest cart is a no-op without network calls; the authenticated
// cart is then loaded on first use. A failed write leaves the engine and
// the local cache as they were, so the merge can be retried.
func (e *CartEngine) Merge(ctx context.Context, userID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	log := logger.FromContext(ctx).With(slog.String("user_id", userID))

	guest, err := e.readLocal(ctx)
	if err != nil {
		metrics.CartMerges.WithLabelValues(metrics.OutcomeFailure).Inc()

		return errors.InternalError("Failed to read guest cart").WithError(err)
	}

	if len(guest) == 0 {
		e.ownerID = userID
		e.lines = []models.CartLine{}
		e.loaded = false

		metrics.CartMerges.WithLabelValues(metrics.OutcomeNoop).Inc()
		log.Debug("Guest cart empty, nothing to merge")

		return nil
	}

	authenticated, err := e.profiles.GetCart(ctx, userID)
	if err != nil {
		metrics.CartMerges.WithLabelValues(metrics.OutcomeFailure).Inc()
		log.Error("Failed to fetch authenticated cart for merge", slog.Any("error", err))

		return errors.CartPersistFailure("Failed to merge cart").WithError(err)
	}

	merged := MergeCarts(authenticated, guest, e.policy)

	if err := e.profiles.SaveCart(ctx, userID, merged); err != nil {
		metrics.CartMerges.WithLabelValues(metrics.OutcomeFailure).Inc()
		log.Error("Failed to save merged cart", slog.Any("error", err))

		return errors.CartPersistFailure("Failed to merge cart").WithError(err)
	}

	e.ownerID = userID
	e.lines = merged
	e.loaded = true

	if err := e.local.Remove(ctx, LocalCartKey); err != nil {
		log.Warn("Failed to clear guest cart after merge", slog.Any("error", err))
	}

	metrics.CartMerges.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info("Guest cart merged", slog.Int("guest_lines", len(guest)), slog.Int("merged_lines", len(merged)))

	return nil
}

func (e *CartEngine) OnSignIn(ctx context.Context, userID string) error {
	return e.Merge(ctx, userID)
}

// OnSignOut drops the authenticated cart reference. The cart itself stays
// in the profile store.
func (e *CartEngine) OnSignOut(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ownerID = ""
	e.lines = []models.CartLine{}
	e.loaded = true

	if err := e.local.Remove(ctx, LocalCartKey); err != nil {
		logger.FromContext(ctx).Warn("Failed to clear local cart on sign-out", slog.Any("error", err))
	}

	return nil
}

// OnGuest restores the guest cart from the local cache without network calls.
func (e *CartEngine) OnGuest(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	lines, err := e.readLocal(ctx)
	if err != nil {
		return errors.InternalError("Failed to restore guest cart").WithError(err)
	}

	e.ownerID = ""
	e.lines = lines
	e.loaded = true

	return nil
}

func (e *CartEngine) mutate(ctx context.Context, operation string, fn func([]models.CartLine) ([]models.CartLine, error)) (*models.CartView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureLoaded(ctx); err != nil {
		metrics.CartOperations.WithLabelValues(operation, metrics.OutcomeFailure).Inc()

		return nil, err
	}

	next, err := fn(slices.Clone(e.lines))
	if err != nil {
		if stderrors.Is(err, errNoChange) {
			metrics.CartOperations.WithLabelValues(operation, metrics.OutcomeNoop).Inc()

			return NewCartView(e.lines), nil
		}

		metrics.CartOperations.WithLabelValues(operation, metrics.OutcomeFailure).Inc()

		return nil, err
	}

	if err := e.persist(ctx, next); err != nil {
		metrics.CartOperations.WithLabelValues(operation, metrics.OutcomeFailure).Inc()
		logger.FromContext(ctx).Error("Failed to persist cart",
			slog.String("operation", operation), slog.Bool("authenticated", e.ownerID != ""), slog.Any("error", err))

		return nil, errors.CartPersistFailure("Failed to save cart").WithError(err)
	}

	e.lines = next
	metrics.CartOperations.WithLabelValues(operation, metrics.OutcomeSuccess).Inc()

	return NewCartView(next), nil
}

func (e *CartEngine) ensureLoaded(ctx context.Context) error {
	if e.loaded {
		return nil
	}

	var (
		lines []models.CartLine
		err   error
	)

	if e.ownerID == "" {
		lines, err = e.readLocal(ctx)
	} else {
		lines, err = e.profiles.GetCart(ctx, e.ownerID)
	}

	if err != nil {
		return errors.DatabaseError("Failed to load cart").WithError(err)
	}

	e.lines = lines
	e.loaded = true

	return nil
}

func (e *CartEngine) persist(ctx context.Context, lines []models.CartLine) error {
	if e.ownerID != "" {
		return e.profiles.SaveCart(ctx, e.ownerID, lines)
	}

	raw, err := json.Marshal(models.CartLinesToFields(lines))
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	return e.local.Set(ctx, LocalCartKey, string(raw))
}

// readLocal tolerates a corrupt cache entry by reading it as empty.
func (e *CartEngine) readLocal(ctx context.Context) ([]models.CartLine, error) {
	raw, found, err := e.local.Get(ctx, LocalCartKey)
	if err != nil {
		return nil, err
	}

	if !found || raw == "" {
		return []models.CartLine{}, nil
	}

	var stored []any
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logger.FromContext(ctx).Warn("Discarding unreadable guest cart", slog.Any("error", err))

		return []models.CartLine{}, nil
	}

	return snapshot.CartLinesFromRaw(stored), nil
}

// MergeCarts returns authenticated followed by the guest-only lines. How a
// guest line for an artwork already in the authenticated cart is treated
// depends on policy. The inputs are not modified.
func MergeCarts(authenticated, guest []models.CartLine, policy MergePolicy) []models.CartLine {
	merged := slices.Clone(authenticated)
	if merged == nil {
		merged = []models.CartLine{}
	}

	for _, g := range guest {
		i := indexOfLine(merged, g.ArtworkID)
		if i < 0 {
			merged = append(merged, g)

			continue
		}

		if policy == MergeSum {
			merged[i].Quantity += max(g.Quantity, 1)
		}
	}

	return merged
}

// CalculateTotal is Σ price × quantity. A quantity below 1 counts as 1.
func CalculateTotal(lines []models.CartLine) float64 {
	var total float64

	for _, l := range lines {
		total += snapshot.CoerceFloat(l.Price) * float64(max(l.Quantity, 1))
	}

	return total
}

func NewCartView(lines []models.CartLine) *models.CartView {
	count := 0
	for _, l := range lines {
		count += max(l.Quantity, 1)
	}

	items := slices.Clone(lines)
	if items == nil {
		items = []models.CartLine{}
	}

	return &models.CartView{
		Items: items,
		Total: CalculateTotal(lines),
		Count: count,
	}
}

func indexOfLine(lines []models.CartLine, artworkID string) int {
	return slices.IndexFunc(lines, func(l models.CartLine) bool {
		return l.ArtworkID == artworkID
	})
}
