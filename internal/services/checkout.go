package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/frameart/storefront/internal/errors"
	"github.com/frameart/storefront/internal/events"
	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/models"
	repository "github.com/frameart/storefront/internal/repositories"
	"github.com/frameart/storefront/pkg/sendgrid"
	"github.com/google/uuid"
)

type CheckoutService interface {
	Checkout(ctx context.Context, ident models.Identity, cart CartService, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
}

type checkoutService struct {
	profiles  repository.ProfileRepository
	publisher events.Publisher
	mailer    sendgrid.EmailService
	now       func() time.Time
}

// NewCheckoutService accepts a nil mailer; receipts are then skipped.
func NewCheckoutService(profiles repository.ProfileRepository, publisher events.Publisher, mailer sendgrid.EmailService) CheckoutService {
	return &checkoutService{profiles: profiles, publisher: publisher, mailer: mailer, now: time.Now}
}

// Checkout records the purchase before clearing the cart. Once the purchase
// is stored the checkout succeeds even if the cart cannot be cleared.
func (s *checkoutService) Checkout(ctx context.Context, ident models.Identity, cart CartService, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	if !ident.IsAuthenticated() {
		return nil, errors.NotAuthenticatedError("Please sign in to checkout")
	}

	log := logger.FromContext(ctx).With(slog.String("user_id", ident.UserID))

	lines, err := cart.Cart(ctx)
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, errors.ValidationError("Your cart is empty")
	}

	purchase := models.Purchase{
		ID:          uuid.NewString(),
		Items:       lines,
		Total:       CalculateTotal(lines),
		Shipping:    req.Shipping,
		PaymentRef:  simulatedPaymentRef(req.Payment.CardNumber),
		PurchasedAt: s.now().UTC(),
	}

	if err := s.profiles.AppendPurchase(ctx, ident.UserID, purchase); err != nil {
		log.Error("Failed to record purchase", slog.Any("error", err))

		return nil, errors.DatabaseError("Failed to record purchase").WithError(err)
	}

	if err := cart.ClearCart(ctx); err != nil {
		log.Error("Purchase recorded but cart was not cleared", slog.String("purchase_id", purchase.ID), slog.Any("error", err))
	}

	if err := s.publisher.Publish(ctx, events.New(events.TypePurchaseCompleted, purchase.ID, ident.UserID, map[string]any{
		"total": purchase.Total,
		"items": len(purchase.Items),
	})); err != nil {
		log.Warn("Failed to publish event", slog.String("event_type", events.TypePurchaseCompleted), slog.Any("error", err))
	}

	s.sendReceipt(ctx, log, purchase)

	log.Info("Checkout completed", slog.String("purchase_id", purchase.ID), slog.Float64("total", purchase.Total))

	return &models.CheckoutResponse{
		OrderNumber: purchase.ID,
		Total:       purchase.Total,
		Items:       len(purchase.Items),
		PurchasedAt: purchase.PurchasedAt,
	}, nil
}

func (s *checkoutService) sendReceipt(ctx context.Context, log *slog.Logger, purchase models.Purchase) {
	if s.mailer == nil || purchase.Shipping.Email == "" {
		return
	}

	if err := s.mailer.Send(ctx, sendgrid.Receipt(purchase.Shipping.Email, purchase)); err != nil {
		log.Warn("Failed to send receipt", slog.Any("error", err))
	}
}

func simulatedPaymentRef(cardNumber string) string {
	if len(cardNumber) < 4 {
		return "SIM"
	}

	return "SIM-" + cardNumber[len(cardNumber)-4:]
}
