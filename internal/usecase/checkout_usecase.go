package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"

	"github.com/carousell/ct-go/pkg/logger"

	"github.com/lamnguyen-ct/storefront/internal/events"
	"github.com/lamnguyen-ct/storefront/internal/models"
	"github.com/lamnguyen-ct/storefront/internal/repo/mongodb"
	"github.com/lamnguyen-ct/storefront/internal/repo/payments"
)

// CheckoutUsecase turns a cart into a hosted payment session and
// verifies the session once the redirect returns.
type CheckoutUsecase interface {
	CreateSession(ctx context.Context, items []models.CartItem, origin string) (*payments.Session, error)
	VerifyPayment(ctx context.Context, sessionID string) (*models.Order, error)
	RecentOrders(ctx context.Context, limit int64) ([]*models.Order, error)
}

type checkoutUsecase struct {
	payments  payments.Client
	orders    mongodb.OrderRepository
	publisher events.Publisher
	log       *logger.Logger
}

func NewCheckoutUsecase(
	paymentsClient payments.Client,
	orders mongodb.OrderRepository,
	publisher events.Publisher,
) CheckoutUsecase {
	return &checkoutUsecase{
		payments:  paymentsClient,
		orders:    orders,
		publisher: publisher,
		log:       logger.MustNamed("checkout"),
	}
}

// CreateSession opens a payment session for the given items. An empty
// cart is rejected here, not only in the UI.
func (uc *checkoutUsecase) CreateSession(ctx context.Context, items []models.CartItem, origin string) (*payments.Session, error) {
	if len(items) == 0 {
		return nil, models.ErrEmptyCart
	}

	lineItems := make([]payments.LineItem, 0, len(items))
	for _, it := range items {
		lineItems = append(lineItems, payments.LineItem{
			Name:       it.Name,
			Image:      it.Image,
			UnitAmount: ToMinorUnits(it.Price),
			Quantity:   int64(it.Quantity),
		})
	}

	successURL := origin + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := origin + "/checkout/failure"

	session, err := uc.payments.CreateCheckoutSession(ctx, lineItems, successURL, cancelURL)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// VerifyPayment resolves one returned session id: paid sessions get an
// order recorded exactly once, anything else is a verification failure.
func (uc *checkoutUsecase) VerifyPayment(ctx context.Context, sessionID string) (*models.Order, error) {
	if existing, err := uc.orders.GetBySessionID(ctx, sessionID); err == nil {
		return existing, nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("verify payment: %w", err)
	}

	session, err := uc.payments.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}
	if !session.Paid {
		return nil, models.ErrPaymentNotCompleted
	}

	order := &models.Order{
		SessionID:   session.ID,
		AmountTotal: session.AmountTotal,
		Currency:    session.Currency,
		Status:      models.OrderStatusPaid,
	}
	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("record order: %w", err)
	}

	if err := uc.publisher.PublishOrderCompleted(ctx, order); err != nil {
		uc.log.Warnw("failed to publish order event",
			"session_id", order.SessionID, "error", err)
	}

	return order, nil
}

func (uc *checkoutUsecase) RecentOrders(ctx context.Context, limit int64) ([]*models.Order, error) {
	orders, err := uc.orders.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	return orders, nil
}

// ToMinorUnits converts a decimal price to the smallest currency unit,
// rounding to the nearest integer.
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// FailureRedirectURL builds the local failure page URL carrying the
// error message as a query parameter.
func FailureRedirectURL(origin string, err error) string {
	u := origin + "/checkout/failure"
	if err != nil {
		u += "?error=" + url.QueryEscape(err.Error())
	}
	return u
}
