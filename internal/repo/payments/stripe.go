// Package payments wraps the Stripe hosted checkout API: one call to
// open a payment session, one to verify it after the redirect returns.
package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	stripeclient "github.com/stripe/stripe-go/v81/client"

	"github.com/lamnguyen-ct/storefront/internal/config"
)

// LineItem is one purchasable row of a checkout session. UnitAmount is
// in the smallest currency unit.
type LineItem struct {
	Name       string
	Image      string
	UnitAmount int64
	Quantity   int64
}

// Session is the provider-assigned handle for one checkout attempt.
type Session struct {
	ID          string
	URL         string
	AmountTotal int64
	Currency    string
	Paid        bool
}

type Client interface {
	CreateCheckoutSession(ctx context.Context, items []LineItem, successURL, cancelURL string) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
}

type client struct {
	api      *stripeclient.API
	currency string
}

func NewClient(cfg *config.Config) Client {
	api := &stripeclient.API{}
	api.Init(cfg.Stripe.SecretKey, nil)
	return &client{
		api:      api,
		currency: cfg.Stripe.Currency,
	}
}

func (c *client) CreateCheckoutSession(ctx context.Context, items []LineItem, successURL, cancelURL string) (*Session, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, it := range items {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(it.Name),
		}
		if it.Image != "" {
			productData.Images = stripe.StringSlice([]string{it.Image})
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(c.currency),
				ProductData: productData,
				UnitAmount:  stripe.Int64(it.UnitAmount),
			},
			Quantity: stripe.Int64(it.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(successURL),
		CancelURL:          stripe.String(cancelURL),
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			SetupFutureUsage: stripe.String("off_session"),
		},
	}
	params.Context = ctx

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return fromStripe(s), nil
}

func (c *client) GetSession(ctx context.Context, id string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := c.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("get checkout session: %w", err)
	}
	return fromStripe(s), nil
}

func fromStripe(s *stripe.CheckoutSession) *Session {
	return &Session{
		ID:          s.ID,
		URL:         s.URL,
		AmountTotal: s.AmountTotal,
		Currency:    string(s.Currency),
		Paid: s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid ||
			s.PaymentStatus == stripe.CheckoutSessionPaymentStatusNoPaymentRequired,
	}
}
