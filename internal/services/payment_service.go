package services

import (
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"

	"github.com/loftmebel/backend/internal/config"
)

// PaymentService creates hosted checkout links for the configured demo line
// item. Repeated calls create distinct sessions; no idempotency key is
// applied, which is a known limitation.
type PaymentService struct {
	cfg config.PaymentConfig
}

func NewPaymentService(cfg config.PaymentConfig) *PaymentService {
	stripe.Key = cfg.StripeSecretKey

	return &PaymentService{cfg: cfg}
}

type CreateCheckoutRequest struct {
	SuccessURL string `json:"success_url" validate:"required,url"`
	CancelURL  string `json:"cancel_url" validate:"required,url"`
}

// CreateCheckoutLink returns the provider's hosted checkout URL for a single
// line item taken from configuration.
func (s *PaymentService) CreateCheckoutLink(req CreateCheckoutRequest) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.cfg.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(s.cfg.CheckoutItemName),
					},
					UnitAmount: stripe.Int64(s.cfg.CheckoutItemAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return sess.URL, nil
}
