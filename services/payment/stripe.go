package payment

import (
	"context"
	"fmt"
	"strings"

	"consultorio/models"
	"consultorio/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

type stripeGateway struct {
	successURL string
	cancelURL  string
	newSession func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

func NewStripeGateway(key, successURL, cancelURL string) (Gateway, error) {
	if key == "" {
		return nil, fmt.Errorf("stripe key is not configured")
	}
	stripe.Key = key
	return &stripeGateway{successURL: successURL, cancelURL: cancelURL, newSession: session.New}, nil
}

func (g *stripeGateway) Name() string { return "stripe" }

// CreatePreference opens a Checkout Session; its id plays the preference id.
func (g *stripeGateway) CreatePreference(ctx context.Context, req models.PreferenceRequest) (*models.Preference, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(strings.ToLower(req.CurrencyID)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
					UnitAmount: stripe.Int64(utils.ToMinorUnits(req.Price, req.CurrencyID)),
				},
				Quantity: stripe.Int64(int64(req.Quantity)),
			},
		},
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
	}
	if req.Reference != "" {
		params.ClientReferenceID = stripe.String(req.Reference)
	}
	params.Context = ctx

	s, err := g.newSession(params)
	if err != nil {
		return nil, err
	}
	return &models.Preference{ID: s.ID, InitPoint: s.URL}, nil
}
