package payment

import (
	"context"
	"errors"
	"testing"

	"consultorio/models"
	"consultorio/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func newService(gw Gateway) *DefaultPaymentService {
	utils.SetLogger(zap.NewNop())
	return &DefaultPaymentService{
		Gateway:  gw,
		Defaults: Defaults{Description: "Honorarios", Price: 15000, Currency: "ars"},
	}
}

func TestCreatePreferenceFillsDefaults(t *testing.T) {
	gw := &FakeGateway{}
	svc := newService(gw)

	pref, err := svc.CreatePreference(context.Background(), models.PreferenceRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, pref.ID)
	assert.Equal(t, "fake", pref.Provider)

	require.Len(t, gw.Requests, 1)
	got := gw.Requests[0]
	assert.Equal(t, "Honorarios", got.Description)
	assert.Equal(t, 15000.0, got.Price)
	assert.Equal(t, 1, got.Quantity)
	assert.Equal(t, "ARS", got.CurrencyID)
}

func TestCreatePreferenceKeepsCallerValues(t *testing.T) {
	gw := &FakeGateway{}
	svc := newService(gw)

	_, err := svc.CreatePreference(context.Background(), models.PreferenceRequest{
		Description: "Sesión doble", Price: 199.999, Quantity: 2, CurrencyID: "usd", Reference: "res-1",
	})
	require.NoError(t, err)
	got := gw.Requests[0]
	assert.Equal(t, "Sesión doble", got.Description)
	assert.Equal(t, 200.0, got.Price)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, "USD", got.CurrencyID)
	assert.Equal(t, "res-1", got.Reference)
}

func TestCreatePreferenceErrors(t *testing.T) {
	gw := &FakeGateway{}
	svc := newService(gw)

	_, err := svc.CreatePreference(context.Background(), models.PreferenceRequest{Price: -5})
	assert.ErrorIs(t, err, ErrInvalidPreference)
	assert.Empty(t, gw.Requests)

	boom := errors.New("provider down")
	gw.Err = boom
	_, err = svc.CreatePreference(context.Background(), models.PreferenceRequest{})
	assert.ErrorIs(t, err, boom)
}

func TestStripeGatewayBuildsCheckoutSession(t *testing.T) {
	var captured *stripe.CheckoutSessionParams
	gw := &stripeGateway{
		successURL: "https://ok.test",
		cancelURL:  "https://cancel.test",
		newSession: func(p *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
			captured = p
			return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}, nil
		},
	}
	svc := newService(gw)

	pref, err := svc.CreatePreference(context.Background(), models.PreferenceRequest{Price: 100.5, CurrencyID: "ARS", Reference: "res-9"})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", pref.ID)
	assert.Equal(t, "stripe", pref.Provider)

	require.NotNil(t, captured)
	require.Len(t, captured.LineItems, 1)
	item := captured.LineItems[0]
	assert.Equal(t, int64(10050), *item.PriceData.UnitAmount)
	assert.Equal(t, "ars", *item.PriceData.Currency)
	assert.Equal(t, "Honorarios", *item.PriceData.ProductData.Name)
	assert.Equal(t, "res-9", *captured.ClientReferenceID)
	assert.Equal(t, "https://ok.test", *captured.SuccessURL)
}

func TestNewGateway(t *testing.T) {
	gw, err := NewGateway("fake", "", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "fake", gw.Name())

	_, err = NewGateway("mercadopago", "", "", "", "")
	assert.Error(t, err)
	_, err = NewGateway("stripe", "", "", "", "")
	assert.Error(t, err)
	_, err = NewGateway("paypal", "x", "x", "", "")
	assert.Error(t, err)

	gw, err = NewGateway("", "TEST-token", "", "https://ok.test", "https://cancel.test")
	require.NoError(t, err)
	assert.Equal(t, "mercadopago", gw.Name())
}
