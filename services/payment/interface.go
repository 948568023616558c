package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"consultorio/models"
	"consultorio/utils"

	"go.uber.org/zap"
)

var ErrInvalidPreference = errors.New("price and quantity must be positive")

// Gateway creates a hosted checkout for a single line item.
type Gateway interface {
	Name() string
	CreatePreference(ctx context.Context, req models.PreferenceRequest) (*models.Preference, error)
}

// Defaults fill the fields the caller leaves empty.
type Defaults struct {
	Description string
	Price       float64
	Currency    string
}

type PaymentService interface {
	CreatePreference(ctx context.Context, req models.PreferenceRequest) (*models.Preference, error)
}

type DefaultPaymentService struct {
	Gateway  Gateway
	Defaults Defaults
}

// CreatePreference applies the configured defaults and asks the gateway for a checkout.
func (s *DefaultPaymentService) CreatePreference(ctx context.Context, req models.PreferenceRequest) (*models.Preference, error) {
	if strings.TrimSpace(req.Description) == "" {
		req.Description = s.Defaults.Description
	}
	if req.Price == 0 {
		req.Price = s.Defaults.Price
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.CurrencyID == "" {
		req.CurrencyID = s.Defaults.Currency
	}
	req.CurrencyID = strings.ToUpper(req.CurrencyID)
	req.Price = utils.RoundAmount(req.Price)
	if req.Price <= 0 || req.Quantity <= 0 {
		return nil, ErrInvalidPreference
	}

	pref, err := s.Gateway.CreatePreference(ctx, req)
	if err != nil {
		utils.PaymentPreferences.WithLabelValues(s.Gateway.Name(), "error").Inc()
		utils.GetLogger().Error("payment preference failed", zap.String("provider", s.Gateway.Name()), zap.Error(err))
		return nil, fmt.Errorf("failed to create payment preference: %w", err)
	}
	utils.PaymentPreferences.WithLabelValues(s.Gateway.Name(), "ok").Inc()
	pref.Provider = s.Gateway.Name()
	return pref, nil
}

// NewGateway picks the gateway named by provider.
func NewGateway(provider, mercadoPagoToken, stripeKey, successURL, cancelURL string) (Gateway, error) {
	switch strings.ToLower(provider) {
	case "mercadopago", "":
		return NewMercadoPagoGateway(mercadoPagoToken, successURL, cancelURL)
	case "stripe":
		return NewStripeGateway(stripeKey, successURL, cancelURL)
	case "fake":
		return &FakeGateway{}, nil
	default:
		return nil, fmt.Errorf("unsupported payment provider: %s", provider)
	}
}
