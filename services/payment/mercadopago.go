package payment

import (
	"context"
	"fmt"

	"consultorio/models"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

type mercadoPagoGateway struct {
	client     preference.Client
	successURL string
	cancelURL  string
}

func NewMercadoPagoGateway(accessToken, successURL, cancelURL string) (Gateway, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("mercadopago access token is not configured")
	}
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &mercadoPagoGateway{
		client:     preference.NewClient(cfg),
		successURL: successURL,
		cancelURL:  cancelURL,
	}, nil
}

func (g *mercadoPagoGateway) Name() string { return "mercadopago" }

func (g *mercadoPagoGateway) CreatePreference(ctx context.Context, req models.PreferenceRequest) (*models.Preference, error) {
	request := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      req.Description,
				Quantity:   req.Quantity,
				UnitPrice:  req.Price,
				CurrencyID: req.CurrencyID,
			},
		},
		ExternalReference: req.Reference,
	}
	if g.successURL != "" {
		request.BackURLs = &preference.BackURLsRequest{
			Success: g.successURL,
			Pending: g.successURL,
			Failure: g.cancelURL,
		}
		request.AutoReturn = "approved"
	}

	resp, err := g.client.Create(ctx, request)
	if err != nil {
		return nil, err
	}
	return &models.Preference{ID: resp.ID, InitPoint: resp.InitPoint}, nil
}
