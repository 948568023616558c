// Package payment mounts the checkout widget for a consultation fee.
package payment

import (
	"context"
	"errors"

	"consultorio/models"
)

var ErrNotLoaded = errors.New("payment preference not loaded")

type Backend interface {
	CreatePreference(ctx context.Context, req models.PreferenceRequest) (*models.Preference, error)
}

// Panel holds the preference the widget is mounted with. An empty request lets the
// server fill in the configured fee.
type Panel struct {
	backend Backend
	Request models.PreferenceRequest

	pref *models.Preference
	Err  string
}

func New(backend Backend, req models.PreferenceRequest) *Panel {
	return &Panel{backend: backend, Request: req}
}

func (p *Panel) Load(ctx context.Context) error {
	pref, err := p.backend.CreatePreference(ctx, p.Request)
	if err != nil {
		p.pref = nil
		p.Err = err.Error()
		return err
	}
	p.pref = pref
	p.Err = ""
	return nil
}

func (p *Panel) Loaded() bool { return p.pref != nil }

func (p *Panel) PreferenceID() string {
	if p.pref == nil {
		return ""
	}
	return p.pref.ID
}

// CheckoutURL is where the payer completes the payment.
func (p *Panel) CheckoutURL() (string, error) {
	if p.pref == nil {
		return "", ErrNotLoaded
	}
	return p.pref.InitPoint, nil
}
