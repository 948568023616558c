package payment

import (
	"context"
	"sync"

	"consultorio/models"

	"github.com/google/uuid"
)

// FakeGateway records requests and returns synthetic preferences. Err, when
// set, is returned instead.
type FakeGateway struct {
	mu       sync.Mutex
	Requests []models.PreferenceRequest
	Err      error
}

func (g *FakeGateway) Name() string { return "fake" }

func (g *FakeGateway) CreatePreference(_ context.Context, req models.PreferenceRequest) (*models.Preference, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Requests = append(g.Requests, req)
	if g.Err != nil {
		return nil, g.Err
	}
	id := "pref-" + uuid.New().String()
	return &models.Preference{ID: id, InitPoint: "https://checkout.invalid/" + id}, nil
}
