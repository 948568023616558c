// Package apitest boots the full HTTP API over in-memory repositories for
// end-to-end tests of the server and its clients.
package apitest

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"consultorio/database/repository/memory"
	"consultorio/handlers"
	"consultorio/models"
	"consultorio/routes"
	"consultorio/services/availability"
	"consultorio/services/consultation"
	"consultorio/services/payment"
	"consultorio/services/reservation"
	"consultorio/services/scheduling"
	"consultorio/services/user"
	"consultorio/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

const (
	AdminUsername = "admin"
	AdminPassword = "admin-pass"
	AdminEmail    = "admin@consultorio.test"
)

// Now is the fixed instant the services see: Monday 2026-03-02 08:30 UTC.
var Now = time.Date(2026, time.March, 2, 8, 30, 0, 0, time.UTC)

// Server is a running API plus handles on its moving parts.
type Server struct {
	*httptest.Server
	Users        *user.DefaultUserService
	Availability *availability.DefaultAvailabilityService
	Gateway      *payment.FakeGateway
	Redis        *miniredis.Miniredis
}

// URL of the /api group.
func (s *Server) APIURL() string { return s.URL + "/api" }

// New starts a server with an admin account and Monday to Friday 09-12 and
// 14-18 opening hours. Everything is torn down with the test.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	clock := func() time.Time { return Now }
	reservations := &memory.ReservationRepo{}
	tokens := &memory.BlockedTokenRepo{}

	users := &user.DefaultUserService{
		Repo:        &memory.UserRepo{},
		Tokens:      tokens,
		AuthCache:   rdb,
		TokenTTL:    time.Hour,
		FrontendURL: "http://localhost:3000",
	}
	avail := &availability.DefaultAvailabilityService{
		Weekly:       &memory.GlobalEnabledRepo{},
		Blocked:      &memory.BlockedHourRepo{},
		Reservations: reservations,
		Loc:          time.UTC,
		Clock:        clock,
	}
	res := &reservation.DefaultReservationService{
		Repo:         reservations,
		Slots:        avail,
		ReminderLead: 24 * time.Hour,
		Clock:        clock,
	}
	gateway := &payment.FakeGateway{}
	payments := &payment.DefaultPaymentService{
		Gateway:  gateway,
		Defaults: payment.Defaults{Description: "Consulta", Price: 15000, Currency: "ARS"},
	}

	ctx := context.Background()
	require.NoError(t, users.EnsureAdmin(ctx, AdminUsername, AdminPassword, AdminEmail))

	var opening []models.GlobalEnabledInput
	for _, day := range scheduling.PossibleDays {
		opening = append(opening,
			models.GlobalEnabledInput{Day: string(day), StartHour: 9, EndHour: 12},
			models.GlobalEnabledInput{Day: string(day), StartHour: 14, EndHour: 18},
		)
	}
	_, err := avail.AddGlobalEnabled(ctx, opening)
	require.NoError(t, err)

	router := gin.New()
	router.Use(utils.ErrorHandler())
	bundle := handlers.NewHandlerBundle(users, avail, res, &consultation.DefaultConsultationService{Repo: &memory.ConsultationRepo{}}, payments)
	bundle.RequestsPerMin = 10000
	routes.RegisterRoutes(router, bundle)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &Server{Server: srv, Users: users, Availability: avail, Gateway: gateway, Redis: mr}
}
