package handlers

import (
	"consultorio/services/availability"
	"consultorio/services/consultation"
	"consultorio/services/payment"
	"consultorio/services/reservation"
	"consultorio/services/user"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Availability  *AvailabilityHandler
	Reservations  *ReservationHandler
	Consultations *ConsultationHandler
	Payments      *PaymentHandler

	// Sessions backs the JWT middleware's revocation check.
	Sessions user.UserService
	// RequestsPerMin feeds the rate limiter; zero uses its default.
	RequestsPerMin int
}

// NewHandlerBundle builds every handler from its service.
func NewHandlerBundle(
	users user.UserService,
	avail availability.AvailabilityService,
	reservations reservation.ReservationService,
	consultations consultation.ConsultationService,
	payments payment.PaymentService,
) *HandlerBundle {
	return &HandlerBundle{
		Auth:          NewAuthHandler(users),
		Users:         NewUserHandler(users),
		Availability:  NewAvailabilityHandler(avail),
		Reservations:  NewReservationHandler(reservations),
		Consultations: NewConsultationHandler(consultations),
		Payments:      NewPaymentHandler(payments),
		Sessions:      users,
	}
}
