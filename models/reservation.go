package models

import (
	"time"

	"consultorio/services/scheduling"
)

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation books one hour slot, either for a registered patient (UserID) or a guest.
type Reservation struct {
	ID          string            `bson:"id" json:"id"`
	Date        string            `bson:"date" json:"date"`
	Hour        scheduling.Hour   `bson:"hour" json:"hour"`
	UserID      string            `bson:"user_id,omitempty" json:"user_id,omitempty"`
	GuestName   string            `bson:"guest_name,omitempty" json:"guest_name,omitempty"`
	GuestPhone  string            `bson:"guest_phone,omitempty" json:"guest_phone,omitempty"`
	Status      ReservationStatus `bson:"status" json:"status"`
	CreatedAt   time.Time         `bson:"created_at" json:"created_at"`
	CancelledAt *time.Time        `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
}

// Start is the instant the reservation begins in loc.
func (r Reservation) Start(loc *time.Location) (time.Time, error) {
	day, err := scheduling.ParseDate(r.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return scheduling.SlotTime(day, r.Hour), nil
}

// ReservationRequest is submitted by a logged-in patient.
type ReservationRequest struct {
	Date string `json:"date" binding:"required"` // "YYYY-MM-DDTHH:00:00"
}

// GuestReservationRequest is submitted from the public calendar.
type GuestReservationRequest struct {
	Date       string `json:"date" binding:"required"` // "YYYY-MM-DDTHH:00:00"
	GuestName  string `json:"guest_name" binding:"required"`
	GuestPhone string `json:"guest_phone" binding:"required"`
}

// ReminderPayload is the body of a reservation reminder task.
type ReminderPayload struct {
	ReservationID string `json:"reservationId"`
	Slot          string `json:"slot"`
	UserID        string `json:"userId,omitempty"`
	GuestName     string `json:"guestName,omitempty"`
	GuestPhone    string `json:"guestPhone,omitempty"`
}

// EmailPayload is the body of an outbound email task.
type EmailPayload struct {
	To      string `json:"to"`
	ToName  string `json:"toName,omitempty"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
