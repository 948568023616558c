package handlers

import (
	"errors"
	"net/http"

	"consultorio/services/availability"
	"consultorio/services/consultation"
	"consultorio/services/payment"
	"consultorio/services/reservation"
	"consultorio/services/scheduling"
	"consultorio/services/user"
	"consultorio/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var rangeErr *scheduling.RangeError
	var dayErr *scheduling.DayError
	switch {
	case errors.As(err, &rangeErr):
		if errors.Is(err, scheduling.ErrOverlap) {
			return http.StatusConflict
		}
		return http.StatusBadRequest
	case errors.As(err, &dayErr):
		return http.StatusBadRequest
	case errors.Is(err, scheduling.ErrOverlap),
		errors.Is(err, scheduling.ErrSlotUnavailable),
		errors.Is(err, user.ErrDuplicateUser):
		return http.StatusConflict
	case errors.Is(err, scheduling.ErrInvalidHours),
		errors.Is(err, scheduling.ErrOutsideBusinessHours),
		errors.Is(err, scheduling.ErrInvalidDate),
		errors.Is(err, scheduling.ErrPastDay),
		errors.Is(err, scheduling.ErrPastSlot),
		errors.Is(err, scheduling.ErrRangeIndexOutOfBounds),
		errors.Is(err, availability.ErrNothingToAdd),
		errors.Is(err, availability.ErrNothingToBlock),
		errors.Is(err, user.ErrMissingFields),
		errors.Is(err, user.ErrWeakPassword),
		errors.Is(err, consultation.ErrMissingFields),
		errors.Is(err, reservation.ErrMissingGuest),
		errors.Is(err, payment.ErrInvalidPreference):
		return http.StatusBadRequest
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, reservation.ErrNotFound),
		errors.Is(err, consultation.ErrNotFound),
		errors.Is(err, mongo.ErrNoDocuments):
		return http.StatusNotFound
	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, utils.ErrResetTokenInvalid),
		errors.Is(err, utils.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, user.ErrInactiveUser),
		errors.Is(err, reservation.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err in the standard error shape. Internal errors are
// logged and hidden from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		getLogger(c).Error("request failed", zap.Error(err))
		utils.JSONError(c, status, "Internal server error", "")
		return
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.JSONError(c, status, "Not found", "")
		return
	}
	utils.JSONError(c, status, err.Error(), "")
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
}

func currentUserID(c *gin.Context) string {
	return c.GetString("userID")
}
