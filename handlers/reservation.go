package handlers

import (
	"net/http"

	"consultorio/middleware"
	"consultorio/models"
	"consultorio/services/reservation"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	Service reservation.ReservationService
}

func NewReservationHandler(svc reservation.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

// CreateHandler handles POST /api/reservations for logged-in patients.
func (h *ReservationHandler) CreateHandler(c *gin.Context) {
	var req models.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.Service.CreateReservation(c.Request.Context(), currentUserID(c), req.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// CreateGuestHandler handles POST /api/reservations/guest.
func (h *ReservationHandler) CreateGuestHandler(c *gin.Context) {
	var req models.GuestReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.Service.CreateGuestReservation(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ListHandler handles GET /api/reservations?from=&to= (admin).
func (h *ReservationHandler) ListHandler(c *gin.Context) {
	list, err := h.Service.ListReservations(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// MineHandler handles GET /api/reservations/mine.
func (h *ReservationHandler) MineHandler(c *gin.Context) {
	list, err := h.Service.ListUserReservations(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CancelHandler handles DELETE /api/reservations/:id.
func (h *ReservationHandler) CancelHandler(c *gin.Context) {
	actor := reservation.Actor{
		UserID: currentUserID(c),
		Admin:  c.GetString(middleware.CtxRole) == string(models.RoleAdmin),
	}
	res, err := h.Service.CancelReservation(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ICSHandler handles GET /api/reservations.ics (admin).
func (h *ReservationHandler) ICSHandler(c *gin.Context) {
	data, err := h.Service.ExportICS(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="reservas.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}
