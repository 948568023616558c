package handlers

import (
	"errors"
	"io"
	"net/http"

	"consultorio/models"
	"consultorio/services/payment"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	Service payment.PaymentService
}

func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// CreatePreferenceHandler handles POST /api/create_preference. An empty body
// uses the configured service price and description.
func (h *PaymentHandler) CreatePreferenceHandler(c *gin.Context) {
	var req models.PreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}
	pref, err := h.Service.CreatePreference(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pref)
}
