package handlers

import (
	"context"
	"net/http"

	"consultorio/models"
	"consultorio/services/consultation"

	"github.com/gin-gonic/gin"
)

type ConsultationHandler struct {
	Service consultation.ConsultationService
}

func NewConsultationHandler(svc consultation.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{Service: svc}
}

// SendMessageHandler handles POST /api/message (public contact form).
func (h *ConsultationHandler) SendMessageHandler(c *gin.Context) {
	var req models.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	msg, err := h.Service.SendMessage(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ListHandler handles GET /api/consultations.
func (h *ConsultationHandler) ListHandler(c *gin.Context) {
	list, err := h.Service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListDeletedHandler handles GET /api/deleted_consultations.
func (h *ConsultationHandler) ListDeletedHandler(c *gin.Context) {
	list, err := h.Service.ListDeleted(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetHandler handles GET /api/consultation/:id.
func (h *ConsultationHandler) GetHandler(c *gin.Context) {
	msg, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *ConsultationHandler) update(c *gin.Context, op func(context.Context, string) (*models.Consultation, error)) {
	msg, err := op(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// MarkReadHandler handles PUT /api/consultations/:id/mark_as_read.
func (h *ConsultationHandler) MarkReadHandler(c *gin.Context) {
	h.update(c, h.Service.MarkRead)
}

// MarkUnreadHandler handles PUT /api/consultations/:id/mark_as_unread.
func (h *ConsultationHandler) MarkUnreadHandler(c *gin.Context) {
	h.update(c, h.Service.MarkUnread)
}

// SoftDeleteHandler handles PUT /api/deleted_consultations/:id.
func (h *ConsultationHandler) SoftDeleteHandler(c *gin.Context) {
	h.update(c, h.Service.SoftDelete)
}

// RestoreHandler handles PUT /api/deleted_consultations/:id/restore.
func (h *ConsultationHandler) RestoreHandler(c *gin.Context) {
	h.update(c, h.Service.Restore)
}

// HardDeleteHandler handles DELETE /api/deleted_consultations/:id.
func (h *ConsultationHandler) HardDeleteHandler(c *gin.Context) {
	if err := h.Service.HardDelete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "consultation deleted"})
}
