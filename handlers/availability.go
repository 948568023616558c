package handlers

import (
	"net/http"
	"strconv"
	"time"

	"consultorio/models"
	"consultorio/services/availability"
	"consultorio/services/scheduling"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	Service availability.AvailabilityService
}

func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetGlobalEnabledHandler handles GET /api/get_global_enabled.
func (h *AvailabilityHandler) GetGlobalEnabledHandler(c *gin.Context) {
	entries, err := h.Service.GetGlobalEnabled(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetGlobalEnabledByDayHandler handles GET /api/get_global_enabled_by_day/:day.
func (h *AvailabilityHandler) GetGlobalEnabledByDayHandler(c *gin.Context) {
	entries, err := h.Service.GetGlobalEnabledByDay(c.Request.Context(), c.Param("day"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// AddGlobalEnabledHandler handles POST /api/global_enabled. The body is either a
// single range or a JSON array of ranges.
func (h *AvailabilityHandler) AddGlobalEnabledHandler(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		badRequest(c, err)
		return
	}
	inputs, err := decodeOneOrMany[models.GlobalEnabledInput](raw)
	if err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.Service.AddGlobalEnabled(c.Request.Context(), inputs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ReplaceDayHandler handles PUT /api/global_enabled/:day.
func (h *AvailabilityHandler) ReplaceDayHandler(c *gin.Context) {
	var req models.ReplaceDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	saved, err := h.Service.ReplaceDay(c.Request.Context(), c.Param("day"), req.Ranges)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteGlobalEnabledHandler handles DELETE /api/delete_global_enabled/:id.
func (h *AvailabilityHandler) DeleteGlobalEnabledHandler(c *gin.Context) {
	if err := h.Service.DeleteGlobalEnabled(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "range deleted"})
}

// StartHoursHandler handles GET /api/global_enabled/:day/start_hours.
func (h *AvailabilityHandler) StartHoursHandler(c *gin.Context) {
	hours, err := h.Service.StartHours(c.Request.Context(), c.Param("day"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hours": hours})
}

// EndHoursHandler handles GET /api/global_enabled/:day/end_hours?start=HH:00.
func (h *AvailabilityHandler) EndHoursHandler(c *gin.Context) {
	start, err := scheduling.ParseHour(c.Query("start"))
	if err != nil {
		badRequest(c, err)
		return
	}
	hours, err := h.Service.EndHours(c.Request.Context(), c.Param("day"), start)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hours": hours})
}

// WeeklyGridHandler handles GET /api/weekly_grid.
func (h *AvailabilityHandler) WeeklyGridHandler(c *gin.Context) {
	grid, err := h.Service.WeeklyGrid(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, grid)
}

// BlockHoursHandler handles POST /api/block_multiple_hours.
func (h *AvailabilityHandler) BlockHoursHandler(c *gin.Context) {
	var req models.BlockHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	blocked, err := h.Service.BlockHours(c.Request.Context(), req.Dates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, blocked)
}

// ListBlockedHandler handles GET /api/bloquear?from=YYYY-MM-DD.
func (h *AvailabilityHandler) ListBlockedHandler(c *gin.Context) {
	blocked, err := h.Service.ListBlocked(c.Request.Context(), c.Query("from"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blocked)
}

// UnblockHandler handles DELETE /api/bloquear/:id.
func (h *AvailabilityHandler) UnblockHandler(c *gin.Context) {
	if err := h.Service.UnblockHour(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hour unblocked"})
}

// DaySlotsHandler handles GET /api/availability/:date.
func (h *AvailabilityHandler) DaySlotsHandler(c *gin.Context) {
	day, err := h.Service.DaySlots(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// MonthCalendarHandler handles GET /api/calendar/:year/:month.
func (h *AvailabilityHandler) MonthCalendarHandler(c *gin.Context) {
	year, errY := strconv.Atoi(c.Param("year"))
	month, errM := strconv.Atoi(c.Param("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 || year < 1970 {
		badRequest(c, scheduling.ErrInvalidDate)
		return
	}
	grid, err := h.Service.MonthCalendar(c.Request.Context(), year, time.Month(month))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, grid)
}
