package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"soothely/models"
	"soothely/services/availability"
	"soothely/services/engine"
	"soothely/utils"
)

// AvailabilityHandler exposes the provider search surface.
type AvailabilityHandler struct {
	service *availability.Service
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(service *availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// Search handles POST /availability/search.
func (h *AvailabilityHandler) Search(c *gin.Context) {
	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	results, err := h.service.Search(c.Request.Context(), req, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRequest):
			utils.JSONError(c, http.StatusBadRequest, "Invalid search request", err.Error())
		case errors.Is(err, engine.ErrConfigMissing):
			utils.JSONError(c, http.StatusServiceUnavailable, "Scheduling not configured", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Search failed", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"providers": results})
}

// Slots handles GET /availability/providers/:id/slots.
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	providerID := c.Param("id")
	date := c.Query("date")

	var query struct {
		DurationMinutes int `form:"durationMinutes" binding:"required,gt=0"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	slots, err := h.service.SlotsFor(c.Request.Context(), providerID, date, query.DurationMinutes, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRequest):
			utils.JSONError(c, http.StatusBadRequest, "Invalid slot request", err.Error())
		case errors.Is(err, engine.ErrNoWorkingHours):
			c.JSON(http.StatusOK, gin.H{"slots": []int{}, "slotTimes": []string{}})
		case errors.Is(err, engine.ErrConfigMissing):
			utils.JSONError(c, http.StatusServiceUnavailable, "Scheduling not configured", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Slot lookup failed", err.Error())
		}
		return
	}

	times := make([]string, len(slots))
	for i, s := range slots {
		times[i] = models.MinutesToClock(s)
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots, "slotTimes": times})
}
