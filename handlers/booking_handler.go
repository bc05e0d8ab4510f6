package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"soothely/models"
	"soothely/services/availability"
	"soothely/services/booking"
	"soothely/services/engine"
	"soothely/utils"
)

// BookingHandler exposes the staged search-select-confirm booking flow.
type BookingHandler struct {
	service *booking.Service
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(service *booking.Service) *BookingHandler {
	return &BookingHandler{service: service}
}

// StartSession handles POST /bookings/sessions.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	session, matches, err := h.service.StartSession(c.Request.Context(), req, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRequest):
			utils.JSONError(c, http.StatusBadRequest, "Invalid booking request", err.Error())
		case errors.Is(err, engine.ErrConfigMissing):
			utils.JSONError(c, http.StatusServiceUnavailable, "Scheduling not configured", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to start booking session", err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sessionId": session.ID,
		"providers": matches,
	})
}

// SelectProvider handles PUT /bookings/sessions/:id/provider.
func (h *BookingHandler) SelectProvider(c *gin.Context) {
	var body struct {
		ProviderID string `json:"providerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	session, err := h.service.SelectProvider(c.Request.Context(), c.Param("id"), body.ProviderID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrSessionNotFound):
			utils.JSONError(c, http.StatusNotFound, "Session not found", err.Error())
		case errors.Is(err, booking.ErrProviderUnknown):
			utils.JSONError(c, http.StatusUnprocessableEntity, "Provider not in session matches", err.Error())
		case errors.Is(err, engine.ErrNoWorkingHours):
			utils.JSONError(c, http.StatusUnprocessableEntity, "Provider has no working hours that day", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to select provider", err.Error())
		}
		return
	}

	times := make([]string, len(session.Slots))
	for i, s := range session.Slots {
		times[i] = models.MinutesToClock(s)
	}
	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.ID,
		"slots":     session.Slots,
		"slotTimes": times,
	})
}

// Confirm handles POST /bookings/sessions/:id/confirm.
func (h *BookingHandler) Confirm(c *gin.Context) {
	var body struct {
		CustomerID  string `json:"customerId"`
		StartMinute *int   `json:"startMinute" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	confirmation, err := h.service.Confirm(c.Request.Context(), c.Param("id"), body.CustomerID, *body.StartMinute, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrSessionNotFound):
			utils.JSONError(c, http.StatusNotFound, "Session not found", err.Error())
		case errors.Is(err, booking.ErrNoSelection), errors.Is(err, booking.ErrSlotNotOffered):
			utils.JSONError(c, http.StatusUnprocessableEntity, "Booking not confirmable", err.Error())
		case errors.Is(err, booking.ErrSlotTaken):
			utils.JSONError(c, http.StatusConflict, "Slot no longer available", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to confirm booking", err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, confirmation)
}

// Cancel handles DELETE /bookings/commitments/:id.
func (h *BookingHandler) Cancel(c *gin.Context) {
	if err := h.service.CancelCommitment(c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to cancel commitment", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
