package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"soothely/models"
	"soothely/services/engine"
	"soothely/services/quote"
	"soothely/utils"
)

// QuoteHandler exposes the multi-day quote lifecycle.
type QuoteHandler struct {
	service *quote.Service
}

// NewQuoteHandler constructs a QuoteHandler.
func NewQuoteHandler(service *quote.Service) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// Create handles POST /quotes.
func (h *QuoteHandler) Create(c *gin.Context) {
	var q models.Quote
	if err := c.ShouldBindJSON(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.service.Create(&q)
	if err != nil {
		utils.JSONError(c, http.StatusUnprocessableEntity, "Invalid quote", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Get handles GET /quotes/:id.
func (h *QuoteHandler) Get(c *gin.Context) {
	q, err := h.service.Get(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Quote not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, q)
}

// UpdateSchedule handles PUT /quotes/:id/schedule.
func (h *QuoteHandler) UpdateSchedule(c *gin.Context) {
	var body struct {
		Days                   []models.QuoteDay `json:"days" binding:"required"`
		NumberOfSessions       int               `json:"numberOfSessions"`
		SessionDurationMinutes int               `json:"sessionDurationMinutes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	q, err := h.service.UpdateSchedule(c.Param("id"), body.Days, body.NumberOfSessions, body.SessionDurationMinutes)
	if err != nil {
		if errors.Is(err, quote.ErrInvalidTransition) {
			utils.JSONError(c, http.StatusConflict, "Quote cannot be edited", err.Error())
			return
		}
		utils.JSONError(c, http.StatusNotFound, "Quote not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, q)
}

// Validate handles POST /quotes/:id/validate.
func (h *QuoteHandler) Validate(c *gin.Context) {
	q, check, err := h.service.Validate(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, quote.ErrScheduleShortfall):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"quote": q, "check": check, "message": err.Error()})
		case errors.Is(err, engine.ErrBelowMinimumDuration),
			errors.Is(err, engine.ErrNonSequentialDates):
			utils.JSONError(c, http.StatusUnprocessableEntity, "Schedule invalid", err.Error())
		case errors.Is(err, quote.ErrInvalidTransition):
			utils.JSONError(c, http.StatusConflict, "Quote cannot be validated", err.Error())
		default:
			utils.JSONError(c, http.StatusNotFound, "Quote not found", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": q, "check": check})
}

// Price handles POST /quotes/:id/price.
func (h *QuoteHandler) Price(c *gin.Context) {
	q, err := h.service.Price(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, quote.ErrInvalidTransition):
			utils.JSONError(c, http.StatusConflict, "Quote must be validated first", err.Error())
		case errors.Is(err, engine.ErrBelowMinimumDuration):
			utils.JSONError(c, http.StatusUnprocessableEntity, "Quote below minimum duration", err.Error())
		default:
			utils.JSONError(c, http.StatusNotFound, "Quote not found", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, q)
}

// Submit handles POST /quotes/:id/submit.
func (h *QuoteHandler) Submit(c *gin.Context) {
	q, err := h.service.Submit(c.Param("id"))
	if err != nil {
		if errors.Is(err, quote.ErrInvalidTransition) {
			utils.JSONError(c, http.StatusConflict, "Quote must be priced first", err.Error())
			return
		}
		utils.JSONError(c, http.StatusNotFound, "Quote not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, q)
}
