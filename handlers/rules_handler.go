package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"soothely/models"
	"soothely/services/engine"
	"soothely/services/rules"
	"soothely/utils"
)

// RulesHandler exposes the admin surface for business, pricing and duration
// rules.
type RulesHandler struct {
	service *rules.Service
}

// NewRulesHandler constructs a RulesHandler.
func NewRulesHandler(service *rules.Service) *RulesHandler {
	return &RulesHandler{service: service}
}

// GetBusinessRules handles GET /admin/rules/business.
func (h *RulesHandler) GetBusinessRules(c *gin.Context) {
	r, err := h.service.GetBusinessRules()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load business rules", err.Error())
		return
	}
	if r == nil {
		utils.JSONError(c, http.StatusNotFound, "Business rules not configured", "")
		return
	}
	c.JSON(http.StatusOK, r)
}

// UpdateBusinessRules handles PUT /admin/rules/business.
func (h *RulesHandler) UpdateBusinessRules(c *gin.Context) {
	var r models.BusinessRules
	if err := c.ShouldBindJSON(&r); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := h.service.UpdateBusinessRules(c.Request.Context(), &r); err != nil {
		if errors.Is(err, rules.ErrInvalidBusiness) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "Invalid business rules", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update business rules", err.Error())
		return
	}
	c.JSON(http.StatusOK, r)
}

// ListPricingRules handles GET /admin/rules/pricing.
func (h *RulesHandler) ListPricingRules(c *gin.Context) {
	list, err := h.service.ListPricingRules()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list pricing rules", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": list})
}

// CreatePricingRule handles POST /admin/rules/pricing.
func (h *RulesHandler) CreatePricingRule(c *gin.Context) {
	var rule models.PricingRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := h.service.CreatePricingRule(c.Request.Context(), &rule); err != nil {
		switch {
		case errors.Is(err, rules.ErrRuleOverlap):
			utils.JSONError(c, http.StatusConflict, "Pricing rule overlap", err.Error())
		case errors.Is(err, rules.ErrInvalidRule):
			utils.JSONError(c, http.StatusUnprocessableEntity, "Invalid pricing rule", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to create pricing rule", err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, rule)
}

// DeletePricingRule handles DELETE /admin/rules/pricing/:id.
func (h *RulesHandler) DeletePricingRule(c *gin.Context) {
	if err := h.service.DeletePricingRule(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to delete pricing rule", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListDurationRules handles GET /admin/rules/duration.
func (h *RulesHandler) ListDurationRules(c *gin.Context) {
	list, err := h.service.ListDurationRules()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list duration rules", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": list})
}

// CreateDurationRule handles POST /admin/rules/duration.
func (h *RulesHandler) CreateDurationRule(c *gin.Context) {
	var rule models.DurationRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := h.service.CreateDurationRule(c.Request.Context(), &rule); err != nil {
		if errors.Is(err, rules.ErrInvalidRule) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "Invalid duration rule", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create duration rule", err.Error())
		return
	}
	c.JSON(http.StatusCreated, rule)
}

// FeesPreview handles GET /admin/fees/preview. Lets an operator check what
// a job would pay out under the current rules before committing to it.
func (h *RulesHandler) FeesPreview(c *gin.Context) {
	var query struct {
		Date            string `form:"date" binding:"required"`
		StartMinute     int    `form:"startMinute"`
		DurationMinutes int    `form:"durationMinutes" binding:"required,gt=0"`
		ProviderCount   int    `form:"providerCount"`
		Arrangement     string `form:"arrangement"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}
	date, err := time.Parse("2006-01-02", query.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date", err.Error())
		return
	}
	if query.Arrangement == "" {
		query.Arrangement = models.ArrangementSplit
	}

	snap, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load rules", err.Error())
		return
	}

	fee, err := engine.TherapistFee(snap.Business, date, query.StartMinute, query.DurationMinutes, query.ProviderCount, query.Arrangement)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrConfigMissing):
			utils.JSONError(c, http.StatusServiceUnavailable, "Scheduling not configured", err.Error())
		case errors.Is(err, engine.ErrInvalidArrangement):
			utils.JSONError(c, http.StatusUnprocessableEntity, "Invalid arrangement", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Fee preview failed", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, fee)
}

// DeleteDurationRule handles DELETE /admin/rules/duration/:id.
func (h *RulesHandler) DeleteDurationRule(c *gin.Context) {
	if err := h.service.DeleteDurationRule(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to delete duration rule", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
