package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	providerRepo "soothely/database/repository/provider"
	"soothely/models"
	"soothely/utils"
)

// ProviderHandler exposes the admin CRUD surface for therapists.
type ProviderHandler struct {
	repo providerRepo.ProviderRepository
}

// NewProviderHandler constructs a ProviderHandler.
func NewProviderHandler(repo providerRepo.ProviderRepository) *ProviderHandler {
	return &ProviderHandler{repo: repo}
}

// List handles GET /admin/providers.
func (h *ProviderHandler) List(c *gin.Context) {
	providers, err := h.repo.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list providers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// Get handles GET /admin/providers/:id.
func (h *ProviderHandler) Get(c *gin.Context) {
	provider, err := h.repo.GetByID(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Provider not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, provider)
}

// Create handles POST /admin/providers.
func (h *ProviderHandler) Create(c *gin.Context) {
	var provider models.Provider
	if err := c.ShouldBindJSON(&provider); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if provider.Name == "" || provider.HourlyRate <= 0 {
		utils.JSONError(c, http.StatusUnprocessableEntity, "Invalid provider", "name and a positive hourly rate are required")
		return
	}

	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	if err := h.repo.Create(&provider); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create provider", err.Error())
		return
	}
	c.JSON(http.StatusCreated, provider)
}

// Update handles PUT /admin/providers/:id.
func (h *ProviderHandler) Update(c *gin.Context) {
	var provider models.Provider
	if err := c.ShouldBindJSON(&provider); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	provider.ID = c.Param("id")

	if err := h.repo.Update(&provider); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to update provider", err.Error())
		return
	}
	c.JSON(http.StatusOK, provider)
}

// Delete handles DELETE /admin/providers/:id.
func (h *ProviderHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to delete provider", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
