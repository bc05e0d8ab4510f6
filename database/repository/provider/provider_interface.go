package providerRepo

import (
	"soothely/models"
)

// ProviderSearchCriteria defines criteria for a provider search. Geographic
// filtering happens in the engine; the repository only narrows by indexed
// attributes.
type ProviderSearchCriteria struct {
	ServiceID  string
	Gender     string
	ActiveOnly bool
}

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(id string) (*models.Provider, error)
	// GetAll retrieves all providers.
	GetAll() ([]models.Provider, error)
	// Search returns providers matching the criteria.
	Search(criteria ProviderSearchCriteria) ([]models.Provider, error)
	// Create inserts a new provider record.
	Create(provider *models.Provider) error
	// Update modifies an existing provider record.
	Update(provider *models.Provider) error
	// Delete removes a provider record by its ID.
	Delete(id string) error
}
