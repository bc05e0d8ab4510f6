package quoteRepo

import (
	"soothely/models"
)

// QuoteRepository defines methods for quote data access.
type QuoteRepository interface {
	// Create inserts a new quote.
	Create(quote *models.Quote) error
	// GetByID retrieves a quote by its unique ID.
	GetByID(id string) (*models.Quote, error)
	// Update replaces an existing quote document.
	Update(quote *models.Quote) error
}
