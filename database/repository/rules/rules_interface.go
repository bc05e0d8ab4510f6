package rulesRepo

import (
	"soothely/models"
)

// RulesRepository defines data access for BusinessRules, PricingRules and
// DurationRules. BusinessRules is a singleton document.
type RulesRepository interface {
	// GetBusinessRules retrieves the business rules document, or nil when
	// none has been configured yet.
	GetBusinessRules() (*models.BusinessRules, error)
	// UpsertBusinessRules replaces the business rules document.
	UpsertBusinessRules(rules *models.BusinessRules) error

	// ListPricingRules returns all time-window pricing rules.
	ListPricingRules() ([]models.PricingRule, error)
	// CreatePricingRule inserts a pricing rule.
	CreatePricingRule(rule *models.PricingRule) error
	// DeletePricingRule removes a pricing rule by ID.
	DeletePricingRule(id string) error

	// ListDurationRules returns all duration-based uplift rules.
	ListDurationRules() ([]models.DurationRule, error)
	// CreateDurationRule inserts a duration rule.
	CreateDurationRule(rule *models.DurationRule) error
	// DeleteDurationRule removes a duration rule by ID.
	DeleteDurationRule(id string) error
}
